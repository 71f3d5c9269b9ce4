// Package benchmarks provides the standard continuous test functions used to
// exercise and compare black-box optimizers, together with shifted and
// rotated transformations and a catalog mapping names to ready-made problems.
//
// All functions are minimization problems. Unless noted otherwise the global
// minimum is 0 at the origin.
package benchmarks

import (
	"fmt"
	"math"
)

// checkSize panics when x has fewer coordinates than the function is defined
// for, mirroring how dimension mismatches are treated across the module's
// numerical code.
func checkSize(x []float64, min int, name string) {
	if len(x) < min {
		panic(fmt.Sprintf("benchmarks: %s needs at least %d coordinates, got %d", name, min, len(x)))
	}
}

// Sphere is the sum of squares.
func Sphere(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v * v
	}
	return s
}

// Cigar weights every coordinate but the first by 1e6.
func Cigar(x []float64) float64 {
	checkSize(x, 2, "cigar")
	s := 0.0
	for _, v := range x[1:] {
		s += v * v
	}
	return x[0]*x[0] + 1e6*s
}

// Discus weights only the first coordinate by 1e6.
func Discus(x []float64) float64 {
	checkSize(x, 2, "discus")
	s := 0.0
	for _, v := range x[1:] {
		s += v * v
	}
	return 1e6*x[0]*x[0] + s
}

// CigarDiscus combines both scalings: the first coordinate is flat, the last
// is steep, everything between is weighted by 1e4.
func CigarDiscus(x []float64) float64 {
	checkSize(x, 2, "cigar_discus")
	n := len(x)
	s := 0.0
	for _, v := range x[1 : n-1] {
		s += v * v
	}
	return x[0]*x[0] + 1e4*s + 1e8*x[n-1]*x[n-1]
}

// Ellipsoid scales coordinate i by 10^(6i/(n-1)), giving a condition number
// of 1e6.
func Ellipsoid(x []float64) float64 {
	checkSize(x, 2, "ellipsoid")
	n := float64(len(x) - 1)
	s := 0.0
	for i, v := range x {
		s += math.Pow(10, 6*float64(i)/n) * v * v
	}
	return s
}

// DifferentPowers raises |x_i| to a power growing from 2 to 6 across the
// coordinates.
func DifferentPowers(x []float64) float64 {
	checkSize(x, 2, "different_powers")
	n := float64(len(x) - 1)
	s := 0.0
	for i, v := range x {
		s += math.Pow(math.Abs(v), 2+4*float64(i)/n)
	}
	return s
}

// Schwefel221 is the maximum absolute coordinate.
func Schwefel221(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > s {
			s = a
		}
	}
	return s
}

// Step rounds each coordinate to the nearest integer before squaring, giving
// a piecewise-constant landscape.
func Step(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		f := math.Floor(v + 0.5)
		s += f * f
	}
	return s
}

// Schwefel222 is the sum plus the product of absolute coordinates.
func Schwefel222(x []float64) float64 {
	sum, prod := 0.0, 1.0
	for _, v := range x {
		a := math.Abs(v)
		sum += a
		prod *= a
	}
	return sum + prod
}

// Rosenbrock is the banana-valley function. Its global minimum is 0 at the
// all-ones point.
func Rosenbrock(x []float64) float64 {
	checkSize(x, 2, "rosenbrock")
	s := 0.0
	for i := 0; i < len(x)-1; i++ {
		a := x[i+1] - x[i]*x[i]
		b := x[i] - 1
		s += 100*a*a + b*b
	}
	return s
}

// Schwefel12 squares the running prefix sums of the coordinates.
func Schwefel12(x []float64) float64 {
	checkSize(x, 2, "schwefel12")
	prefix, s := 0.0, 0.0
	for _, v := range x {
		prefix += v
		s += prefix * prefix
	}
	return s
}

// Griewank combines a quadratic bowl with an oscillating product term.
func Griewank(x []float64) float64 {
	sum, prod := 0.0, 1.0
	for i, v := range x {
		sum += v * v
		prod *= math.Cos(v / math.Sqrt(float64(i+1)))
	}
	return sum/4000 - prod + 1
}

// Ackley is the exponentially flattened multimodal bowl.
func Ackley(x []float64) float64 {
	n := float64(len(x))
	sumSq, sumCos := 0.0, 0.0
	for _, v := range x {
		sumSq += v * v
		sumCos += math.Cos(2 * math.Pi * v)
	}
	return -20*math.Exp(-0.2*math.Sqrt(sumSq/n)) - math.Exp(sumCos/n) + 20 + math.E
}

// Rastrigin overlays a cosine ripple on the sphere.
func Rastrigin(x []float64) float64 {
	s := 10 * float64(len(x))
	for _, v := range x {
		s += v*v - 10*math.Cos(2*math.Pi*v)
	}
	return s
}
