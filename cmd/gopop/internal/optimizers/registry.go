// Package optimizers describes the built-in optimizers to the CLI and wires
// their free-form configuration parameters into concrete constructors.
package optimizers

import (
	"sort"
	"strings"

	"github.com/evolvelab/gopop/pkg/config"
	"github.com/evolvelab/gopop/pkg/core"
	"github.com/evolvelab/gopop/pkg/errors"
	"github.com/evolvelab/gopop/pkg/optimizers/de"
	"github.com/evolvelab/gopop/pkg/optimizers/ds"
	"github.com/evolvelab/gopop/pkg/optimizers/es"
	"github.com/evolvelab/gopop/pkg/optimizers/sa"
)

// OptimizerInfo describes one built-in optimizer for the list and describe
// commands.
type OptimizerInfo struct {
	Name        string
	Description string
	Family      string
	Cost        string
	Restarts    string
	Parameters  []string
	Example     string
}

var Registry = map[string]OptimizerInfo{
	"csaes": {
		Name:        "CSA-ES",
		Description: "(mu/mu_w, lambda) evolution strategy with cumulative step-size adaptation",
		Family:      "evolution strategies",
		Cost:        "n_individuals evaluations per generation (default 4+floor(3 ln dim))",
		Restarts:    "doubles the population on stagnation or step-size collapse",
		Parameters: []string{
			"sigma: initial global step size (required)",
			"n_individuals: offspring population size, default 4+floor(3 ln dim)",
			"n_parents: parent count, default half the offspring",
			"eta_mean: mean learning rate, default 1",
			"eta_sigma: step-size learning rate, default sqrt(mu_eff/(dim+mu_eff))",
			"sigma_threshold: restart trigger on step-size collapse, default 1e-10",
			"stagnation: stagnation window in generations, default 100*n_individuals",
			"fitness_diff: minimum best-fitness progress over the window, default 1e-20",
			"mean: explicit initial mean, default uniform in the initialization bounds",
		},
		Example: "gopop run csaes --function sphere --dim 10 --sigma 2",
	},
	"res": {
		Name:        "(1+1)-ES",
		Description: "Rechenberg's single-parent evolution strategy with the 1/5th success rule",
		Family:      "evolution strategies",
		Cost:        "one evaluation per generation",
		Restarts:    "doubles the population on stagnation or step-size collapse",
		Parameters: []string{
			"sigma: initial step size (required)",
			"eta_sigma: 1/5th-rule adaptation rate, default 1/sqrt(dim+1)",
			"sigma_threshold: restart trigger on step-size collapse, default 1e-10",
			"stagnation: stagnation window in generations, default 100",
			"fitness_diff: minimum best-fitness progress over the window, default 1e-20",
			"mean: explicit starting point, default uniform in the initialization bounds",
		},
		Example: "gopop run res --function rastrigin --dim 5 --sigma 1",
	},
	"de": {
		Name:        "DE",
		Description: "classic DE/rand/1/bin differential evolution of Storn and Price",
		Family:      "differential evolution",
		Cost:        "n_individuals evaluations per generation (default 100)",
		Restarts:    "none",
		Parameters: []string{
			"n_individuals: population size, default 100 (at least 4)",
			"f: differential weight in [0, 2], default 0.5",
			"cr: binomial crossover probability in [0, 1], default 0.9",
		},
		Example: "gopop run de --function ackley --dim 10 --max-evaluations 50000",
	},
	"sa": {
		Name:        "SA",
		Description: "simulated annealing with a Gaussian neighborhood and Metropolis acceptance",
		Family:      "single-state stochastic search",
		Cost:        "one evaluation per iteration",
		Restarts:    "none",
		Parameters: []string{
			"sigma: neighborhood standard deviation (required)",
			"schedule: cooling schedule, exponential or linear, default exponential",
			"temperature_start: initial temperature, default 100",
			"temperature_end: final temperature, default 1e-8",
			"x: explicit starting point, default uniform in the initialization bounds",
		},
		Example: "gopop run sa --function griewank --dim 10 --sigma 3",
	},
	"nelder_mead": {
		Name:        "NelderMead",
		Description: "downhill simplex search with reflection, expansion, contraction, and shrink",
		Family:      "direct search",
		Cost:        "one to dim+2 evaluations per iteration",
		Restarts:    "none",
		Parameters: []string{
			"sigma: initial simplex spread (required)",
			"alpha: reflection coefficient, default 1",
			"beta: expansion coefficient, default 2",
			"gamma: contraction coefficient, default 0.5",
			"delta: shrink coefficient, default 0.5",
			"x: explicit starting point, default uniform in the initialization bounds",
		},
		Example: "gopop run nelder_mead --function rosenbrock --dim 2 --sigma 1",
	},
	"hooke_jeeves": {
		Name:        "HookeJeeves",
		Description: "pattern search alternating exploratory sweeps and pattern moves",
		Family:      "direct search",
		Cost:        "up to 2*dim evaluations per sweep",
		Restarts:    "none",
		Parameters: []string{
			"sigma: initial exploratory step (required)",
			"step_decay: step shrink factor after a failed sweep, default 0.5",
			"x: explicit starting point, default uniform in the initialization bounds",
		},
		Example: "gopop run hooke_jeeves --function sphere --dim 10 --sigma 2",
	},
}

// CanonicalName maps user spellings onto registry keys.
func CanonicalName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetOptimizer looks up the description of a built-in optimizer.
func GetOptimizer(name string) (OptimizerInfo, error) {
	if info, exists := Registry[CanonicalName(name)]; exists {
		return info, nil
	}
	return OptimizerInfo{}, errors.WithFields(
		errors.New(errors.ResourceNotFound, "unknown optimizer: "+name),
		errors.Fields{"optimizer": name})
}

// ListAll returns the registry keys in sorted order.
func ListAll() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewRegistry wires the given optimizer configurations into a core registry.
// Names are case-insensitive. Params are decoded and checked here, so a bad
// campaign file fails before any runs start.
func NewRegistry(configs []config.OptimizerConfig) (*core.OptimizerRegistry, error) {
	registry := core.NewOptimizerRegistry()
	for _, oc := range configs {
		name := CanonicalName(oc.Name)
		factory, err := BuildFactory(name, oc.Params)
		if err != nil {
			return nil, err
		}
		registry.Register(name, factory)
	}
	return registry, nil
}

// BuildFactory resolves an optimizer name and its free-form params into a
// core.OptimizerFactory. Unknown names, unknown params, and mistyped params
// are all rejected.
func BuildFactory(name string, params map[string]interface{}) (core.OptimizerFactory, error) {
	p := newParamSet(params)

	switch CanonicalName(name) {
	case "csaes":
		cfg := es.Config{
			Mean:           p.floats("mean"),
			Sigma:          p.float("sigma", 0),
			EtaMean:        p.float("eta_mean", 0),
			EtaSigma:       p.float("eta_sigma", 0),
			NIndividuals:   p.integer("n_individuals", 0),
			NParents:       p.integer("n_parents", 0),
			SigmaThreshold: p.float("sigma_threshold", 0),
			Stagnation:     p.integer("stagnation", 0),
			FitnessDiff:    p.float("fitness_diff", 0),
		}
		if err := p.finish(name); err != nil {
			return nil, err
		}
		if err := requireSigma(name, cfg.Sigma); err != nil {
			return nil, err
		}
		return func(problem *core.Problem, options core.Options) (core.Optimizer, error) {
			return es.NewCSAES(problem, cfg, options)
		}, nil

	case "res":
		cfg := es.Config{
			Mean:           p.floats("mean"),
			Sigma:          p.float("sigma", 0),
			EtaSigma:       p.float("eta_sigma", 0),
			SigmaThreshold: p.float("sigma_threshold", 0),
			Stagnation:     p.integer("stagnation", 0),
			FitnessDiff:    p.float("fitness_diff", 0),
		}
		if err := p.finish(name); err != nil {
			return nil, err
		}
		if err := requireSigma(name, cfg.Sigma); err != nil {
			return nil, err
		}
		return func(problem *core.Problem, options core.Options) (core.Optimizer, error) {
			return es.NewRES(problem, cfg, options)
		}, nil

	case "de":
		cfg := de.Config{
			NIndividuals: p.integer("n_individuals", 0),
			F:            p.float("f", 0),
			CR:           p.float("cr", 0),
		}
		if err := p.finish(name); err != nil {
			return nil, err
		}
		return func(problem *core.Problem, options core.Options) (core.Optimizer, error) {
			return de.NewDE(problem, cfg, options)
		}, nil

	case "sa":
		cfg := sa.Config{
			X:     p.floats("x"),
			Sigma: p.float("sigma", 0),
		}
		schedule := p.str("schedule", "exponential")
		start := p.float("temperature_start", 100)
		end := p.float("temperature_end", 1e-8)
		if err := p.finish(name); err != nil {
			return nil, err
		}
		if err := requireSigma(name, cfg.Sigma); err != nil {
			return nil, err
		}
		switch schedule {
		case "exponential":
			cfg.Schedule = sa.ExponentialSchedule{Start: start, End: end}
		case "linear":
			cfg.Schedule = sa.LinearSchedule{Start: start, End: end}
		default:
			return nil, errors.WithFields(
				errors.New(errors.InvalidInput, "unknown cooling schedule: "+schedule),
				errors.Fields{"optimizer": name, "schedule": schedule})
		}
		return func(problem *core.Problem, options core.Options) (core.Optimizer, error) {
			return sa.NewSA(problem, cfg, options)
		}, nil

	case "nelder_mead":
		cfg := ds.Config{
			X:     p.floats("x"),
			Sigma: p.float("sigma", 0),
			Alpha: p.float("alpha", 0),
			Beta:  p.float("beta", 0),
			Gamma: p.float("gamma", 0),
			Delta: p.float("delta", 0),
		}
		if err := p.finish(name); err != nil {
			return nil, err
		}
		if err := requireSigma(name, cfg.Sigma); err != nil {
			return nil, err
		}
		return func(problem *core.Problem, options core.Options) (core.Optimizer, error) {
			return ds.NewNelderMead(problem, cfg, options)
		}, nil

	case "hooke_jeeves":
		cfg := ds.Config{
			X:         p.floats("x"),
			Sigma:     p.float("sigma", 0),
			StepDecay: p.float("step_decay", 0),
		}
		if err := p.finish(name); err != nil {
			return nil, err
		}
		if err := requireSigma(name, cfg.Sigma); err != nil {
			return nil, err
		}
		return func(problem *core.Problem, options core.Options) (core.Optimizer, error) {
			return ds.NewHookeJeeves(problem, cfg, options)
		}, nil

	default:
		return nil, errors.WithFields(
			errors.New(errors.ResourceNotFound,
				"unknown optimizer: "+name+" (available: "+strings.Join(ListAll(), ", ")+")"),
			errors.Fields{"optimizer": name})
	}
}

func requireSigma(name string, sigma float64) error {
	if sigma <= 0 {
		return errors.WithFields(
			errors.New(errors.InvalidInput, name+" requires a positive sigma parameter"),
			errors.Fields{"optimizer": name, "sigma": sigma})
	}
	return nil
}
