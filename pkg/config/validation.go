package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/evolvelab/gopop/pkg/benchmarks"
)

// ValidationError represents a single experiment validation failure.
type ValidationError struct {
	Field   string
	Tag     string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Tag != "" {
		return fmt.Sprintf("%s failed %s validation", e.Field, e.Tag)
	}
	return fmt.Sprintf("%s failed validation", e.Field)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Validator checks experiment documents for structural and cross-field
// consistency.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new experiment validator.
func NewValidator() (*Validator, error) {
	validate := validator.New()

	if err := validate.RegisterValidation("benchmark_function", validateBenchmarkFunction); err != nil {
		return nil, fmt.Errorf("failed to register validator 'benchmark_function': %w", err)
	}

	return &Validator{validate: validate}, nil
}

// ValidateExperiment validates an experiment document.
func (v *Validator) ValidateExperiment(exp *Experiment) error {
	if exp == nil {
		return ValidationErrors{
			ValidationError{
				Field:   "experiment",
				Tag:     "required",
				Message: "experiment is nil",
			},
		}
	}

	var validationErrors ValidationErrors

	if err := v.validate.Struct(exp); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range errs {
				validationErrors = append(validationErrors, ValidationError{
					Field:   e.Field(),
					Tag:     e.Tag(),
					Value:   e.Value(),
					Message: getValidationMessage(e),
				})
			}
		} else {
			validationErrors = append(validationErrors, ValidationError{
				Message: err.Error(),
			})
		}
	}

	validationErrors = append(validationErrors, v.validateCustomRules(exp)...)

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

// validateCustomRules performs the cross-field checks struct tags cannot
// express.
func (v *Validator) validateCustomRules(exp *Experiment) ValidationErrors {
	var errors ValidationErrors
	errors = append(errors, v.validateProblems(exp.Problems)...)
	errors = append(errors, v.validateOptimizers(exp.Optimizers)...)
	errors = append(errors, v.validateBudget(&exp.Budget)...)
	return errors
}

// validateProblems checks each problem against its catalog entry.
func (v *Validator) validateProblems(problems []ProblemConfig) ValidationErrors {
	var errors ValidationErrors

	for i, p := range problems {
		fn, err := benchmarks.Lookup(p.Function)
		if err != nil {
			// Covered by the benchmark_function tag.
			continue
		}
		if p.Dim < fn.MinDim {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("Problems[%d].Dim", i),
				Value:   p.Dim,
				Message: fmt.Sprintf("%s requires at least %d dimensions, got %d", fn.Name, fn.MinDim, p.Dim),
			})
		}
	}

	return errors
}

// validateOptimizers rejects duplicate names. Optimizer names are
// case-insensitive, and a campaign keys its results by them.
func (v *Validator) validateOptimizers(optimizers []OptimizerConfig) ValidationErrors {
	var errors ValidationErrors

	seen := make(map[string]bool, len(optimizers))
	for i, o := range optimizers {
		name := strings.ToLower(strings.TrimSpace(o.Name))
		if seen[name] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("Optimizers[%d].Name", i),
				Value:   o.Name,
				Message: fmt.Sprintf("duplicate optimizer %q", o.Name),
			})
		}
		seen[name] = true
	}

	return errors
}

// validateBudget requires a finite stopping condition. A fitness threshold
// alone may never be reached, so it does not count.
func (v *Validator) validateBudget(budget *BudgetConfig) ValidationErrors {
	var errors ValidationErrors

	if budget.MaxFunctionEvaluations <= 0 && budget.MaxRuntime <= 0 {
		errors = append(errors, ValidationError{
			Field:   "Budget",
			Message: "a run needs a finite budget: set max_function_evaluations or max_runtime",
		})
	}
	if budget.MaxRuntime < 0 {
		errors = append(errors, ValidationError{
			Field:   "Budget.MaxRuntime",
			Value:   budget.MaxRuntime,
			Message: "max_runtime must not be negative",
		})
	}

	return errors
}

// validateBenchmarkFunction checks catalog membership.
func validateBenchmarkFunction(fl validator.FieldLevel) bool {
	_, err := benchmarks.Lookup(fl.Field().String())
	return err == nil
}

// getValidationMessage returns a human-readable validation message.
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "benchmark_function":
		return fmt.Sprintf("%s must name a catalog function", e.Field())
	default:
		return fmt.Sprintf("%s failed validation", e.Field())
	}
}

// Global validator instance.
var (
	globalValidator *Validator
	validatorOnce   sync.Once
)

// GetValidator returns the global experiment validator.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		var err error
		globalValidator, err = NewValidator()
		if err != nil {
			panic(fmt.Sprintf("failed to create experiment validator: %v", err))
		}
	})
	return globalValidator
}

// ValidateExperiment validates an experiment using the global validator.
func ValidateExperiment(exp *Experiment) error {
	return GetValidator().ValidateExperiment(exp)
}
