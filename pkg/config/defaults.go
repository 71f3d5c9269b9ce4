package config

// GetDefaultExperiment returns the settings an experiment document is merged
// over: ten sequential repetitions per pair and a 10^4 evaluation budget.
func GetDefaultExperiment() *Experiment {
	return &Experiment{
		Name:        "experiment",
		Repetitions: 10,
		Workers:     1,
		EvalWorkers: 1,
		Target:      1e-8,
		Budget: BudgetConfig{
			MaxFunctionEvaluations: 10000,
		},
	}
}
