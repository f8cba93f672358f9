package config

// SolverConfig controls the optional external LP solver used by the
// "ortools" optimizer. An empty Address disables it: the LP planner then
// runs with a nil Solver and falls back to the baseline planner.
type SolverConfig struct {
	// Address is the gRPC address of the solver service, e.g. localhost:50061.
	Address string `mapstructure:"address"`

	// DialTimeoutSeconds bounds the initial connection attempt.
	DialTimeoutSeconds int `mapstructure:"dial_timeout_seconds" validate:"omitempty,min=1"`
}
