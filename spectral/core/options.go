package core

// RefineConfig bounds the iterative refinement loops used by the winding,
// factorization and Bochner engines. A loop that exhausts MaxRefinements or
// exceeds MaxN without certifying its result must fail rather than return a
// partial value; rerunning with a larger budget is a valid caller strategy.
type RefineConfig struct {
	// MaxRefinements caps the number of ladder steps (each step doubles the
	// discretization count or halves the localization radius).
	MaxRefinements int
	// Tolerance is the target accuracy for convergence decisions.
	Tolerance float64
	// MaxN caps the discretization count reached by any single step.
	MaxN int
}

// RefineOption mutates a RefineConfig.
type RefineOption func(*RefineConfig)

// DefaultRefineConfig returns budgets suitable for polynomials of modest
// degree and smooth sample functions.
func DefaultRefineConfig() RefineConfig {
	return RefineConfig{
		MaxRefinements: 24,
		Tolerance:      1e-9,
		MaxN:           1 << 20,
	}
}

// WithMaxRefinements sets the maximum number of refinement steps.
func WithMaxRefinements(n int) RefineOption {
	return func(cfg *RefineConfig) {
		if n > 0 {
			cfg.MaxRefinements = n
		}
	}
}

// WithTolerance sets the convergence tolerance.
func WithTolerance(tol float64) RefineOption {
	return func(cfg *RefineConfig) {
		if tol > 0 {
			cfg.Tolerance = tol
		}
	}
}

// WithMaxN caps the discretization count of a single refinement step.
func WithMaxN(n int) RefineOption {
	return func(cfg *RefineConfig) {
		if n > 0 {
			cfg.MaxN = n
		}
	}
}

// ApplyRefineOptions applies zero or more options to the default config.
func ApplyRefineOptions(opts ...RefineOption) RefineConfig {
	cfg := DefaultRefineConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
