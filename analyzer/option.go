package analyzer

import "log/slog"

type Option func(*Analyzer)

// WithLogger sets logger used for traversal diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}
