package feedback

import "github.com/lagiland/scoreboard/pkg/logger"

// Option applies a configuration option to the Requester.
type Option func(*Requester)

// WithFallback sets the text returned when generation fails or is disabled.
func WithFallback(text string) Option {
	return func(r *Requester) {
		r.fallback = text
	}
}

// WithLogger sets a custom logger for the Requester.
func WithLogger(log logger.Logger) Option {
	return func(r *Requester) {
		if log != nil {
			r.log = log
		}
	}
}
