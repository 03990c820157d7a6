package overlap

import "log/slog"

// Option configures an Engine.
type Option func(*OptionHolder)

// OptionHolder holds Engine configuration.
type OptionHolder struct {
	logger             *slog.Logger
	minDurationMinutes int
	slotMinutes        int
}

// WithMinDuration sets the shortest segment, in minutes, that qualifies as a
// usable overlap.
func WithMinDuration(minutes int) Option {
	return func(o *OptionHolder) {
		o.minDurationMinutes = minutes
	}
}

// WithSlotMinutes sets the slot width. It must divide 1440 evenly.
func WithSlotMinutes(minutes int) Option {
	return func(o *OptionHolder) {
		o.slotMinutes = minutes
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *OptionHolder) {
		o.logger = logger
	}
}
