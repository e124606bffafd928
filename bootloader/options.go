package bootloader

import "time"

// Config holds the session configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// PollDelay is the pause between status polls while the device reports
	// BUSY. Zero polls as fast as the bus allows.
	PollDelay time.Duration

	// CommandDelay is an optional settle time applied after each transmitted
	// frame, for devices that need the bus to go quiet between frames.
	CommandDelay time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{}
}

// Option is a functional option for configuring the Session.
type Option func(*Config)

// WithLogger sets a logger for session operations.
//
// Example:
//
//	sess, err := bootloader.Open(ctx, dev, bootloader.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithPollDelay sets the pause between BUSY status polls.
//
// Example:
//
//	sess, err := bootloader.Open(ctx, dev, bootloader.WithPollDelay(time.Millisecond))
func WithPollDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.PollDelay = delay
		}
	}
}

// WithCommandDelay sets the settle time applied after each transmitted frame.
//
// Example:
//
//	sess, err := bootloader.Open(ctx, dev, bootloader.WithCommandDelay(500*time.Microsecond))
func WithCommandDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.CommandDelay = delay
		}
	}
}
