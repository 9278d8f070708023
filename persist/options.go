package persist

import (
	"github.com/AntonStoeckl/focused-atoms-go/atom"
)

// Option defines a functional option for configuring a Cell.
type Option func(*config) error

type config struct {
	label  string
	logger atom.Logger
}

// WithLabel sets the debug label of the cell's atom. By default it is "persist(<key>)".
func WithLabel(label string) Option {
	return func(c *config) error {
		if label == "" {
			return ErrEmptyLabel
		}

		c.label = label

		return nil
	}
}

// WithLogger sets the logger for the Cell.
//
// Debug level: loads and saves with their duration
// Error level: failed loads, saves and deletes.
func WithLogger(logger atom.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
