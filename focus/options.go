package focus

// Option defines a functional option for configuring a focused atom.
type Option func(*config) error

type config struct {
	label string
}

// WithLabel sets the debug label of the focused atom.
// By default the label is "focus(<base label>)".
func WithLabel(label string) Option {
	return func(c *config) error {
		if label == "" {
			return ErrEmptyLabel
		}

		c.label = label

		return nil
	}
}

func configure(baseLabel string, options []Option) (config, error) {
	c := config{label: "focus(" + baseLabel + ")"}

	for _, option := range options {
		if err := option(&c); err != nil {
			return config{}, err
		}
	}

	return c, nil
}
