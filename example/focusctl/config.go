package focusctl

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix = "FOCUSCTL"

	BackendMemory = "memory"
	BackendPGX    = "pgx"
	BackendSQL    = "sql"
	BackendSQLX   = "sqlx"

	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the focusctl settings.
// Values come from flags, FOCUSCTL_* environment variables and an optional YAML file, in that order of precedence.
type Config struct {
	Backend string `mapstructure:"backend"`
	DSN     string `mapstructure:"dsn"`
	Table   string `mapstructure:"table"`
	Output  string `mapstructure:"output"`
	Verbose bool   `mapstructure:"verbose"`
}

// NewViper returns a viper instance with the focusctl defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("backend", BackendPGX)
	v.SetDefault("dsn", "")
	v.SetDefault("table", "atoms")
	v.SetDefault("output", OutputJSON)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig reads configFile if it is set and returns the validated configuration.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return c, c.validate()
}

func (c Config) validate() error {
	if !slices.Contains([]string{BackendMemory, BackendPGX, BackendSQL, BackendSQLX}, c.Backend) {
		return errors.Join(ErrUnknownBackend, fmt.Errorf("backend %q", c.Backend))
	}

	if c.Backend != BackendMemory && c.DSN == "" {
		return ErrMissingDSN
	}

	if c.Output != OutputJSON && c.Output != OutputYAML {
		return errors.Join(ErrUnknownOutputFormat, fmt.Errorf("output %q", c.Output))
	}

	return nil
}
