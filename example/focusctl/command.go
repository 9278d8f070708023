package focusctl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AntonStoeckl/focused-atoms-go/atom"
	"github.com/AntonStoeckl/focused-atoms-go/zapadapter"
)

// session is what every subcommand needs once the configuration is loaded.
type session struct {
	config     Config
	logger     *zapadapter.Logger
	connection *Connection
	app        *App
}

// NewRootCommand builds the focusctl command tree.
func NewRootCommand() *cobra.Command {
	v := NewViper()
	s := &session{}

	var configFile string

	root := &cobra.Command{
		Use:           "focusctl",
		Short:         "Read and edit persisted JSON documents through focused atoms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			c, err := LoadConfig(v, configFile)
			if err != nil {
				return err
			}

			return s.open(cmd.Context(), c)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			s.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path of a YAML config file")
	flags.String("backend", BackendPGX, "backend to use: memory, pgx, sql or sqlx")
	flags.String("dsn", "", "postgres connection string")
	flags.String("table", "atoms", "postgres table holding the documents")
	flags.StringP("output", "o", OutputJSON, "output format: json or yaml")
	flags.BoolP("verbose", "v", false, "log at debug level")

	root.AddCommand(
		newInitCommand(s),
		newGetCommand(s),
		newSetCommand(s),
		newIncCommand(s),
		newDeleteCommand(s),
	)

	return root
}

func (s *session) open(ctx context.Context, c Config) error {
	zapConfig := zap.NewProductionConfig()
	if c.Verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	s.config = c
	s.logger = zapadapter.NewLogger(zapLogger)

	s.connection, err = Open(ctx, c, s.logger, s.logger)
	if err != nil {
		return err
	}

	store, err := atom.NewStore(atom.WithContextualLogger(s.logger))
	if err != nil {
		return err
	}

	s.app, err = NewApp(s.connection.Backend, store, s.logger)

	return err
}

func (s *session) close() {
	if s.connection != nil {
		s.connection.Close()
	}

	if s.logger != nil {
		_ = s.logger.Sync()
	}
}

func newInitCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the documents table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.connection.CreateTable(cmd.Context(), s.config.Table)
		},
	}
}

func newGetCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key> [path]",
		Short: "Print the value at path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := s.app.Get(cmd.Context(), args[0], optionalArg(args, 1))
			if err != nil {
				return err
			}

			return WriteValue(cmd.OutOrStdout(), s.config.Output, v)
		},
	}
}

func newSetCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <path> <json>",
		Short: "Replace the value at path",
		Long:  "Replace the value at path. Use an empty path to replace the whole document.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := ParseValue(args[2])
			if err != nil {
				return err
			}

			return s.app.Set(cmd.Context(), args[0], args[1], value)
		},
	}
}

func newIncCommand(s *session) *cobra.Command {
	var by string

	command := &cobra.Command{
		Use:   "inc <key> <path>",
		Short: "Add a number to the value at path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseFloat(by, 64)
			if err != nil {
				return fmt.Errorf("invalid --by: %w", err)
			}

			return s.app.Inc(cmd.Context(), args[0], args[1], n)
		},
	}

	command.Flags().StringVar(&by, "by", "1", "amount to add")

	return command
}

func newDeleteCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete the document stored under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.Delete(cmd.Context(), args[0])
		},
	}
}

func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}

	return ""
}
