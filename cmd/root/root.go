package root

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docker/multiagent/pkg/cli"
	"github.com/docker/multiagent/pkg/environment"
	"github.com/docker/multiagent/pkg/logging"
	"github.com/docker/multiagent/pkg/paths"
)

type rootFlags struct {
	enableOtel  bool
	debugMode   bool
	logFilePath string
	logFormat   string
	configPath  string
	envFiles    []string

	logFile      io.Closer
	otelShutdown func(context.Context) error
}

func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "multiagent",
		Short: "multiagent - a root agent delegating to greeting and farewell agents",
		Long:  "multiagent runs a small team of Gemini agents backed by mock weather, joke, summary, greeting and farewell tools",
		Example: `  multiagent run "What's the weather in Paris?"
  multiagent run --agent weather_agent "Tokyo?"
  echo "Tell me a tech joke" | multiagent run -
  multiagent tools call get_weather city="New York"`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.setupLogging(); err != nil {
				// Fall back to stderr so logs are not lost
				slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
				slog.Warn("Failed to set up debug log file", "error", err)
			}

			if err := environment.LoadEnvFiles(flags.envFiles...); err != nil {
				return err
			}

			if flags.enableOtel {
				shutdown, err := initOTelSDK(cmd.Context())
				if err != nil {
					slog.Warn("Failed to initialize OpenTelemetry SDK", "error", err)
				} else {
					flags.otelShutdown = shutdown
					slog.Debug("OpenTelemetry SDK initialized successfully")
				}
			}

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if flags.otelShutdown != nil {
				if err := flags.otelShutdown(context.WithoutCancel(cmd.Context())); err != nil {
					slog.Error("Failed to shut down OpenTelemetry SDK", "error", err)
				}
			}
			if flags.logFile != nil {
				if err := flags.logFile.Close(); err != nil {
					slog.Error("Failed to close log file", "error", err)
				}
			}
			return nil
		},
		// If no subcommand is specified, show help
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.enableOtel, "otel", "o", false, "Enable OpenTelemetry tracing")
	cmd.PersistentFlags().StringVar(&flags.logFilePath, "log-file", "", "Path to debug log file (default: ~/.multiagent/multiagent.debug.log; only used with --debug)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", logging.FormatText, "Debug log format: text or json")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file (default: ~/.config/multiagent/config.yaml if present)")
	cmd.PersistentFlags().StringSliceVar(&flags.envFiles, "env-from-file", nil, "Set environment variables from file")

	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "advanced", Title: "Advanced Commands:"})

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd(&flags))
	cmd.AddCommand(newAgentsCmd(&flags))
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newServeCmd(&flags))
	cmd.AddCommand(newRecallCmd(&flags))
	cmd.AddCommand(newConfigCmd(&flags))

	return cmd
}

func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return processErr(ctx, err, stderr, rootCmd)
	}
	return nil
}

func processErr(ctx context.Context, err error, stderr io.Writer, rootCmd *cobra.Command) error {
	var envErr *environment.RequiredEnvError
	var runtimeErr cli.RuntimeError

	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.As(err, &envErr):
		fmt.Fprintln(stderr, "The following environment variables must be set:")
		for _, v := range envErr.Missing {
			fmt.Fprintf(stderr, " - %s\n", v)
		}
		fmt.Fprintln(stderr, "\nEither:\n - Set those environment variables before running multiagent\n - Put them in ./.env\n - Run multiagent with --env-from-file")
	case errors.As(err, &runtimeErr):
		// Already printed by the command itself
	default:
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr)
		if strings.HasPrefix(err.Error(), "unknown command ") || strings.HasPrefix(err.Error(), "accepts ") {
			_ = rootCmd.Usage()
		}
	}

	return err
}

// setupLogging discards logs unless --debug is set. With --debug, logs go to
// a rotating file at <dataDir>/multiagent.debug.log or to --log-file.
func (f *rootFlags) setupLogging() error {
	path := cmp.Or(strings.TrimSpace(f.logFilePath), paths.DefaultLogFile())

	closer, err := logging.Setup(f.debugMode, path, f.logFormat)
	if err != nil {
		return err
	}
	f.logFile = closer
	return nil
}
