package root

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/docker/multiagent/pkg/app"
	"github.com/docker/multiagent/pkg/cli"
	"github.com/docker/multiagent/pkg/config"
	"github.com/docker/multiagent/pkg/memory"
)

type runFlags struct {
	*rootFlags

	agentName     string
	appName       string
	userID        string
	sessionID     string
	memoryDB      string
	newSession    bool
	hideToolCalls bool
}

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := runFlags{rootFlags: root}

	cmd := &cobra.Command{
		Use:   "run [message|-]",
		Short: "Run the agents",
		Long: `Send one message to the agents, or start an interactive conversation when no message is given.
Use "-" to read the message from stdin.`,
		Example: `  multiagent run
  multiagent run "Hi, I'm Ann"
  multiagent run --agent weather_agent "Sydney?"
  cat article.txt | multiagent run -`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE:    flags.runRunCommand,
	}

	addSessionFlags(cmd, &flags)
	cmd.PersistentFlags().BoolVar(&flags.newSession, "new-session", false, "Use a fresh random session id")
	cmd.PersistentFlags().BoolVar(&flags.hideToolCalls, "hide-tool-calls", false, "Do not print tool calls and their responses")

	return cmd
}

func addSessionFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.PersistentFlags().StringVarP(&flags.agentName, "agent", "a", "", "Name of the agent to run (default: Root_Agent)")
	cmd.PersistentFlags().StringVar(&flags.appName, "app", "", "Application name (default: First_Application_To_Test)")
	cmd.PersistentFlags().StringVar(&flags.userID, "user", "", "User id (default: User_1)")
	cmd.PersistentFlags().StringVar(&flags.sessionID, "session", "", "Session id (default: Session_001)")
	cmd.PersistentFlags().StringVar(&flags.memoryDB, "memory-db", "", "SQLite file keeping memories across runs (default: in process)")
}

// resolveConfig loads the config file and applies the flags over it.
func (f *runFlags) resolveConfig() (*config.Config, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}

	if f.agentName != "" {
		cfg.Agent = f.agentName
	}
	if f.appName != "" {
		cfg.AppName = f.appName
	}
	if f.userID != "" {
		cfg.UserID = f.userID
	}
	if f.sessionID != "" {
		cfg.SessionID = f.sessionID
	}
	if f.memoryDB != "" {
		cfg.MemoryDB = f.memoryDB
	}
	if f.newSession {
		cfg.SessionID = uuid.NewString()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp builds the configured agent and its runner. The returned function
// releases the memory store.
func (f *runFlags) newApp(cmd *cobra.Command) (*app.App, *config.Config, func() error, error) {
	ctx := cmd.Context()

	cfg, err := f.resolveConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	t, err := buildTeam(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	a, err := t.Agent(cfg.Agent)
	if err != nil {
		return nil, nil, nil, err
	}

	mem, closeMemory, err := memory.Open(ctx, cfg.MemoryDB)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open memory: %w", err)
	}

	rt, err := app.New(ctx, a, app.Options{
		AppName:   cfg.AppName,
		UserID:    cfg.UserID,
		SessionID: cfg.SessionID,
		Memory:    mem,
	})
	if err != nil {
		_ = closeMemory()
		return nil, nil, nil, err
	}
	return rt, cfg, closeMemory, nil
}

func (f *runFlags) runRunCommand(cmd *cobra.Command, args []string) error {
	rt, cfg, closeMemory, err := f.newApp(cmd)
	if err != nil {
		return err
	}
	defer closeMemory()

	var message string
	if len(args) == 1 {
		message = args[0]
	}

	out := cli.NewPrinter(cmd.OutOrStdout())
	return cli.Run(cmd.Context(), out, cli.Config{
		AppName:       cfg.AppName,
		HideToolCalls: f.hideToolCalls,
		NoPrompt:      isPiped(cmd.InOrStdin()),
	}, rt, cmd.InOrStdin(), message)
}

// isPiped reports whether in is a file that is not a terminal.
func isPiped(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}
