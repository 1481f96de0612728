package root

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/spf13/cobra"

	"github.com/docker/multiagent/pkg/a2a"
	"github.com/docker/multiagent/pkg/cli"
	"github.com/docker/multiagent/pkg/version"
)

type serveFlags struct {
	runFlags

	listenAddr string
}

func newServeCmd(root *rootFlags) *cobra.Command {
	flags := serveFlags{runFlags: runFlags{rootFlags: root}}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an agent over the A2A (Agent-to-Agent) protocol",
		Long:  "Start an A2A server exposing the agent card, JSON-RPC, Prometheus metrics and a health probe",
		Example: `  multiagent serve
  multiagent serve --agent weather_agent --listen 127.0.0.1:9090`,
		Args:    cobra.NoArgs,
		GroupID: "advanced",
		RunE:    flags.runServeCommand,
	}

	cmd.PersistentFlags().StringVarP(&flags.agentName, "agent", "a", "", "Name of the agent to serve (default: Root_Agent)")
	cmd.PersistentFlags().StringVar(&flags.appName, "app", "", "Application name (default: First_Application_To_Test)")
	cmd.PersistentFlags().StringVarP(&flags.listenAddr, "listen", "l", "127.0.0.1:8080", "Address to listen on")

	return cmd
}

func (f *serveFlags) runServeCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := f.resolveConfig()
	if err != nil {
		return err
	}

	t, err := buildTeam(ctx, cfg)
	if err != nil {
		return err
	}
	a, err := t.Agent(cfg.Agent)
	if err != nil {
		return err
	}

	if cfg.MemoryDB != "" {
		slog.Warn("memory_db is not used by serve", "memory_db", cfg.MemoryDB)
		fmt.Fprintf(cmd.ErrOrStderr(), "Note: memory_db %q is ignored, A2A sessions are kept in memory for the life of the server\n", cfg.MemoryDB)
	}

	// Listen as early as possible
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", f.listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", f.listenAddr, err)
	}

	out := cli.NewPrinter(cmd.OutOrStdout())
	return a2a.Run(ctx, out, a, a2a.Options{AppName: cfg.AppName, Version: version.Version}, ln)
}
