package root

import (
	"github.com/spf13/cobra"

	"github.com/docker/multiagent/pkg/cli"
)

type recallFlags struct {
	runFlags

	prompt string
}

func newRecallCmd(root *rootFlags) *cobra.Command {
	flags := recallFlags{runFlags: runFlags{rootFlags: root}}

	cmd := &cobra.Command{
		Use:   "recall <query>",
		Short: "Search the conversation memory",
		Long: `Print the memories matching the query.
With --prompt, the prompt is run through the agents first so the memory holds at least that turn.
Use --memory-db to search memories kept by earlier runs.`,
		Example: `  multiagent recall --prompt "Weather in Paris?" paris
  multiagent recall --memory-db ~/.multiagent/memory.db paris`,
		Args:    cobra.ExactArgs(1),
		GroupID: "advanced",
		RunE:    flags.runRecallCommand,
	}

	addSessionFlags(cmd, &flags.runFlags)
	cmd.PersistentFlags().StringVarP(&flags.prompt, "prompt", "p", "", "Message sent before searching")

	return cmd
}

func (f *recallFlags) runRecallCommand(cmd *cobra.Command, args []string) error {
	rt, cfg, closeMemory, err := f.newApp(cmd)
	if err != nil {
		return err
	}
	defer closeMemory()

	ctx := cmd.Context()
	out := cli.NewPrinter(cmd.OutOrStdout())

	if f.prompt != "" {
		if err := cli.Run(ctx, out, cli.Config{AppName: cfg.AppName, HideToolCalls: true}, rt, cmd.InOrStdin(), f.prompt); err != nil {
			return err
		}
	}

	entries, err := rt.Recall(ctx, args[0])
	if err != nil {
		out.PrintError(err)
		return cli.RuntimeError{Err: err}
	}

	out.Printf("\n--- Memories matching %q ---\n", args[0])
	out.PrintMemories(entries)
	return nil
}
