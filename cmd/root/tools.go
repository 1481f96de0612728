package root

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/docker/multiagent/pkg/cli"
	"github.com/docker/multiagent/pkg/tools"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tools",
		Short:   "List or call the mock tools without a model",
		GroupID: "advanced",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the tools",
		Args:  cobra.NoArgs,
		RunE:  runToolsListCommand,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "call <name> [key=value...]",
		Short: "Call a tool directly",
		Example: `  multiagent tools call say_hello name=Ann
  multiagent tools call get_weather city="New York"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runToolsCallCommand,
	})

	return cmd
}

func runToolsListCommand(cmd *cobra.Command, _ []string) error {
	set, err := tools.NewSet()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tUSAGE\tDESCRIPTION")
	for _, def := range set.Definitions() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, def.Usage, def.Description)
	}
	return w.Flush()
}

func runToolsCallCommand(cmd *cobra.Command, args []string) error {
	set, err := tools.NewSet()
	if err != nil {
		return err
	}

	name := args[0]
	toolArgs, err := parseToolArgs(args[1:])
	if err != nil {
		return err
	}

	result, err := set.Invoke(cmd.Context(), name, toolArgs)
	if err != nil {
		return err
	}

	out := cli.NewPrinter(cmd.OutOrStdout())
	out.PrintToolCall(name, toolArgs)
	out.PrintToolCallResponse(name, result)
	return nil
}

func parseToolArgs(pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q, expected key=value", pair)
		}
		args[key] = value
	}
	return args, nil
}
