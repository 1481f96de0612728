package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docker/multiagent/pkg/team"
)

func newAgentsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "agents",
		Short:   "List the agents and how they delegate",
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			models := cfg.TeamModels()
			team.WalkDeclarations(func(spec team.Spec, depth int) {
				indent := strings.Repeat("  ", depth)
				fmt.Fprintf(out, "%s%s (%s)\n", indent, spec.Name, models.For(spec.Role))
				fmt.Fprintf(out, "%s  %s\n", indent, spec.Description)
				if len(spec.Tools) > 0 {
					fmt.Fprintf(out, "%s  tools: %s\n", indent, strings.Join(spec.Tools, ", "))
				}
			})
			return nil
		},
	}
}
