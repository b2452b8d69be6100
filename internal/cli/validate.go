package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
	"github.com/weftlabs/blockloom/pkg/blockgraph/analyze"
	"github.com/weftlabs/blockloom/pkg/challenge"
)

// validateCommand checks a graph file against a challenge's requirements.
func (c *CLI) validateCommand() *cobra.Command {
	var challengePath string

	cmd := &cobra.Command{
		Use:   "validate [graph.json]",
		Short: "Check a block graph against a challenge's requirements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			g, err := blockgraph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("graph loaded", "blocks", g.BlockCount(), "connections", g.ConnectionCount())

			ch, err := challenge.Load(challengePath)
			if err != nil {
				return err
			}

			res := analyze.Satisfies(g, ch.Requirement)
			p.done(fmt.Sprintf("Validated %q against %q", args[0], ch.Name))
			printResult(ch, res)

			if !res.Satisfied {
				// Non-zero exit for scripting, without cobra usage noise.
				cmd.SilenceErrors = true
				return fmt.Errorf("requirements not satisfied")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&challengePath, "challenge", "c", "", "challenge file (.toml or .json)")
	_ = cmd.MarkFlagRequired("challenge")
	return cmd
}

// printResult renders a per-predicate breakdown of the verdict.
func printResult(ch challenge.Challenge, res analyze.Result) {
	fmt.Println(StyleTitle.Render(ch.Name))
	if ch.Description != "" {
		fmt.Println(StyleDim.Render(ch.Description))
	}

	line := func(ok bool, label string) {
		mark := StyleSuccess.Render("✓")
		if !ok {
			mark = StyleError.Render("✗")
		}
		fmt.Printf("  %s %s\n", mark, label)
	}

	line(res.MinConnectionsOK, "minimum connections")
	line(res.BlockTypesOK, "required block types")
	line(res.ConnectionsOK, "required connections")
	line(res.StructureOK, "required structure")
	for _, cat := range res.MissingCategories {
		fmt.Printf("    %s\n", StyleWarning.Render("missing: "+cat))
	}

	if res.Satisfied {
		fmt.Println(StyleSuccess.Render("satisfied"))
	} else {
		fmt.Println(StyleError.Render("not satisfied"))
	}
}
