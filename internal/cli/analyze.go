package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
	"github.com/weftlabs/blockloom/pkg/blockgraph/analyze"
)

// analyzeCommand reports the structural classification of a graph file.
func (c *CLI) analyzeCommand() *cobra.Command {
	var showAdjacency bool

	cmd := &cobra.Command{
		Use:   "analyze [graph.json]",
		Short: "Classify the structure of a block graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := blockgraph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(args[0]))
			fmt.Printf("  blocks:      %s\n", StyleValue.Render(fmt.Sprint(g.BlockCount())))
			fmt.Printf("  connections: %s\n", StyleValue.Render(fmt.Sprint(g.ConnectionCount())))
			fmt.Printf("  sequence:    %s\n", yesNo(analyze.HasSequence(g)))
			fmt.Printf("  loop:        %s\n", yesNo(analyze.HasCycle(g)))
			fmt.Printf("  conditional: %s\n", yesNo(analyze.HasConditional(g)))

			if showAdjacency {
				fmt.Println(StyleTitle.Render("adjacency"))
				adj := analyze.Adjacency(g)
				for _, b := range g.Blocks() {
					fmt.Printf("  %s: %s\n", b.ID, StyleDim.Render(strings.Join(adj[b.ID], ", ")))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAdjacency, "adjacency", false, "print the connection graph")
	return cmd
}

func yesNo(b bool) string {
	if b {
		return StyleSuccess.Render("yes")
	}
	return StyleDim.Render("no")
}
