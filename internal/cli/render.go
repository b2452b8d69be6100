package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
	"github.com/weftlabs/blockloom/pkg/render"
)

// renderCommand generates a DOT or SVG node-link diagram from a graph file.
func (c *CLI) renderCommand() *cobra.Command {
	var output string
	var detailed bool

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a block graph as a DOT or SVG diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			g, err := blockgraph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}

			dot := render.ToDOT(g, render.Options{Detailed: detailed})

			switch strings.ToLower(filepath.Ext(output)) {
			case ".dot", "":
				if output == "" {
					fmt.Print(dot)
					return nil
				}
				return os.WriteFile(output, []byte(dot), 0644)
			case ".svg":
				sp := newSpinnerWithContext(cmd.Context(), "Rendering SVG...")
				sp.Start()
				svg, err := render.RenderSVG(dot)
				if err != nil {
					sp.StopWithError("render failed")
					return err
				}
				if err := os.WriteFile(output, svg, 0644); err != nil {
					sp.StopWithError("write failed")
					return err
				}
				sp.StopWithSuccess(fmt.Sprintf("Wrote %s", output))
				logger.Debug("rendered", "bytes", len(svg))
				return nil
			default:
				return fmt.Errorf("unsupported output %q (want .dot or .svg)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot or .svg); stdout DOT when omitted")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include block properties in labels")
	return cmd
}
