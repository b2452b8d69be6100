package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spf13/cobra"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
	"github.com/weftlabs/blockloom/pkg/blockgraph/analyze"
)

// inspectCommand opens an interactive browser over a graph file.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Browse a block graph's blocks and connections interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := blockgraph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}
			m := newBlockListModel(g)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}

// blockListModel is the bubbletea model for browsing a graph's blocks.
type blockListModel struct {
	graph  *blockgraph.Graph
	blocks []*blockgraph.Block
	adj    map[string][]string
	cursor int
	height int
	offset int
}

func newBlockListModel(g *blockgraph.Graph) blockListModel {
	return blockListModel{
		graph:  g,
		blocks: g.Blocks(),
		adj:    analyze.Adjacency(g),
		height: 15,
	}
}

func (m blockListModel) Init() tea.Cmd {
	return nil
}

func (m blockListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.blocks)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m blockListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Blocks"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.blocks) == 0 {
		b.WriteString(StyleDim.Render("(empty graph)"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.offset + m.height
	if end > len(m.blocks) {
		end = len(m.blocks)
	}

	for i := m.offset; i < end; i++ {
		blk := m.blocks[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s  %s", cursor, blk.ID, StyleDim.Render(string(blk.Category)))
		if i == m.cursor {
			line = StyleTitle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	sel := m.blocks[m.cursor]
	b.WriteString("\n")
	b.WriteString(StyleValue.Render(fmt.Sprintf("position (%.0f, %.0f)  ports %d",
		sel.Position.X, sel.Position.Y, len(sel.Ports))))
	b.WriteString("\n")
	if neighbors := m.adj[sel.ID]; len(neighbors) > 0 {
		b.WriteString(StyleDim.Render("connected to: " + strings.Join(neighbors, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}
