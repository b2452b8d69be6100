// Package cli implements the blockloom command-line interface.
//
// This package provides commands for validating block graphs against
// challenge files, classifying their structure, rendering them as
// node-link diagrams, browsing them interactively, and serving the
// workspace HTTP API. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - validate: Check a graph file against a challenge's requirements
//   - analyze: Report the structural classification of a graph file
//   - render: Generate a DOT or SVG node-link diagram
//   - inspect: Browse a graph's blocks and connections interactively
//   - serve: Run the workspace HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/weftlabs/blockloom/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "blockloom"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Blockloom validates and visualizes block graphs",
		Long:         `Blockloom is the block-graph engine behind the visual-programming canvas: it assembles, validates, and renders graphs of connectable blocks and checks them against challenge requirements.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())

	return root
}
