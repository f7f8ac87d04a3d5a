package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/panelkit/internal/tui"
)

var previewOpts struct {
	icon string
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Interactively preview applet geometry",
	Long: `Launch a terminal preview of the applet on its panel. The panel edge,
icon size and background can be changed live, and the derived geometry and
theme palette update as you go.

Key bindings:
  a/tab       Next anchor
  +/-         Larger/smaller icon size
  b           Next background
  r           Reset to the starting settings
  c, y        Copy the report as JSON or YAML
  ?           Show help
  q           Quit`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewOpts.icon, "icon", "applet-icon",
		"Icon name for the button record")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	resolver := newResolver(ctx)
	defer resolver.Close()

	return tui.Run(ctx, tui.RunOptions{
		Panel:    panelContext(),
		Resolver: resolver,
		IconName: previewOpts.icon,
	})
}
