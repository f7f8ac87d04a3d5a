package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/panelkit/internal/adapter/output"
	"github.com/jmylchreest/panelkit/internal/panel"
)

var geometryOpts struct {
	// Popup options
	icon          string
	parent        uint64
	id            uint64
	popupSize     string
	widthPadding  int32
	heightPadding int32

	// Output options
	format   string
	field    string
	template string
}

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Show the derived window, popup and alignment settings",
	Long: `Show everything an applet derives from the panel settings: the suggested
icon size, the fixed window size, the popup positioner and the popup
content alignment.

Examples:
  # Geometry for the current environment
  panelctl geometry

  # A bottom panel with medium icons, as JSON
  panelctl geometry --anchor Bottom --size M --format json

  # Only the popup gravity
  panelctl geometry --field gravity

  # A popup with an explicit size and wider padding
  panelctl geometry --popup-size 300x200 --width-padding 12`,
	RunE: runGeometry,
}

func init() {
	rootCmd.AddCommand(geometryCmd)

	geometryCmd.Flags().StringVar(&geometryOpts.icon, "icon", "applet-icon",
		"Icon name for the button record")
	geometryCmd.Flags().Uint64Var(&geometryOpts.parent, "parent", 0,
		"Parent window ID for the popup")
	geometryCmd.Flags().Uint64Var(&geometryOpts.id, "id", 1,
		"Window ID for the popup")
	geometryCmd.Flags().StringVar(&geometryOpts.popupSize, "popup-size", "",
		"Explicit popup size as WIDTHxHEIGHT")
	geometryCmd.Flags().Int32Var(&geometryOpts.widthPadding, "width-padding", panel.AppletPadding,
		"Horizontal padding of the popup anchor rectangle")
	geometryCmd.Flags().Int32Var(&geometryOpts.heightPadding, "height-padding", panel.AppletPadding,
		"Vertical padding of the popup anchor rectangle")

	geometryCmd.Flags().StringVarP(&geometryOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	geometryCmd.Flags().StringVar(&geometryOpts.field, "field", "",
		"Print a single field ("+strings.Join(output.FieldNames(), ", ")+")")
	geometryCmd.Flags().StringVar(&geometryOpts.template, "template", "",
		"Go template for plain output")
}

func runGeometry(cmd *cobra.Command, args []string) error {
	popupSize, err := parseSize2D(geometryOpts.popupSize)
	if err != nil {
		return err
	}

	opts := output.ReportOptions{
		IconName:  geometryOpts.icon,
		Parent:    panel.WindowID(geometryOpts.parent),
		Popup:     panel.WindowID(geometryOpts.id),
		PopupSize: popupSize,
	}
	if cmd.Flags().Changed("width-padding") {
		opts.WidthPadding = &geometryOpts.widthPadding
	}
	if cmd.Flags().Changed("height-padding") {
		opts.HeightPadding = &geometryOpts.heightPadding
	}

	pc := panelContext()
	logger.Debug("panel context", "size", pc.Size.String(), "anchor", pc.Anchor.String(),
		"background", pc.Background.String(), "output", pc.OutputName)

	report := output.NewReport(pc, opts)

	formatter := output.NewFormatter(output.FormatType(geometryOpts.format), output.FormatterOptions{
		Template: geometryOpts.template,
		Field:    geometryOpts.field,
	})
	if err := formatter.Format(os.Stdout, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// parseSize2D parses WIDTHxHEIGHT. An empty string means no size.
func parseSize2D(s string) (*panel.Size2D, error) {
	if s == "" {
		return nil, nil
	}

	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return nil, fmt.Errorf("invalid size %q, expected WIDTHxHEIGHT", s)
	}
	width, err := strconv.ParseUint(strings.TrimSpace(w), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	height, err := strconv.ParseUint(strings.TrimSpace(h), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid height in %q: %w", s, err)
	}

	return &panel.Size2D{Width: uint32(width), Height: uint32(height)}, nil
}
