package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/panelkit/internal/adapter/output"
	"github.com/jmylchreest/panelkit/internal/theme"
)

var themeOpts struct {
	format   string
	css      bool
	swatches bool
	write    string
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Resolve and show the applet theme",
	Long: `Resolve the theme an applet would use for the panel background.

Dark and Light backgrounds use the built-in themes. ThemeDefault and Color
backgrounds read the theme store at
$XDG_CONFIG_HOME/<store_name>/v<store_version>/theme.toml.

Examples:
  # Show the resolved theme with colour swatches
  panelctl theme --swatches

  # Print the GTK stylesheet for the theme
  panelctl theme --css

  # Seed the theme store with the built-in light theme
  panelctl theme --write light`,
	RunE: runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)

	themeCmd.Flags().StringVarP(&themeOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	themeCmd.Flags().BoolVar(&themeOpts.css, "css", false,
		"Print the rendered GTK stylesheet instead")
	themeCmd.Flags().BoolVar(&themeOpts.swatches, "swatches", false,
		"Print coloured palette swatches (plain format only)")
	themeCmd.Flags().StringVar(&themeOpts.write, "write", "",
		"Write a built-in theme (dark, light) to the theme store and exit")
}

func runTheme(cmd *cobra.Command, args []string) error {
	if themeOpts.write != "" {
		return writeBuiltinTheme(themeOpts.write)
	}

	pc := panelContext()
	resolver := newResolver(context.Background())
	t := resolver.Resolve(pc.Background)

	if themeOpts.css {
		_, err := fmt.Fprint(os.Stdout, theme.RenderCSS(t, theme.WidgetsFor(pc)))
		return err
	}

	info := output.NewThemeInfo(t, "", nil)
	if pc.Background.UsesThemeStore() {
		if conn, err := newThemeStore().Open(cfg.Theme.StoreName, cfg.Theme.StoreVersion); err == nil {
			info.Source = conn.Path()
			if mod := theme.ModTime(conn); !mod.IsZero() {
				info.Modified = &mod
			}
			_ = conn.Close()
		}
	}

	report := output.NewReport(pc, output.ReportOptions{})
	report.Theme = info

	format := output.FormatType(themeOpts.format)
	if format == output.FormatPlain && themeOpts.swatches {
		return printSwatches(info)
	}

	if err := output.NewFormatter(format, output.FormatterOptions{}).Format(os.Stdout, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// printSwatches prints the palette as coloured blocks.
func printSwatches(info *output.ThemeInfo) error {
	header := lipgloss.NewStyle().Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var sb strings.Builder
	polarity := "light"
	if info.Dark {
		polarity = "dark"
	}
	sb.WriteString(header.Render(info.Name) + dim.Render(" ("+polarity+")") + "\n")
	if info.Source != "" {
		age := "missing"
		if info.Modified != nil {
			age = "updated " + humanize.Time(*info.Modified)
		}
		sb.WriteString(dim.Render(info.Source+", "+age) + "\n")
	}
	sb.WriteString("\n")

	for _, c := range info.Palette {
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(c.Color.Hex())).
			Render("      ")
		sb.WriteString(fmt.Sprintf("%s %-10s %s\n", swatch, c.Color.Hex(), c.Key))
	}

	_, err := fmt.Fprint(os.Stdout, sb.String())
	return err
}

// writeBuiltinTheme seeds the theme store with a built-in theme.
func writeBuiltinTheme(name string) error {
	var t theme.Theme
	switch strings.ToLower(name) {
	case theme.DarkName:
		t = theme.Dark()
	case theme.LightName:
		t = theme.Light()
	default:
		return fmt.Errorf("unknown built-in theme %q, must be one of: dark, light", name)
	}

	conn, err := newThemeStore().Open(cfg.Theme.StoreName, cfg.Theme.StoreVersion)
	if err != nil {
		return fmt.Errorf("failed to open theme store: %w", err)
	}
	defer conn.Close()

	if err := theme.Write(conn, t); err != nil {
		return fmt.Errorf("failed to write theme: %w", err)
	}

	logger.Info("wrote theme entry", "theme", t.Name, "path", conn.Path())
	fmt.Println(conn.Path())
	return nil
}
