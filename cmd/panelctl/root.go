// Package main provides the panelctl CLI for inspecting applet geometry and themes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/panelkit/internal/config"
	"github.com/jmylchreest/panelkit/internal/dbus"
	"github.com/jmylchreest/panelkit/internal/panel"
	"github.com/jmylchreest/panelkit/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// portalTimeout bounds the colour-scheme query so a missing portal never stalls a command.
const portalTimeout = dbus.DefaultQueryTimeout

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string

		// Panel setting overrides, in panel notation.
		size       string
		anchor     string
		background string
		output     string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "panelctl",
	Short: "Inspect panel applet geometry and theming",
	Long: `panelctl shows what a panel applet derives from the settings its panel
passes in the environment: icon size, window and popup geometry, content
alignment and the theme.

Panel settings are read from COSMIC_PANEL_SIZE, COSMIC_PANEL_ANCHOR,
COSMIC_PANEL_BACKGROUND and COSMIC_PANEL_OUTPUT. The --size, --anchor,
--background and --output flags take precedence over the environment.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		setupLogger()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/panelkit/panelkit.toml)")

	rootCmd.PersistentFlags().StringVar(&globalOpts.size, "size", "",
		"Panel size override (XL, L, M, S, XS or \"(w, h)\")")
	rootCmd.PersistentFlags().StringVar(&globalOpts.anchor, "anchor", "",
		"Panel anchor override (Left, Right, Top, Bottom)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.background, "background", "",
		"Panel background override (ThemeDefault, Dark, Light or \"Color((r, g, b, a))\")")
	rootCmd.PersistentFlags().StringVar(&globalOpts.output, "output", "",
		"Panel output name override")
}

// setupLogger configures the global slog logger from the config and --verbose.
func setupLogger() {
	level, err := config.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	logger = config.NewLogger(os.Stderr, level)
	slog.SetDefault(logger)
}

// panelSource layers the flag overrides over the environment.
func panelSource() config.Source {
	overrides := config.MapSource{}
	set := func(key, value string) {
		if value != "" {
			overrides[key] = value
		}
	}
	set(config.EnvPanelSize, globalOpts.size)
	set(config.EnvPanelAnchor, globalOpts.anchor)
	set(config.EnvPanelBackground, globalOpts.background)
	set(config.EnvPanelOutput, globalOpts.output)

	return config.Chain{overrides, config.EnvSource{}}
}

// panelContext builds the panel context the command operates on.
func panelContext() *panel.Context {
	return panel.NewContext(panelSource())
}

// newThemeStore opens the theme store described by the config.
func newThemeStore() *theme.FileStore {
	return theme.NewFileStore(cfg.ThemeStoreDir())
}

// newResolver creates a resolver whose fallback follows the desktop
// colour-scheme preference when the portal is enabled.
func newResolver(ctx context.Context) *theme.Resolver {
	resolver := theme.NewResolver(newThemeStore(), cfg.Theme.StoreName, cfg.Theme.StoreVersion, logger)
	if !cfg.Theme.UsePortal {
		return resolver
	}

	portal := dbus.NewPortal(logger)
	if err := portal.Connect(); err != nil {
		logger.Debug("desktop portal unavailable", "error", err)
		return resolver
	}
	defer portal.Close()

	scheme, err := dbus.QueryColorScheme(ctx, portal, portalTimeout)
	if err != nil {
		logger.Debug("failed to read colour scheme", "error", err)
		return resolver
	}
	applyColorScheme(resolver, scheme)
	return resolver
}

// applyColorScheme picks the resolver fallback for scheme.
func applyColorScheme(resolver *theme.Resolver, scheme dbus.ColorScheme) {
	if scheme.PrefersLight() {
		resolver.SetFallback(theme.Light())
	} else {
		resolver.SetFallback(theme.Dark())
	}
	logger.Debug("theme fallback from colour scheme", "scheme", scheme.String(), "fallback", resolver.Fallback().Name)
}
