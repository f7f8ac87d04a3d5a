// Package main is an example panel applet built on panelkit. It shows an
// icon button sized for the panel and opens a popup describing the panel
// settings, restyling itself whenever the theme changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/panelkit/internal/config"
	"github.com/jmylchreest/panelkit/internal/dbus"
	"github.com/jmylchreest/panelkit/internal/display"
	"github.com/jmylchreest/panelkit/internal/panel"
	"github.com/jmylchreest/panelkit/internal/theme"
)

const (
	appID   = "io.github.jmylchreest.panelkit.Applet"
	appName = "panel-applet"

	// themeSubscriberID keys the applet's theme subscription.
	themeSubscriberID = 1
	// popupID is the window ID of the applet's only popup.
	popupID panel.WindowID = 1
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	dock := flag.Bool("dock", false, "Dock with layer-shell instead of running inside a panel")
	icon := flag.String("icon", "preferences-desktop-appearance", "Icon name for the applet button")
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/panelkit/panelkit.toml)")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(appName, "version", version)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	level, _ := config.ParseLogLevel(cfg.Log.Level)
	if *verbose {
		level = slog.LevelDebug
	}
	logger := config.NewLogger(os.Stderr, level)
	slog.SetDefault(logger)

	os.Exit(run(cfg, logger, *icon, *dock))
}

func run(cfg *config.Config, logger *slog.Logger, iconName string, dock bool) int {
	pc := panel.FromEnv()
	logger.Info("starting applet", "version", version,
		"size", pc.Size.String(), "anchor", pc.Anchor.String(),
		"background", pc.Background.String(), "output", pc.OutputName)

	store := theme.NewFileStore(cfg.ThemeStoreDir())
	resolver := theme.NewResolver(store, cfg.Theme.StoreName, cfg.Theme.StoreVersion, logger)

	app := adw.NewApplication(appID, 0)

	var (
		styles  *display.StyleLoader
		portal  *dbus.Portal
		running atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			glib.IdleAdd(func() {
				app.Quit()
			})
		case <-ctx.Done():
		}
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		styles = display.NewStyleLoader(theme.WidgetsFor(pc), logger)
		if cfg.Theme.UsePortal {
			portal = followPortal(ctx, resolver, logger, func() {
				glib.IdleAdd(func() {
					styles.Load(resolver.Resolve(pc.Background))
				})
			})
		}

		styles.Load(resolver.Resolve(pc.Background))
		styles.Apply(nil)

		win := display.NewAppletWindow(&app.Application, pc)
		if dock {
			display.Dock(win, pc, logger)
		}

		button := display.NewIconButton(pc.IconButton(iconName))
		container := display.NewPopupContainer(pc.PopupContainer(), popupContent(pc))
		popover := display.NewPopover(pc.PopupSettings(0, popupID, nil, nil, nil), button, container)
		button.ConnectClicked(func() {
			popover.Popup()
		})

		win.SetChild(button)
		win.Present()

		styles.Follow(ctx, resolver.Updates(ctx, pc.Background, themeSubscriberID))
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		cancel()
		resolver.Close()
		if portal != nil {
			_ = portal.Close()
		}
		running.Store(false)
	})

	status := app.Run(append([]string{os.Args[0]}, flag.Args()...))
	if status != 0 {
		logger.Error("application exited with error", "status", status)
	}
	return status
}

// followPortal sets the theme fallback from the desktop colour scheme and
// calls changed whenever the preference moves. It returns nil when no portal
// is reachable.
func followPortal(ctx context.Context, resolver *theme.Resolver, logger *slog.Logger, changed func()) *dbus.Portal {
	portal := dbus.NewPortal(logger)
	if err := portal.Connect(); err != nil {
		logger.Debug("desktop portal unavailable", "error", err)
		return nil
	}

	apply := func(scheme dbus.ColorScheme) {
		if scheme.PrefersLight() {
			resolver.SetFallback(theme.Light())
		} else {
			resolver.SetFallback(theme.Dark())
		}
	}

	scheme, err := dbus.QueryColorScheme(ctx, portal, dbus.DefaultQueryTimeout)
	if err != nil {
		logger.Debug("failed to read colour scheme", "error", err)
	} else {
		apply(scheme)
	}

	err = portal.Watch(ctx, func(scheme dbus.ColorScheme) {
		apply(scheme)
		changed()
	})
	if err != nil {
		logger.Debug("failed to watch colour scheme", "error", err)
	}
	return portal
}

// popupContent describes the panel the applet runs in.
func popupContent(pc *panel.Context) gtk.Widgetter {
	box := gtk.NewBox(gtk.OrientationVertical, 6)
	box.SetMarginTop(12)
	box.SetMarginBottom(12)
	box.SetMarginStart(12)
	box.SetMarginEnd(12)

	title := gtk.NewLabel("Panel")
	title.AddCSSClass("title-4")
	title.SetXAlign(0)
	box.Append(title)

	w, h := pc.SuggestedSize()
	output := pc.OutputName
	if output == "" {
		output = "(any)"
	}
	rows := [][2]string{
		{"Size", pc.Size.String()},
		{"Icon", fmt.Sprintf("%dx%d", w, h)},
		{"Anchor", pc.Anchor.String()},
		{"Background", pc.Background.String()},
		{"Output", output},
	}

	grid := gtk.NewGrid()
	grid.SetColumnSpacing(12)
	grid.SetRowSpacing(4)
	for i, row := range rows {
		key := gtk.NewLabel(row[0])
		key.SetXAlign(0)
		key.AddCSSClass("dim-label")
		value := gtk.NewLabel(row[1])
		value.SetXAlign(0)
		value.SetSelectable(true)
		grid.Attach(key, 0, i, 1, 1)
		grid.Attach(value, 1, i, 1, 1)
	}
	box.Append(grid)

	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	box.Append(sep)

	hint := gtk.NewLabel("Theme follows the panel background")
	hint.AddCSSClass("accent")
	hint.SetXAlign(0)
	box.Append(hint)

	return box
}
