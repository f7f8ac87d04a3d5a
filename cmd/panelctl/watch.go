package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/panelkit/internal/adapter/output"
	"github.com/jmylchreest/panelkit/internal/dbus"
	"github.com/jmylchreest/panelkit/internal/theme"
)

var watchOpts struct {
	json       bool
	subscriber uint64
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow theme changes",
	Long: `Print the applet theme, then print it again every time the theme store
changes, until interrupted.

Dark and Light backgrounds never change, so the command exits straight away
for them.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchOpts.json, "json", false,
		"Print one JSON object per line")
	watchCmd.Flags().Uint64Var(&watchOpts.subscriber, "subscriber", 1,
		"Subscriber ID for the theme watch")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pc := panelContext()
	resolver := newResolver(ctx)
	defer resolver.Close()

	if !pc.Background.UsesThemeStore() {
		logger.Info("background does not follow the theme store", "background", pc.Background.String())
		return printTheme(os.Stdout, theme.Builtin(pc.Background))
	}

	followColorScheme(ctx, resolver)

	for t := range resolver.Updates(ctx, pc.Background, watchOpts.subscriber) {
		if err := printTheme(os.Stdout, t); err != nil {
			return err
		}
	}
	return nil
}

// followColorScheme keeps the resolver fallback in step with the desktop
// colour-scheme preference while ctx is live.
func followColorScheme(ctx context.Context, resolver *theme.Resolver) {
	if !cfg.Theme.UsePortal {
		return
	}

	portal := dbus.NewPortal(logger)
	if err := portal.Connect(); err != nil {
		logger.Debug("desktop portal unavailable", "error", err)
		return
	}

	err := portal.Watch(ctx, func(scheme dbus.ColorScheme) {
		applyColorScheme(resolver, scheme)
	})
	if err != nil {
		logger.Debug("failed to watch colour scheme", "error", err)
		_ = portal.Close()
		return
	}

	go func() {
		<-ctx.Done()
		_ = portal.Close()
	}()
}

func printTheme(w io.Writer, t theme.Theme) error {
	if watchOpts.json {
		data, err := json.Marshal(output.NewThemeInfo(t, "", nil))
		if err != nil {
			return fmt.Errorf("failed to encode theme: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	_, err := fmt.Fprintf(w, "%s theme=%s dark=%t background=%s accent=%s\n",
		time.Now().Format(time.TimeOnly), t.Name, t.IsDark,
		t.Palette.Background.Hex(), t.Palette.Accent.Hex())
	return err
}
