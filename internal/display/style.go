package display

import (
	"context"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/panelkit/internal/theme"
)

// StyleLoader keeps a CSS provider in sync with the applet theme.
type StyleLoader struct {
	mu       sync.Mutex
	logger   *slog.Logger
	provider *gtk.CSSProvider
	widgets  theme.Widgets
	current  theme.Theme
}

// NewStyleLoader creates a loader rendering themes for widgets. Call Apply
// once GTK is initialised.
func NewStyleLoader(widgets theme.Widgets, logger *slog.Logger) *StyleLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &StyleLoader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
		widgets:  widgets,
	}
}

// Apply attaches the provider to display, or to the default display when nil.
func (l *StyleLoader) Apply(display *gdk.Display) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	l.logger.Debug("applied applet stylesheet to display")
}

// Load renders t into the provider and matches the libadwaita colour scheme
// to its polarity. Must run on the GTK main loop.
func (l *StyleLoader) Load(t theme.Theme) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.provider.LoadFromString(theme.RenderCSS(t, l.widgets))
	l.current = t

	scheme := adw.ColorSchemeForceLight
	if t.IsDark {
		scheme = adw.ColorSchemeForceDark
	}
	adw.StyleManagerGetDefault().SetColorScheme(scheme)

	l.logger.Info("loaded applet theme", "name", t.Name, "dark", t.IsDark)
}

// Follow loads every theme received from updates on the GTK main loop
// until updates closes or ctx is cancelled.
func (l *StyleLoader) Follow(ctx context.Context, updates <-chan theme.Theme) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case t, ok := <-updates:
				if !ok {
					return
				}
				glib.IdleAdd(func() {
					l.Load(t)
				})
			}
		}
	}()
}

// Current returns the last loaded theme.
func (l *StyleLoader) Current() theme.Theme {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Provider returns the underlying CSS provider.
func (l *StyleLoader) Provider() *gtk.CSSProvider {
	return l.provider
}
