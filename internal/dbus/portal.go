package dbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	// PortalBusName is the well-known name of the desktop portal.
	PortalBusName = "org.freedesktop.portal.Desktop"
	// PortalPath is the portal object path.
	PortalPath = "/org/freedesktop/portal/desktop"
	// SettingsInterface is the portal settings interface.
	SettingsInterface = "org.freedesktop.portal.Settings"

	// AppearanceNamespace holds the colour-scheme key.
	AppearanceNamespace = "org.freedesktop.appearance"
	// ColorSchemeKey is the key of the colour-scheme preference.
	ColorSchemeKey = "color-scheme"

	settingChanged = "SettingChanged"
)

// ErrNotConnected is returned when the portal is used before Connect.
var ErrNotConnected = errors.New("not connected to D-Bus")

// ColorScheme is the desktop colour-scheme preference.
type ColorScheme uint32

const (
	// NoPreference means the user did not pick a scheme.
	NoPreference ColorScheme = 0
	// PreferDark asks applications for a dark appearance.
	PreferDark ColorScheme = 1
	// PreferLight asks applications for a light appearance.
	PreferLight ColorScheme = 2
)

// String returns the portal name of the scheme.
func (c ColorScheme) String() string {
	switch c {
	case PreferDark:
		return "prefer-dark"
	case PreferLight:
		return "prefer-light"
	default:
		return "no-preference"
	}
}

// PrefersLight reports whether a light theme should be used.
func (c ColorScheme) PrefersLight() bool {
	return c == PreferLight
}

// DefaultQueryTimeout bounds a one-shot colour-scheme query.
const DefaultQueryTimeout = 2 * time.Second

// ColorSchemeReader reads the current colour-scheme preference.
type ColorSchemeReader interface {
	ColorScheme(ctx context.Context) (ColorScheme, error)
}

// QueryColorScheme reads the preference from r, giving up after timeout so a
// stalled portal never holds up the caller.
func QueryColorScheme(ctx context.Context, r ColorSchemeReader, timeout time.Duration) (ColorScheme, error) {
	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return r.ColorScheme(qctx)
}

// Portal is a client for the portal Settings interface.
type Portal struct {
	logger *slog.Logger

	mu   sync.Mutex
	conn *dbus.Conn
}

// NewPortal creates a portal client. Call Connect before use.
func NewPortal(logger *slog.Logger) *Portal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Portal{logger: logger}
}

// Connect opens a private session bus connection.
func (p *Portal) Connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil {
		return nil
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	p.conn = conn
	return nil
}

func (p *Portal) connection() (*dbus.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil, ErrNotConnected
	}
	return p.conn, nil
}

// ColorScheme reads the current preference. Portals that predate ReadOne
// are queried with the deprecated Read method instead.
func (p *Portal) ColorScheme(ctx context.Context) (ColorScheme, error) {
	conn, err := p.connection()
	if err != nil {
		return NoPreference, err
	}

	obj := conn.Object(PortalBusName, PortalPath)

	var value dbus.Variant
	err = obj.CallWithContext(ctx, SettingsInterface+".ReadOne", 0, AppearanceNamespace, ColorSchemeKey).Store(&value)
	if err != nil {
		p.logger.Debug("portal ReadOne failed, trying Read", "error", err)
		err = obj.CallWithContext(ctx, SettingsInterface+".Read", 0, AppearanceNamespace, ColorSchemeKey).Store(&value)
		if err != nil {
			return NoPreference, fmt.Errorf("failed to read %s: %w", ColorSchemeKey, err)
		}
	}

	return decodeColorScheme(value)
}

// Watch calls fn with the new preference whenever it changes, until ctx is
// cancelled. fn runs on the signal goroutine.
func (p *Portal) Watch(ctx context.Context, fn func(ColorScheme)) error {
	conn, err := p.connection()
	if err != nil {
		return err
	}

	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(PortalPath),
		dbus.WithMatchInterface(SettingsInterface),
		dbus.WithMatchMember(settingChanged),
		dbus.WithMatchArg(0, AppearanceNamespace),
	}
	if err := conn.AddMatchSignalContext(ctx, opts...); err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}

	signals := make(chan *dbus.Signal, 8)
	conn.Signal(signals)

	go func() {
		defer func() {
			conn.RemoveSignal(signals)
			_ = conn.RemoveMatchSignal(opts...)
			p.logger.Debug("portal watch stopped")
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				scheme, ok := parseSettingChanged(sig)
				if !ok {
					continue
				}
				p.logger.Debug("colour scheme changed", "scheme", scheme.String())
				fn(scheme)
			}
		}
	}()

	p.logger.Debug("portal watch started")
	return nil
}

// Close closes the bus connection.
func (p *Portal) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}

// decodeColorScheme unwraps the value returned by the portal. Read wraps the
// setting in an extra variant, ReadOne does not.
func decodeColorScheme(v dbus.Variant) (ColorScheme, error) {
	value := v.Value()
	for {
		inner, ok := value.(dbus.Variant)
		if !ok {
			break
		}
		value = inner.Value()
	}

	switch n := value.(type) {
	case uint32:
		return schemeFromUint(n), nil
	case int32:
		if n < 0 {
			return NoPreference, nil
		}
		return schemeFromUint(uint32(n)), nil
	default:
		return NoPreference, fmt.Errorf("unexpected %s type %T", ColorSchemeKey, value)
	}
}

// schemeFromUint maps unknown values to NoPreference.
func schemeFromUint(n uint32) ColorScheme {
	switch ColorScheme(n) {
	case PreferDark, PreferLight:
		return ColorScheme(n)
	default:
		return NoPreference
	}
}

// parseSettingChanged extracts the scheme from a SettingChanged signal
// carrying (namespace, key, value).
func parseSettingChanged(sig *dbus.Signal) (ColorScheme, bool) {
	if sig == nil || sig.Name != SettingsInterface+"."+settingChanged {
		return NoPreference, false
	}
	if len(sig.Body) < 3 {
		return NoPreference, false
	}

	namespace, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if namespace != AppearanceNamespace || key != ColorSchemeKey {
		return NoPreference, false
	}

	value, ok := sig.Body[2].(dbus.Variant)
	if !ok {
		return NoPreference, false
	}
	scheme, err := decodeColorScheme(value)
	if err != nil {
		return NoPreference, false
	}
	return scheme, true
}
