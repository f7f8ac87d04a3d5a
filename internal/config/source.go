package config

import (
	"os"
)

// Panel environment keys. The panel exports these to every applet it spawns.
const (
	EnvPanelSize       = "COSMIC_PANEL_SIZE"
	EnvPanelAnchor     = "COSMIC_PANEL_ANCHOR"
	EnvPanelBackground = "COSMIC_PANEL_BACKGROUND"
	EnvPanelOutput     = "COSMIC_PANEL_OUTPUT"
)

// Source is a read-only key-value source for panel settings.
type Source interface {
	// Lookup returns the raw value for key and whether it was present.
	Lookup(key string) (string, bool)
}

// EnvSource reads settings from the process environment.
type EnvSource struct{}

// Lookup implements Source.
func (EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapSource is a fixed set of settings, mostly useful in tests and for CLI overrides.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Chain consults each source in order and returns the first hit.
type Chain []Source

// Lookup implements Source.
func (c Chain) Lookup(key string) (string, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// ParseOrDefault looks up key in src and parses it.
// Absent keys and parse failures both yield def; errors are never surfaced.
func ParseOrDefault[T any](src Source, key string, parse func(string) (T, error), def T) T {
	if src == nil {
		return def
	}
	raw, ok := src.Lookup(key)
	if !ok {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}
