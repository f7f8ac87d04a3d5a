// Package panel derives applet geometry and styling from the settings a
// desktop panel hands to the applets it hosts.
package panel

import (
	"github.com/jmylchreest/panelkit/internal/config"
)

// AppletPadding is the padding, in pixels, around an applet's icon on every edge.
const AppletPadding = 8

// Defaults used when a panel setting is missing or malformed.
var (
	DefaultSize       = PresetSize(SizeS)
	DefaultAnchor     = AnchorTop
	DefaultBackground = ThemeDefault()
)

// Context is the panel configuration an applet runs under.
// It is built once at startup; SetWindowSize is the only mutation.
type Context struct {
	Size       Size
	Anchor     Anchor
	Background Background
	OutputName string
}

// NewContext reads the panel settings from src.
// Every setting falls back to its default on its own; construction never fails.
func NewContext(src config.Source) *Context {
	return &Context{
		Size:       config.ParseOrDefault(src, config.EnvPanelSize, ParseSize, DefaultSize),
		Anchor:     config.ParseOrDefault(src, config.EnvPanelAnchor, ParseAnchor, DefaultAnchor),
		Background: config.ParseOrDefault(src, config.EnvPanelBackground, ParseBackground, DefaultBackground),
		OutputName: config.ParseOrDefault(src, config.EnvPanelOutput, ParseOutputName, ""),
	}
}

// FromEnv reads the panel settings from the process environment.
func FromEnv() *Context {
	return NewContext(config.EnvSource{})
}

// SuggestedSize returns the icon size in pixels.
func (c *Context) SuggestedSize() (uint16, uint16) {
	return c.Size.Pixels()
}

// SetWindowSize pins the applet to a hardcoded icon size.
func (c *Context) SetWindowSize(width, height uint16) {
	c.Size = FixedSize(width, height)
}

// Env renders the context back into panel settings, keyed like the environment.
func (c *Context) Env() map[string]string {
	return map[string]string{
		config.EnvPanelSize:       c.Size.String(),
		config.EnvPanelAnchor:     c.Anchor.String(),
		config.EnvPanelBackground: c.Background.String(),
		config.EnvPanelOutput:     c.OutputName,
	}
}
