package panel

import (
	"fmt"
)

// PanelSize is one of the panel's named size presets.
type PanelSize int

const (
	SizeXL PanelSize = iota
	SizeL
	SizeM
	SizeS
	SizeXS
)

var panelSizeNames = []string{"XL", "L", "M", "S", "XS"}

// presetPixels is the square icon edge for each preset.
var presetPixels = [...]uint16{
	SizeXL: 64,
	SizeL:  36,
	SizeM:  24,
	SizeS:  16,
	SizeXS: 12,
}

// PanelSizes returns every preset, largest first.
func PanelSizes() []PanelSize {
	return []PanelSize{SizeXL, SizeL, SizeM, SizeS, SizeXS}
}

func (p PanelSize) String() string {
	if p < 0 || int(p) >= len(panelSizeNames) {
		return fmt.Sprintf("PanelSize(%d)", int(p))
	}
	return panelSizeNames[p]
}

// MarshalText renders the preset name.
func (p PanelSize) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Pixels returns the square icon edge of the preset.
func (p PanelSize) Pixels() uint16 {
	if p < 0 || int(p) >= len(presetPixels) {
		return presetPixels[SizeS]
	}
	return presetPixels[p]
}

// Size is either a named preset or a hardcoded (width, height) pair.
// The zero value is not meaningful; use PresetSize or FixedSize.
type Size struct {
	preset    PanelSize
	width     uint16
	height    uint16
	hardcoded bool
}

// PresetSize returns a Size following a panel preset.
func PresetSize(p PanelSize) Size {
	return Size{preset: p}
}

// FixedSize returns a hardcoded Size.
func FixedSize(width, height uint16) Size {
	return Size{width: width, height: height, hardcoded: true}
}

// Preset returns the preset and true if s is a preset.
func (s Size) Preset() (PanelSize, bool) {
	return s.preset, !s.hardcoded
}

// Hardcoded returns the pixel pair and true if s is hardcoded.
func (s Size) Hardcoded() (uint16, uint16, bool) {
	return s.width, s.height, s.hardcoded
}

// Pixels returns the (width, height) the size stands for.
func (s Size) Pixels() (uint16, uint16) {
	if s.hardcoded {
		return s.width, s.height
	}
	px := s.preset.Pixels()
	return px, px
}

// String renders the size in the notation the panel uses.
func (s Size) String() string {
	if s.hardcoded {
		return fmt.Sprintf("(%d, %d)", s.width, s.height)
	}
	return s.preset.String()
}

// MarshalText renders the size in panel notation.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Anchor is the screen edge the panel is docked to.
type Anchor int

const (
	AnchorLeft Anchor = iota
	AnchorRight
	AnchorTop
	AnchorBottom
)

var anchorNames = []string{"Left", "Right", "Top", "Bottom"}

// Anchors returns every anchor edge.
func Anchors() []Anchor {
	return []Anchor{AnchorLeft, AnchorRight, AnchorTop, AnchorBottom}
}

func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
	return anchorNames[a]
}

// MarshalText renders the anchor name.
func (a Anchor) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// IsVertical reports whether the panel runs along a vertical edge.
func (a Anchor) IsVertical() bool {
	return a == AnchorLeft || a == AnchorRight
}

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R float32 `json:"r" yaml:"r"`
	G float32 `json:"g" yaml:"g"`
	B float32 `json:"b" yaml:"b"`
	A float32 `json:"a" yaml:"a"`
}

// BackgroundKind selects where the applet's colours come from.
type BackgroundKind int

const (
	BackgroundThemeDefault BackgroundKind = iota
	BackgroundColor
	BackgroundDark
	BackgroundLight
)

var backgroundNames = []string{"ThemeDefault", "Color", "Dark", "Light"}

func (k BackgroundKind) String() string {
	if k < 0 || int(k) >= len(backgroundNames) {
		return fmt.Sprintf("BackgroundKind(%d)", int(k))
	}
	return backgroundNames[k]
}

// Background is the panel background mode. Color is only set for BackgroundColor.
type Background struct {
	Kind  BackgroundKind
	Color Color
}

// ThemeDefault follows the system theme.
func ThemeDefault() Background { return Background{Kind: BackgroundThemeDefault} }

// SolidColor is a panel painted with a fixed colour; the applet still follows the system theme.
func SolidColor(c Color) Background { return Background{Kind: BackgroundColor, Color: c} }

// DarkBackground forces the built-in dark theme.
func DarkBackground() Background { return Background{Kind: BackgroundDark} }

// LightBackground forces the built-in light theme.
func LightBackground() Background { return Background{Kind: BackgroundLight} }

// UsesThemeStore reports whether the theme must be read from the theme store.
func (b Background) UsesThemeStore() bool {
	return b.Kind == BackgroundThemeDefault || b.Kind == BackgroundColor
}

// String renders the background in panel notation.
func (b Background) String() string {
	if b.Kind == BackgroundColor {
		c := b.Color
		return fmt.Sprintf("Color((%g, %g, %g, %g))", c.R, c.G, c.B, c.A)
	}
	return b.Kind.String()
}

// MarshalText renders the background in panel notation.
func (b Background) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
