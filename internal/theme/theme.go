package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an sRGB colour with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGB builds an opaque colour from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: 1}
}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid colour %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float32(v>>24&0xff) / 255,
		G: float32(v>>16&0xff) / 255,
		B: float32(v>>8&0xff) / 255,
		A: float32(v&0xff) / 255,
	}, nil
}

func channel(f float32) uint8 {
	return uint8(math.Round(float64(min(max(f, 0), 1)) * 255))
}

// Hex renders the colour as #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	if channel(c.A) == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}

// CSS renders the colour as a CSS rgba() value.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", channel(c.R), channel(c.G), channel(c.B),
		strconv.FormatFloat(float64(channel(c.A))/255, 'f', -1, 32))
}

// MarshalText renders the colour as hex.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText parses a hex colour.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Palette holds the colours applets draw with.
type Palette struct {
	Background   Color `json:"background" yaml:"background"`
	OnBackground Color `json:"on_background" yaml:"on_background"`
	Primary      Color `json:"primary" yaml:"primary"`
	OnPrimary    Color `json:"on_primary" yaml:"on_primary"`
	Accent       Color `json:"accent" yaml:"accent"`
	Destructive  Color `json:"destructive" yaml:"destructive"`
	Divider      Color `json:"divider" yaml:"divider"`
	Button       Color `json:"button" yaml:"button"`
	OnButton     Color `json:"on_button" yaml:"on_button"`
}

// fields maps store keys to palette fields, in display order.
func (p *Palette) fields() []struct {
	key string
	ptr *Color
} {
	return []struct {
		key string
		ptr *Color
	}{
		{"background", &p.Background},
		{"on_background", &p.OnBackground},
		{"primary", &p.Primary},
		{"on_primary", &p.OnPrimary},
		{"accent", &p.Accent},
		{"destructive", &p.Destructive},
		{"divider", &p.Divider},
		{"button", &p.Button},
		{"on_button", &p.OnButton},
	}
}

// Entries returns the palette as key/colour pairs in a stable order.
func (p Palette) Entries() []PaletteEntry {
	fields := p.fields()
	out := make([]PaletteEntry, len(fields))
	for i, f := range fields {
		out[i] = PaletteEntry{Key: f.key, Color: *f.ptr}
	}
	return out
}

// PaletteEntry is one named palette colour.
type PaletteEntry struct {
	Key   string
	Color Color
}

// Theme is a resolved applet theme.
type Theme struct {
	Name         string  `json:"name" yaml:"name"`
	IsDark       bool    `json:"is_dark" yaml:"is_dark"`
	CornerRadius float32 `json:"corner_radius" yaml:"corner_radius"`
	Palette      Palette `json:"palette" yaml:"palette"`
}

// Built-in theme names.
const (
	DarkName  = "dark"
	LightName = "light"
)

// Dark is the built-in dark theme.
func Dark() Theme {
	return Theme{
		Name:         DarkName,
		IsDark:       true,
		CornerRadius: 12,
		Palette: Palette{
			Background:   RGB(0x1b, 0x1b, 0x1b),
			OnBackground: RGB(0xe4, 0xe4, 0xe4),
			Primary:      RGB(0x27, 0x27, 0x27),
			OnPrimary:    RGB(0xe4, 0xe4, 0xe4),
			Accent:       RGB(0x94, 0xeb, 0xeb),
			Destructive:  RGB(0xfd, 0xa1, 0xa0),
			Divider:      RGB(0x3a, 0x3a, 0x3a),
			Button:       RGB(0x32, 0x32, 0x32),
			OnButton:     RGB(0xe4, 0xe4, 0xe4),
		},
	}
}

// Light is the built-in light theme.
func Light() Theme {
	return Theme{
		Name:         LightName,
		IsDark:       false,
		CornerRadius: 12,
		Palette: Palette{
			Background:   RGB(0xe6, 0xe6, 0xe6),
			OnBackground: RGB(0x1b, 0x1b, 0x1b),
			Primary:      RGB(0xf4, 0xf4, 0xf4),
			OnPrimary:    RGB(0x1b, 0x1b, 0x1b),
			Accent:       RGB(0x00, 0x52, 0x5a),
			Destructive:  RGB(0x8c, 0x21, 0x1c),
			Divider:      RGB(0xc4, 0xc4, 0xc4),
			Button:       RGB(0xd6, 0xd6, 0xd6),
			OnButton:     RGB(0x1b, 0x1b, 0x1b),
		},
	}
}
