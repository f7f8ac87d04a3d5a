// Package output formats derived panel records for the command line.
package output

import (
	"io"
	"time"

	"github.com/jmylchreest/panelkit/internal/panel"
	"github.com/jmylchreest/panelkit/internal/theme"
)

// Formatter writes a report.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// FormatTypes lists the supported formats.
func FormatTypes() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template string // Custom template for plain format
	Field    string // Single field to print (plain format only)
}

// Size is a width and height in pixels.
type Size struct {
	Width  uint16 `json:"width" yaml:"width"`
	Height uint16 `json:"height" yaml:"height"`
}

// Alignment is the popup content alignment.
type Alignment struct {
	Horizontal panel.Horizontal `json:"horizontal" yaml:"horizontal"`
	Vertical   panel.Vertical   `json:"vertical" yaml:"vertical"`
}

// PanelInfo echoes the panel settings in panel notation.
type PanelInfo struct {
	Size       string `json:"size" yaml:"size"`
	Anchor     string `json:"anchor" yaml:"anchor"`
	Background string `json:"background" yaml:"background"`
	Output     string `json:"output" yaml:"output"`
}

// Report is everything derived from one panel context.
type Report struct {
	Panel         PanelInfo            `json:"panel" yaml:"panel"`
	SuggestedSize Size                 `json:"suggested_size" yaml:"suggested_size"`
	Window        panel.WindowSpec     `json:"window" yaml:"window"`
	Popup         panel.PopupSpec      `json:"popup" yaml:"popup"`
	Alignment     Alignment            `json:"alignment" yaml:"alignment"`
	Button        panel.IconButtonSpec `json:"button" yaml:"button"`
	Container     panel.ContainerSpec  `json:"container" yaml:"container"`
	Theme         *ThemeInfo           `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// ReportOptions selects the inputs that are not part of the panel context.
type ReportOptions struct {
	IconName      string
	Parent        panel.WindowID
	Popup         panel.WindowID
	PopupSize     *panel.Size2D
	WidthPadding  *int32
	HeightPadding *int32
}

// NewReport derives every record for pc.
func NewReport(pc *panel.Context, opts ReportOptions) *Report {
	w, h := pc.SuggestedSize()
	hAlign, vAlign := pc.PopupContainerAlignment()

	return &Report{
		Panel: PanelInfo{
			Size:       pc.Size.String(),
			Anchor:     pc.Anchor.String(),
			Background: pc.Background.String(),
			Output:     pc.OutputName,
		},
		SuggestedSize: Size{Width: w, Height: h},
		Window:        pc.WindowSettings(),
		Popup:         pc.PopupSettings(opts.Parent, opts.Popup, opts.PopupSize, opts.WidthPadding, opts.HeightPadding),
		Alignment:     Alignment{Horizontal: hAlign, Vertical: vAlign},
		Button:        pc.IconButton(opts.IconName),
		Container:     pc.PopupContainer(),
	}
}

// PaletteColor is one palette entry.
type PaletteColor struct {
	Key   string      `json:"key" yaml:"key"`
	Color theme.Color `json:"color" yaml:"color"`
}

// ThemeInfo describes a resolved theme and where it came from.
type ThemeInfo struct {
	Name         string         `json:"name" yaml:"name"`
	Dark         bool           `json:"dark" yaml:"dark"`
	CornerRadius float32        `json:"corner_radius" yaml:"corner_radius"`
	Palette      []PaletteColor `json:"palette" yaml:"palette"`
	Source       string         `json:"source,omitempty" yaml:"source,omitempty"`
	Modified     *time.Time     `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// NewThemeInfo describes t. Source is the store file it was read from, if any.
func NewThemeInfo(t theme.Theme, source string, modified *time.Time) *ThemeInfo {
	entries := t.Palette.Entries()
	palette := make([]PaletteColor, len(entries))
	for i, e := range entries {
		palette[i] = PaletteColor{Key: e.Key, Color: e.Color}
	}
	return &ThemeInfo{
		Name:         t.Name,
		Dark:         t.IsDark,
		CornerRadius: t.CornerRadius,
		Palette:      palette,
		Source:       source,
		Modified:     modified,
	}
}
