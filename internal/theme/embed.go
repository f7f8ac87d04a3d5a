package theme

import (
	"embed"
	"strconv"
	"strings"
	"text/template"

	"github.com/jmylchreest/panelkit/internal/panel"
)

// EmbeddedTemplates contains the bundled stylesheet templates.
//
//go:embed themes/*.css.tmpl
var EmbeddedTemplates embed.FS

// Stylesheet classes applied by the display adapter.
const (
	ClassAppletButton   = "panelkit-applet-button"
	ClassPopupContainer = "panelkit-popup-container"
)

var cssTemplate = template.Must(template.ParseFS(EmbeddedTemplates, "themes/applet.css.tmpl"))

// Widgets holds the widget style records the stylesheet is rendered from.
type Widgets struct {
	Button    panel.IconButtonSpec
	Container panel.ContainerSpec
}

// WidgetsFor returns the widget records for a panel.
func WidgetsFor(pc *panel.Context) Widgets {
	return Widgets{
		Button:    pc.IconButton(""),
		Container: pc.PopupContainer(),
	}
}

// paletteKeys maps the palette names style records use to palette entry keys.
var paletteKeys = map[string]string{
	panel.PaletteBackground:   "background",
	panel.PaletteOnBackground: "on_background",
}

// cssData is what the stylesheet template sees.
type cssData struct {
	Name    string
	Entries []PaletteEntry

	ButtonPadding      int
	ButtonActiveRadius string
	ButtonHoverRadius  string

	ContainerRadius     string
	ContainerBorder     string
	ContainerBackground string
	ContainerForeground string

	CornerRadius string
}

func px(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func paletteKey(name, def string) string {
	if key, ok := paletteKeys[name]; ok {
		return key
	}
	return def
}

// RenderCSS renders t into a GTK stylesheet for the given widget records.
func RenderCSS(t Theme, w Widgets) string {
	var sb strings.Builder
	data := cssData{
		Name:    t.Name,
		Entries: t.Palette.Entries(),

		ButtonPadding:      w.Button.Padding,
		ButtonActiveRadius: px(w.Button.Style.Active.BorderRadius),
		ButtonHoverRadius:  px(w.Button.Style.Hover.BorderRadius),

		ContainerRadius:     px(w.Container.CornerRadius),
		ContainerBorder:     px(w.Container.BorderWidth),
		ContainerBackground: paletteKey(w.Container.Background, "background"),
		ContainerForeground: paletteKey(w.Container.Foreground, "on_background"),

		CornerRadius: px(t.CornerRadius),
	}
	// The template only formats fields of data, so execution cannot fail.
	_ = cssTemplate.Execute(&sb, data)
	return sb.String()
}
