package display

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/panelkit/internal/panel"
)

// ApplyWindowSpec sizes win to spec. GTK has no maximum size, so a fixed
// spec is enforced by pinning the size request and disabling resizing.
func ApplyWindowSpec(win *gtk.Window, spec panel.WindowSpec) {
	win.SetDefaultSize(int(spec.Width), int(spec.Height))
	win.SetSizeRequest(int(spec.Limits.MinWidth), int(spec.Limits.MinHeight))
	win.SetResizable(spec.Resizable)
}

// NewAppletWindow creates an undecorated window sized for the applet icon.
func NewAppletWindow(app *gtk.Application, pc *panel.Context) *gtk.Window {
	win := gtk.NewWindow()
	win.SetApplication(app)
	win.SetDecorated(false)
	win.SetTitle("panelkit applet")
	ApplyWindowSpec(win, pc.WindowSettings())
	return win
}
