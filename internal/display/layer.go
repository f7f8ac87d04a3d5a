package display

import (
	"log/slog"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/panelkit/internal/panel"
)

// LayerNamespace identifies docked applet surfaces to the compositor.
const LayerNamespace = "panelkit-applet"

var layerEdges = map[panel.Anchor]layershell.LayerShellEdge{
	panel.AnchorLeft:   layershell.LayerShellEdgeLeft,
	panel.AnchorRight:  layershell.LayerShellEdgeRight,
	panel.AnchorTop:    layershell.LayerShellEdgeTop,
	panel.AnchorBottom: layershell.LayerShellEdgeBottom,
}

// Dock turns win into a layer-shell surface on the panel's edge and output.
// It is for running an applet outside a panel; call it before the window is
// first presented.
func Dock(win *gtk.Window, pc *panel.Context, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	layershell.InitForWindow(win)
	layershell.SetLayer(win, layershell.LayerShellLayerTop)
	layershell.SetNamespace(win, LayerNamespace)
	layershell.SetKeyboardMode(win, layershell.LayerShellKeyboardModeOnDemand)

	edge := layerEdges[pc.Anchor]
	for _, e := range layerEdges {
		layershell.SetAnchor(win, e, e == edge)
	}
	layershell.SetMargin(win, edge, 0)

	spec := pc.WindowSettings()
	if pc.Anchor.IsVertical() {
		layershell.SetExclusiveZone(win, int(spec.Width))
	} else {
		layershell.SetExclusiveZone(win, int(spec.Height))
	}

	if pc.OutputName != "" {
		if monitor := findMonitor(gdk.DisplayGetDefault(), pc.OutputName); monitor != nil {
			layershell.SetMonitor(win, monitor)
		} else {
			logger.Warn("output not found, using compositor default", "output", pc.OutputName)
		}
	}

	logger.Debug("docked applet window", "anchor", pc.Anchor.String(), "output", pc.OutputName)
}

// findMonitor returns the monitor whose connector is name, or nil.
func findMonitor(display *gdk.Display, name string) *gdk.Monitor {
	if display == nil {
		return nil
	}
	monitors := display.Monitors()
	if monitors == nil {
		return nil
	}
	for i := uint(0); i < monitors.NItems(); i++ {
		m := wrapMonitor(monitors.Item(i))
		if m != nil && m.Connector() == name {
			return m
		}
	}
	return nil
}

// wrapMonitor casts a list item to a gdk.Monitor; gotk4 does not export its
// own wrapper for this.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
