package display

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/panelkit/internal/panel"
)

// positionFor maps a popup gravity to the side of the anchor a popover opens on.
func positionFor(g panel.Gravity) gtk.PositionType {
	switch g {
	case panel.GravityTop, panel.GravityTopLeft, panel.GravityTopRight:
		return gtk.PosTop
	case panel.GravityLeft:
		return gtk.PosLeft
	case panel.GravityRight:
		return gtk.PosRight
	default:
		return gtk.PosBottom
	}
}

// NewPopover builds a popover from spec, attached to parent and holding child.
// The positioner maps onto the popover side, offset and pointing rectangle.
// GTK applies its own slide and flip constraints.
func NewPopover(spec panel.PopupSpec, parent, child gtk.Widgetter) *gtk.Popover {
	pos := spec.Positioner

	popover := gtk.NewPopover()
	popover.SetParent(parent)
	popover.SetChild(child)
	popover.SetHasArrow(false)
	popover.SetAutohide(spec.Grab)
	popover.SetPosition(positionFor(pos.Gravity))
	popover.SetOffset(int(pos.Offset.X), int(pos.Offset.Y))

	rect := gdk.NewRectangle(
		int(pos.AnchorRect.X),
		int(pos.AnchorRect.Y),
		int(pos.AnchorRect.Width),
		int(pos.AnchorRect.Height),
	)
	popover.SetPointingTo(&rect)

	if pos.Size != nil {
		popover.SetSizeRequest(int(pos.Size.Width), int(pos.Size.Height))
	}

	return popover
}
