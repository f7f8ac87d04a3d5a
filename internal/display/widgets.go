package display

import (
	"strings"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/panelkit/internal/panel"
	"github.com/jmylchreest/panelkit/internal/theme"
)

func halign(h panel.Horizontal) gtk.Align {
	switch h {
	case panel.HorizontalLeft:
		return gtk.AlignStart
	case panel.HorizontalRight:
		return gtk.AlignEnd
	default:
		return gtk.AlignCenter
	}
}

func valign(v panel.Vertical) gtk.Align {
	switch v {
	case panel.VerticalTop:
		return gtk.AlignStart
	case panel.VerticalBottom:
		return gtk.AlignEnd
	default:
		return gtk.AlignCenter
	}
}

// NewIconButton builds the applet's icon button. Padding and corner radii
// come from the stylesheet rendered for the same record.
func NewIconButton(spec panel.IconButtonSpec) *gtk.Button {
	name := spec.IconName
	if spec.Symbolic && !strings.HasSuffix(name, "-symbolic") {
		name += "-symbolic"
	}

	icon := gtk.NewImageFromIconName(name)
	icon.SetPixelSize(int(spec.IconSize))

	button := gtk.NewButton()
	button.SetChild(icon)
	button.AddCSSClass(theme.ClassAppletButton)
	if spec.Style.Active.Base == panel.ButtonStyleText {
		button.SetHasFrame(false)
		button.AddCSSClass("flat")
	}
	return button
}

// NewPopupContainer wraps child in a box aligned toward the panel.
func NewPopupContainer(spec panel.ContainerSpec, child gtk.Widgetter) *gtk.Box {
	box := gtk.NewBox(gtk.OrientationVertical, 0)
	box.AddCSSClass(theme.ClassPopupContainer)
	box.SetHAlign(halign(spec.Horizontal))
	box.SetVAlign(valign(spec.Vertical))
	box.SetHExpand(!spec.Shrink)
	box.SetVExpand(!spec.Shrink)
	box.Append(child)
	return box
}
