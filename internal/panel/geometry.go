package panel

import (
	"strings"
)

// WindowID identifies a surface in the host toolkit.
type WindowID uint64

// Point is a pixel offset.
type Point struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
}

// Size2D is an explicit surface size in pixels.
type Size2D struct {
	Width  uint32 `json:"width" yaml:"width"`
	Height uint32 `json:"height" yaml:"height"`
}

// Rectangle is a pixel rectangle relative to the parent surface.
type Rectangle struct {
	X      int32 `json:"x" yaml:"x"`
	Y      int32 `json:"y" yaml:"y"`
	Width  int32 `json:"width" yaml:"width"`
	Height int32 `json:"height" yaml:"height"`
}

// Limits bounds a window's size.
type Limits struct {
	MinWidth  float32 `json:"min_width" yaml:"min_width"`
	MaxWidth  float32 `json:"max_width" yaml:"max_width"`
	MinHeight float32 `json:"min_height" yaml:"min_height"`
	MaxHeight float32 `json:"max_height" yaml:"max_height"`
}

// Fixed reports whether min and max are pinned together on both axes.
func (l Limits) Fixed() bool {
	return l.MinWidth == l.MaxWidth && l.MinHeight == l.MaxHeight
}

// WindowSpec describes the applet's top-level surface.
type WindowSpec struct {
	Width     uint32 `json:"width" yaml:"width"`
	Height    uint32 `json:"height" yaml:"height"`
	Limits    Limits `json:"limits" yaml:"limits"`
	Resizable bool   `json:"resizable" yaml:"resizable"`
}

// PositionerAnchor is the point of the anchor rectangle a popup attaches to.
// Values match the xdg_positioner anchor enum.
type PositionerAnchor uint32

const (
	PositionerAnchorNone PositionerAnchor = iota
	PositionerAnchorTop
	PositionerAnchorBottom
	PositionerAnchorLeft
	PositionerAnchorRight
	PositionerAnchorTopLeft
	PositionerAnchorBottomLeft
	PositionerAnchorTopRight
	PositionerAnchorBottomRight
)

var edgeNames = []string{"none", "top", "bottom", "left", "right", "top_left", "bottom_left", "top_right", "bottom_right"}

func (a PositionerAnchor) String() string {
	if int(a) < len(edgeNames) {
		return edgeNames[a]
	}
	return "invalid"
}

// MarshalText renders the protocol name.
func (a PositionerAnchor) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Gravity is the direction a popup grows from its anchor point.
// Values match the xdg_positioner gravity enum.
type Gravity uint32

const (
	GravityNone Gravity = iota
	GravityTop
	GravityBottom
	GravityLeft
	GravityRight
	GravityTopLeft
	GravityBottomLeft
	GravityTopRight
	GravityBottomRight
)

func (g Gravity) String() string {
	if int(g) < len(edgeNames) {
		return edgeNames[g]
	}
	return "invalid"
}

// MarshalText renders the protocol name.
func (g Gravity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// ConstraintAdjustment is the set of fallbacks a compositor may apply when a
// popup would end up off-screen. Bits match xdg_positioner.constraint_adjustment.
type ConstraintAdjustment uint32

const (
	AdjustSlideX ConstraintAdjustment = 1 << iota
	AdjustSlideY
	AdjustFlipX
	AdjustFlipY
	AdjustResizeX
	AdjustResizeY

	AdjustNone ConstraintAdjustment = 0
)

// AppletConstraintAdjustment lets the compositor slide or flip applet popups on both axes.
const AppletConstraintAdjustment = AdjustSlideX | AdjustSlideY | AdjustFlipX | AdjustFlipY

var adjustmentNames = []string{"slide_x", "slide_y", "flip_x", "flip_y", "resize_x", "resize_y"}

// Has reports whether every bit of flag is set.
func (c ConstraintAdjustment) Has(flag ConstraintAdjustment) bool {
	return c&flag == flag
}

func (c ConstraintAdjustment) String() string {
	if c == AdjustNone {
		return "none"
	}
	var parts []string
	for i, name := range adjustmentNames {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// MarshalText renders the set flags.
func (c ConstraintAdjustment) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Positioner places a popup relative to its parent.
type Positioner struct {
	Anchor               PositionerAnchor     `json:"anchor" yaml:"anchor"`
	Gravity              Gravity              `json:"gravity" yaml:"gravity"`
	Offset               Point                `json:"offset" yaml:"offset"`
	Size                 *Size2D              `json:"size,omitempty" yaml:"size,omitempty"`
	AnchorRect           Rectangle            `json:"anchor_rect" yaml:"anchor_rect"`
	ConstraintAdjustment ConstraintAdjustment `json:"constraint_adjustment" yaml:"constraint_adjustment"`
	Reactive             bool                 `json:"reactive" yaml:"reactive"`
}

// PopupSpec describes a popup surface anchored to the applet.
type PopupSpec struct {
	Parent     WindowID   `json:"parent" yaml:"parent"`
	ID         WindowID   `json:"id" yaml:"id"`
	Positioner Positioner `json:"positioner" yaml:"positioner"`
	ParentSize *Size2D    `json:"parent_size,omitempty" yaml:"parent_size,omitempty"`
	Grab       bool       `json:"grab" yaml:"grab"`
}

// popupOffset is the gap, in pixels, between the panel and an applet popup.
const popupOffset = 8

// popupPlacement maps the panel edge to the popup offset, anchor and gravity.
// The popup attaches to the parent edge facing away from the screen edge and
// grows away from it.
var popupPlacement = map[Anchor]struct {
	offset  Point
	anchor  PositionerAnchor
	gravity Gravity
}{
	AnchorLeft:   {Point{popupOffset, 0}, PositionerAnchorRight, GravityRight},
	AnchorRight:  {Point{-popupOffset, 0}, PositionerAnchorLeft, GravityLeft},
	AnchorTop:    {Point{0, popupOffset}, PositionerAnchorBottom, GravityBottom},
	AnchorBottom: {Point{0, -popupOffset}, PositionerAnchorTop, GravityTop},
}

// WindowSettings returns the fixed-size surface for the applet's icon.
func (c *Context) WindowSettings() WindowSpec {
	w, h := c.SuggestedSize()
	width := uint32(w) + AppletPadding*2
	height := uint32(h) + AppletPadding*2

	// TODO: track the content size and request a resize; the footprint is fixed for now.
	return WindowSpec{
		Width:  width,
		Height: height,
		Limits: Limits{
			MinWidth:  float32(width),
			MaxWidth:  float32(width),
			MinHeight: float32(height),
			MaxHeight: float32(height),
		},
		Resizable: false,
	}
}

// PopupSettings returns the popup positioned off the applet, away from the panel edge.
// Nil paddings use AppletPadding. Paddings and sizes are not validated.
func (c *Context) PopupSettings(parent, id WindowID, size *Size2D, widthPadding, heightPadding *int32) PopupSpec {
	w, h := c.SuggestedSize()

	wpad := int32(AppletPadding)
	if widthPadding != nil {
		wpad = *widthPadding
	}
	hpad := int32(AppletPadding)
	if heightPadding != nil {
		hpad = *heightPadding
	}

	place, ok := popupPlacement[c.Anchor]
	if !ok {
		place = popupPlacement[DefaultAnchor]
	}

	return PopupSpec{
		Parent: parent,
		ID:     id,
		Positioner: Positioner{
			Anchor:  place.anchor,
			Gravity: place.gravity,
			Offset:  place.offset,
			Size:    size,
			AnchorRect: Rectangle{
				X:      0,
				Y:      0,
				Width:  wpad*2 + int32(w),
				Height: hpad*2 + int32(h),
			},
			ConstraintAdjustment: AppletConstraintAdjustment,
			Reactive:             true,
		},
		ParentSize: nil,
		Grab:       true,
	}
}
