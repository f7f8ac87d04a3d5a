package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int32Ptr(v int32) *int32 { return &v }

// growsAway pairs each anchor edge with the gravity that grows out of it.
var growsAway = map[PositionerAnchor]Gravity{
	PositionerAnchorLeft:   GravityLeft,
	PositionerAnchorRight:  GravityRight,
	PositionerAnchorTop:    GravityTop,
	PositionerAnchorBottom: GravityBottom,
}

func TestWindowSettings_FixedFootprint(t *testing.T) {
	for _, p := range PanelSizes() {
		t.Run(p.String(), func(t *testing.T) {
			ctx := &Context{Size: PresetSize(p), Anchor: AnchorTop}
			w, h := ctx.SuggestedSize()

			spec := ctx.WindowSettings()

			assert.Equal(t, uint32(w)+16, spec.Width)
			assert.Equal(t, uint32(h)+16, spec.Height)
			assert.True(t, spec.Limits.Fixed())
			assert.Equal(t, float32(spec.Width), spec.Limits.MinWidth)
			assert.Equal(t, float32(spec.Width), spec.Limits.MaxWidth)
			assert.Equal(t, float32(spec.Height), spec.Limits.MinHeight)
			assert.Equal(t, float32(spec.Height), spec.Limits.MaxHeight)
			assert.False(t, spec.Resizable)
		})
	}
}

func TestWindowSettings_Hardcoded(t *testing.T) {
	ctx := &Context{Size: PresetSize(SizeS)}
	ctx.SetWindowSize(100, 50)

	spec := ctx.WindowSettings()
	assert.Equal(t, uint32(116), spec.Width)
	assert.Equal(t, uint32(66), spec.Height)
	assert.Equal(t, float32(116), spec.Limits.MinWidth)
	assert.Equal(t, float32(66), spec.Limits.MaxHeight)
}

func TestPopupSettings_PlacementTable(t *testing.T) {
	tests := []struct {
		anchor  Anchor
		offset  Point
		pAnchor PositionerAnchor
		gravity Gravity
	}{
		{AnchorLeft, Point{8, 0}, PositionerAnchorRight, GravityRight},
		{AnchorRight, Point{-8, 0}, PositionerAnchorLeft, GravityLeft},
		{AnchorTop, Point{0, 8}, PositionerAnchorBottom, GravityBottom},
		{AnchorBottom, Point{0, -8}, PositionerAnchorTop, GravityTop},
	}

	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			ctx := &Context{Size: PresetSize(SizeS), Anchor: tt.anchor}
			spec := ctx.PopupSettings(1, 2, nil, nil, nil)

			assert.Equal(t, tt.offset, spec.Positioner.Offset)
			assert.Equal(t, tt.pAnchor, spec.Positioner.Anchor)
			assert.Equal(t, tt.gravity, spec.Positioner.Gravity)
		})
	}
}

func TestPopupSettings_GrowsAwayFromPanelEdge(t *testing.T) {
	for _, a := range Anchors() {
		t.Run(a.String(), func(t *testing.T) {
			ctx := &Context{Size: PresetSize(SizeM), Anchor: a}
			pos := ctx.PopupSettings(1, 2, nil, nil, nil).Positioner

			// Anchor on the parent edge facing away from the screen edge, growing the same way.
			assert.Equal(t, growsAway[pos.Anchor], pos.Gravity)

			switch a {
			case AnchorLeft:
				assert.Positive(t, pos.Offset.X)
				assert.Zero(t, pos.Offset.Y)
			case AnchorRight:
				assert.Negative(t, pos.Offset.X)
				assert.Zero(t, pos.Offset.Y)
			case AnchorTop:
				assert.Positive(t, pos.Offset.Y)
				assert.Zero(t, pos.Offset.X)
			case AnchorBottom:
				assert.Negative(t, pos.Offset.Y)
				assert.Zero(t, pos.Offset.X)
			}
		})
	}
}

func TestPopupSettings_SmallBottomExample(t *testing.T) {
	ctx := &Context{Size: PresetSize(SizeS), Anchor: AnchorBottom, Background: ThemeDefault()}

	spec := ctx.PopupSettings(1, 2, nil, nil, nil)

	assert.Equal(t, WindowID(1), spec.Parent)
	assert.Equal(t, WindowID(2), spec.ID)
	assert.Equal(t, PositionerAnchorTop, spec.Positioner.Anchor)
	assert.Equal(t, GravityTop, spec.Positioner.Gravity)
	assert.Equal(t, Point{0, -8}, spec.Positioner.Offset)
	assert.Equal(t, Rectangle{X: 0, Y: 0, Width: 32, Height: 32}, spec.Positioner.AnchorRect)
	assert.Equal(t, ConstraintAdjustment(15), spec.Positioner.ConstraintAdjustment)
	assert.True(t, spec.Positioner.Reactive)
	assert.Nil(t, spec.Positioner.Size)
	assert.Nil(t, spec.ParentSize)
	assert.True(t, spec.Grab)
}

func TestPopupSettings_AnchorRectPadding(t *testing.T) {
	tests := []struct {
		name    string
		size    Size
		wpad    *int32
		hpad    *int32
		expectW int32
		expectH int32
	}{
		{"defaults", PresetSize(SizeXL), nil, nil, 80, 80},
		{"width override", PresetSize(SizeM), int32Ptr(2), nil, 28, 40},
		{"height override", PresetSize(SizeM), nil, int32Ptr(0), 40, 24},
		{"both overrides", FixedSize(100, 50), int32Ptr(4), int32Ptr(10), 108, 70},
		{"negative is passed through", PresetSize(SizeS), int32Ptr(-4), nil, 8, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &Context{Size: tt.size, Anchor: AnchorTop}
			rect := ctx.PopupSettings(1, 2, nil, tt.wpad, tt.hpad).Positioner.AnchorRect

			assert.Equal(t, int32(0), rect.X)
			assert.Equal(t, int32(0), rect.Y)
			assert.Equal(t, tt.expectW, rect.Width)
			assert.Equal(t, tt.expectH, rect.Height)
		})
	}
}

func TestPopupSettings_ExplicitSize(t *testing.T) {
	ctx := &Context{Size: PresetSize(SizeS), Anchor: AnchorLeft}
	size := &Size2D{Width: 300, Height: 200}

	spec := ctx.PopupSettings(5, 6, size, nil, nil)
	assert.Equal(t, size, spec.Positioner.Size)
}

func TestConstraintAdjustment(t *testing.T) {
	c := AppletConstraintAdjustment

	assert.True(t, c.Has(AdjustSlideX))
	assert.True(t, c.Has(AdjustSlideY))
	assert.True(t, c.Has(AdjustFlipX))
	assert.True(t, c.Has(AdjustFlipY))
	assert.False(t, c.Has(AdjustResizeX))
	assert.False(t, c.Has(AdjustResizeY))
	assert.Equal(t, "slide_x|slide_y|flip_x|flip_y", c.String())
	assert.Equal(t, "none", AdjustNone.String())
}

func TestPositionerEnumValues(t *testing.T) {
	// Wire values of the xdg_positioner protocol.
	assert.Equal(t, PositionerAnchor(1), PositionerAnchorTop)
	assert.Equal(t, PositionerAnchor(2), PositionerAnchorBottom)
	assert.Equal(t, PositionerAnchor(3), PositionerAnchorLeft)
	assert.Equal(t, PositionerAnchor(4), PositionerAnchorRight)
	assert.Equal(t, Gravity(8), GravityBottomRight)
	assert.Equal(t, "bottom", GravityBottom.String())
}
