package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopupContainerAlignment(t *testing.T) {
	tests := []struct {
		anchor Anchor
		h      Horizontal
		v      Vertical
	}{
		{AnchorLeft, HorizontalLeft, VerticalCenter},
		{AnchorRight, HorizontalRight, VerticalCenter},
		{AnchorTop, HorizontalCenter, VerticalTop},
		{AnchorBottom, HorizontalCenter, VerticalBottom},
	}

	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			ctx := &Context{Anchor: tt.anchor}
			h, v := ctx.PopupContainerAlignment()
			assert.Equal(t, tt.h, h)
			assert.Equal(t, tt.v, v)
		})
	}
}

func TestAppletButtonStyle(t *testing.T) {
	style := AppletButtonStyle()

	assert.Equal(t, "text", style.Active.Base)
	assert.Equal(t, "text", style.Hover.Base)
	assert.Zero(t, style.Active.BorderRadius)
	assert.Zero(t, style.Hover.BorderRadius)
}

func TestIconButton(t *testing.T) {
	ctx := &Context{Size: PresetSize(SizeL)}

	btn := ctx.IconButton("audio-volume-high-symbolic")

	assert.Equal(t, "audio-volume-high-symbolic", btn.IconName)
	assert.True(t, btn.Symbolic)
	assert.Equal(t, uint16(36), btn.IconSize)
	assert.Equal(t, 8, btn.Padding)
	assert.Equal(t, AppletButtonStyle(), btn.Style)
}

func TestPopupContainer(t *testing.T) {
	ctx := &Context{Anchor: AnchorRight}

	spec := ctx.PopupContainer()

	assert.Equal(t, HorizontalRight, spec.Horizontal)
	assert.Equal(t, VerticalCenter, spec.Vertical)
	assert.Equal(t, float32(12), spec.CornerRadius)
	assert.Zero(t, spec.BorderWidth)
	assert.Equal(t, "background.base", spec.Background)
	assert.Equal(t, "background.on", spec.Foreground)
	assert.True(t, spec.Shrink)
}
