package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/panelkit/internal/config"
)

func TestNewContext_Defaults(t *testing.T) {
	ctx := NewContext(config.MapSource{})

	assert.Equal(t, PresetSize(SizeS), ctx.Size)
	assert.Equal(t, AnchorTop, ctx.Anchor)
	assert.Equal(t, ThemeDefault(), ctx.Background)
	assert.Empty(t, ctx.OutputName)
}

func TestNewContext_NilSource(t *testing.T) {
	ctx := NewContext(nil)
	assert.Equal(t, DefaultSize, ctx.Size)
	assert.Equal(t, DefaultAnchor, ctx.Anchor)
}

func TestNewContext_ParsesEverySetting(t *testing.T) {
	ctx := NewContext(config.MapSource{
		config.EnvPanelSize:       "XL",
		config.EnvPanelAnchor:     "Left",
		config.EnvPanelBackground: "Dark",
		config.EnvPanelOutput:     "DP-2",
	})

	assert.Equal(t, PresetSize(SizeXL), ctx.Size)
	assert.Equal(t, AnchorLeft, ctx.Anchor)
	assert.Equal(t, DarkBackground(), ctx.Background)
	assert.Equal(t, "DP-2", ctx.OutputName)
}

func TestNewContext_MalformedFallsBackPerField(t *testing.T) {
	tests := []struct {
		name  string
		src   config.MapSource
		check func(t *testing.T, ctx *Context)
	}{
		{
			name: "size",
			src:  config.MapSource{config.EnvPanelSize: "gigantic", config.EnvPanelAnchor: "Bottom"},
			check: func(t *testing.T, ctx *Context) {
				assert.Equal(t, DefaultSize, ctx.Size)
				assert.Equal(t, AnchorBottom, ctx.Anchor)
			},
		},
		{
			name: "anchor",
			src:  config.MapSource{config.EnvPanelAnchor: "((", config.EnvPanelSize: "M"},
			check: func(t *testing.T, ctx *Context) {
				assert.Equal(t, DefaultAnchor, ctx.Anchor)
				assert.Equal(t, PresetSize(SizeM), ctx.Size)
			},
		},
		{
			name: "background",
			src:  config.MapSource{config.EnvPanelBackground: "Color(nope)", config.EnvPanelAnchor: "Right"},
			check: func(t *testing.T, ctx *Context) {
				assert.Equal(t, DefaultBackground, ctx.Background)
				assert.Equal(t, AnchorRight, ctx.Anchor)
			},
		},
		{
			name: "empty values",
			src: config.MapSource{
				config.EnvPanelSize:       "",
				config.EnvPanelAnchor:     "",
				config.EnvPanelBackground: "",
			},
			check: func(t *testing.T, ctx *Context) {
				assert.Equal(t, DefaultSize, ctx.Size)
				assert.Equal(t, DefaultAnchor, ctx.Anchor)
				assert.Equal(t, DefaultBackground, ctx.Background)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewContext(tt.src))
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(config.EnvPanelSize, "(20, 10)")
	t.Setenv(config.EnvPanelAnchor, "Bottom")
	t.Setenv(config.EnvPanelBackground, "Light")
	t.Setenv(config.EnvPanelOutput, "HDMI-A-1")

	ctx := FromEnv()
	assert.Equal(t, FixedSize(20, 10), ctx.Size)
	assert.Equal(t, AnchorBottom, ctx.Anchor)
	assert.Equal(t, LightBackground(), ctx.Background)
	assert.Equal(t, "HDMI-A-1", ctx.OutputName)
}

func TestSuggestedSize_Presets(t *testing.T) {
	tests := []struct {
		size     PanelSize
		expected uint16
	}{
		{SizeXL, 64},
		{SizeL, 36},
		{SizeM, 24},
		{SizeS, 16},
		{SizeXS, 12},
	}

	for _, tt := range tests {
		t.Run(tt.size.String(), func(t *testing.T) {
			ctx := &Context{Size: PresetSize(tt.size)}
			w, h := ctx.SuggestedSize()
			assert.Equal(t, tt.expected, w)
			assert.Equal(t, tt.expected, h)
		})
	}
}

func TestSetWindowSize(t *testing.T) {
	ctx := NewContext(config.MapSource{config.EnvPanelSize: "XL"})

	ctx.SetWindowSize(100, 50)

	w, h := ctx.SuggestedSize()
	assert.Equal(t, uint16(100), w)
	assert.Equal(t, uint16(50), h)

	_, isPreset := ctx.Size.Preset()
	assert.False(t, isPreset)
}

func TestSize_Variants(t *testing.T) {
	preset := PresetSize(SizeM)
	p, ok := preset.Preset()
	assert.True(t, ok)
	assert.Equal(t, SizeM, p)
	_, _, ok = preset.Hardcoded()
	assert.False(t, ok)

	fixed := FixedSize(3, 4)
	_, ok = fixed.Preset()
	assert.False(t, ok)
	w, h, ok := fixed.Hardcoded()
	assert.True(t, ok)
	assert.Equal(t, uint16(3), w)
	assert.Equal(t, uint16(4), h)
}

func TestContext_EnvRoundTrip(t *testing.T) {
	orig := &Context{
		Size:       FixedSize(40, 30),
		Anchor:     AnchorRight,
		Background: SolidColor(Color{R: 0.25, G: 0.5, B: 0.75, A: 1}),
		OutputName: "DP-3",
	}

	got := NewContext(config.MapSource(orig.Env()))
	assert.Equal(t, orig, got)
}
