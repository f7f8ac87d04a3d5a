package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/panelkit/internal/config"
	"github.com/jmylchreest/panelkit/internal/panel"
)

func resetOverrides(t *testing.T) {
	t.Helper()
	saved := globalOpts
	t.Cleanup(func() { globalOpts = saved })
	globalOpts.size = ""
	globalOpts.anchor = ""
	globalOpts.background = ""
	globalOpts.output = ""
}

func TestPanelContext_FlagsOverrideEnvironment(t *testing.T) {
	resetOverrides(t)
	t.Setenv(config.EnvPanelSize, "XL")
	t.Setenv(config.EnvPanelAnchor, "Bottom")
	t.Setenv(config.EnvPanelBackground, "Light")
	t.Setenv(config.EnvPanelOutput, "DP-1")

	globalOpts.anchor = "Left"
	globalOpts.output = "HDMI-A-1"

	pc := panelContext()

	assert.Equal(t, panel.PresetSize(panel.SizeXL), pc.Size)
	assert.Equal(t, panel.AnchorLeft, pc.Anchor)
	assert.Equal(t, panel.LightBackground(), pc.Background)
	assert.Equal(t, "HDMI-A-1", pc.OutputName)
}

func TestPanelContext_Defaults(t *testing.T) {
	resetOverrides(t)
	t.Setenv(config.EnvPanelSize, "")
	t.Setenv(config.EnvPanelAnchor, "")
	t.Setenv(config.EnvPanelBackground, "")
	t.Setenv(config.EnvPanelOutput, "")

	globalOpts.size = "(40, 24)"

	pc := panelContext()

	assert.Equal(t, panel.FixedSize(40, 24), pc.Size)
	assert.Equal(t, panel.DefaultAnchor, pc.Anchor)
	assert.Equal(t, panel.DefaultBackground, pc.Background)
}

func TestParseSize2D(t *testing.T) {
	tests := []struct {
		in      string
		want    *panel.Size2D
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "300x200", want: &panel.Size2D{Width: 300, Height: 200}},
		{in: "300X200", want: &panel.Size2D{Width: 300, Height: 200}},
		{in: " 12 x 8 ", want: &panel.Size2D{Width: 12, Height: 8}},
		{in: "300", wantErr: true},
		{in: "ax200", wantErr: true},
		{in: "300x-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize2D(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
