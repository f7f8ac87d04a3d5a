package panel

// Horizontal is a horizontal content alignment.
type Horizontal int

const (
	HorizontalLeft Horizontal = iota
	HorizontalCenter
	HorizontalRight
)

func (h Horizontal) String() string {
	switch h {
	case HorizontalLeft:
		return "left"
	case HorizontalCenter:
		return "center"
	case HorizontalRight:
		return "right"
	}
	return "invalid"
}

// MarshalText renders the alignment name.
func (h Horizontal) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// Vertical is a vertical content alignment.
type Vertical int

const (
	VerticalTop Vertical = iota
	VerticalCenter
	VerticalBottom
)

func (v Vertical) String() string {
	switch v {
	case VerticalTop:
		return "top"
	case VerticalCenter:
		return "center"
	case VerticalBottom:
		return "bottom"
	}
	return "invalid"
}

// MarshalText renders the alignment name.
func (v Vertical) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// PopupContainerAlignment aligns popup content toward the panel.
// This is separate from the positioner table: it places content inside a
// container, not the popup on screen.
func (c *Context) PopupContainerAlignment() (Horizontal, Vertical) {
	switch c.Anchor {
	case AnchorLeft:
		return HorizontalLeft, VerticalCenter
	case AnchorRight:
		return HorizontalRight, VerticalCenter
	case AnchorBottom:
		return HorizontalCenter, VerticalBottom
	default:
		return HorizontalCenter, VerticalTop
	}
}

// Style constants shared by applet widgets.
const (
	ButtonPadding         = 8
	PopupCornerRadius     = 12
	ButtonStyleText       = "text"
	PaletteBackground     = "background.base"
	PaletteOnBackground   = "background.on"
	containerBorderWidth  = 0
	appletButtonBorderRad = 0
)

// ButtonAppearance is one state of a button style.
type ButtonAppearance struct {
	Base         string  `json:"base" yaml:"base"`
	BorderRadius float32 `json:"border_radius" yaml:"border_radius"`
}

// ButtonStyle is a button style with active and hover appearances.
type ButtonStyle struct {
	Active ButtonAppearance `json:"active" yaml:"active"`
	Hover  ButtonAppearance `json:"hover" yaml:"hover"`
}

// AppletButtonStyle is the text button style with square corners used for panel buttons.
func AppletButtonStyle() ButtonStyle {
	return ButtonStyle{
		Active: ButtonAppearance{Base: ButtonStyleText, BorderRadius: appletButtonBorderRad},
		Hover:  ButtonAppearance{Base: ButtonStyleText, BorderRadius: appletButtonBorderRad},
	}
}

// IconButtonSpec describes the applet's icon button.
type IconButtonSpec struct {
	IconName string      `json:"icon_name" yaml:"icon_name"`
	Symbolic bool        `json:"symbolic" yaml:"symbolic"`
	IconSize uint16      `json:"icon_size" yaml:"icon_size"`
	Padding  int         `json:"padding" yaml:"padding"`
	Style    ButtonStyle `json:"style" yaml:"style"`
}

// IconButton describes a symbolic icon button sized to the panel.
func (c *Context) IconButton(iconName string) IconButtonSpec {
	w, _ := c.SuggestedSize()
	return IconButtonSpec{
		IconName: iconName,
		Symbolic: true,
		IconSize: w,
		Padding:  ButtonPadding,
		Style:    AppletButtonStyle(),
	}
}

// ContainerSpec describes the rounded container popup content sits in.
type ContainerSpec struct {
	Horizontal   Horizontal `json:"horizontal" yaml:"horizontal"`
	Vertical     Vertical   `json:"vertical" yaml:"vertical"`
	CornerRadius float32    `json:"corner_radius" yaml:"corner_radius"`
	BorderWidth  float32    `json:"border_width" yaml:"border_width"`
	Background   string     `json:"background" yaml:"background"`
	Foreground   string     `json:"foreground" yaml:"foreground"`
	Shrink       bool       `json:"shrink" yaml:"shrink"`
}

// PopupContainer describes the popup content container for this panel.
func (c *Context) PopupContainer() ContainerSpec {
	h, v := c.PopupContainerAlignment()
	return ContainerSpec{
		Horizontal:   h,
		Vertical:     v,
		CornerRadius: PopupCornerRadius,
		BorderWidth:  containerBorderWidth,
		Background:   PaletteBackground,
		Foreground:   PaletteOnBackground,
		Shrink:       true,
	}
}
