package panel

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// The panel writes its settings in RON notation: bare identifiers (Top),
// tuples ((100, 50)) and enum constructors (Color((0.1, 0.2, 0.3, 1.0))).
// decodeValue rewrites that into YAML flow syntax and lets yaml.v3 do the rest:
//
//	Top                   -> "Top"
//	(100, 50)             -> [100, 50]
//	Color((0.1,0.2,0.3))  -> {Color: [0.1, 0.2, 0.3]}

// ctorRegex matches a single enum constructor wrapping the whole value.
var ctorRegex = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*\((.*)\)$`)

var (
	identRegex  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	numberRegex = regexp.MustCompile(`^[-+]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][-+]?[0-9]+)?$`)
)

// yamlOnly holds characters that carry YAML meaning but never appear in the
// values the panel writes.
const yamlOnly = "'#!&*{}:?|>%@`"

var errEmptyValue = errors.New("empty value")

// decodeValue parses one RON-like value into string, float64, []any or
// map[string]any. Anything outside the RON subset is rejected rather than
// interpreted as YAML.
func decodeValue(raw string) (any, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, errEmptyValue
	}
	if r, ok := yamlOnlyRune(s); ok {
		return nil, fmt.Errorf("invalid value %q: unexpected %q", raw, r)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(toFlow(s)), &doc); err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", raw, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("invalid value %q", raw)
	}
	v, err := fromNode(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", raw, err)
	}
	return v, nil
}

// yamlOnlyRune reports the first YAML-only character outside a quoted string.
func yamlOnlyRune(s string) (rune, bool) {
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '\n' || strings.ContainsRune(yamlOnly, r):
			return r, true
		}
	}
	return 0, false
}

// fromNode converts the node tree toFlow produces. Only plain scalars,
// flow sequences and single-entry constructor mappings are accepted.
func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return fromScalar(n)

	case yaml.SequenceNode:
		if n.Style&yaml.FlowStyle == 0 {
			return nil, errors.New("unexpected block sequence")
		}
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, errors.New("unexpected mapping")
		}
		key, err := fromScalar(n.Content[0])
		if err != nil {
			return nil, err
		}
		name, ok := key.(string)
		if !ok {
			return nil, fmt.Errorf("constructor name %v is not an identifier", key)
		}
		arg, err := fromNode(n.Content[1])
		if err != nil {
			return nil, err
		}
		return map[string]any{name: arg}, nil
	}
	return nil, fmt.Errorf("unexpected %s", n.ShortTag())
}

// fromScalar accepts plain identifiers and finite decimal numbers.
func fromScalar(n *yaml.Node) (any, error) {
	if n.Kind != yaml.ScalarNode || n.Style != 0 {
		return nil, fmt.Errorf("unexpected %q", n.Value)
	}
	switch n.Tag {
	case "!!str", "!!int", "!!float":
	default:
		return nil, fmt.Errorf("unexpected %s %q", n.Tag, n.Value)
	}

	switch {
	case numberRegex.MatchString(n.Value):
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("%q is not a finite number", n.Value)
		}
		return f, nil
	case identRegex.MatchString(n.Value) && n.Tag == "!!str":
		return n.Value, nil
	}
	return nil, fmt.Errorf("unexpected %q", n.Value)
}

// toFlow converts RON syntax into YAML flow syntax.
func toFlow(s string) string {
	s = strings.TrimSpace(s)
	if m := ctorRegex.FindStringSubmatch(s); m != nil {
		return "{" + m[1] + ": " + toFlow(m[2]) + "}"
	}

	var sb strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			sb.WriteRune(r)
		case inQuote:
			sb.WriteRune(r)
		case r == '(':
			sb.WriteRune('[')
		case r == ')':
			sb.WriteRune(']')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// identOf returns the identifier a decoded value holds.
func identOf(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// ctorOf returns the name and argument of a decoded enum constructor.
func ctorOf(v any) (string, any, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return "", nil, false
	}
	for name, arg := range m {
		return name, arg, true
	}
	return "", nil, false
}

// numbers converts a decoded tuple into finite float64 components.
func numbers(v any) ([]float64, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a tuple, got %T", v)
	}
	out := make([]float64, 0, len(list))
	for _, item := range list {
		n, ok := item.(float64)
		if !ok || math.IsInf(n, 0) || math.IsNaN(n) {
			return nil, fmt.Errorf("expected a finite number, got %v", item)
		}
		out = append(out, n)
	}
	return out, nil
}

// toUint16 accepts only whole numbers within uint16 range.
func toUint16(f float64) (uint16, error) {
	if f != math.Trunc(f) || f < 0 || f > math.MaxUint16 {
		return 0, fmt.Errorf("%v is not a valid pixel size", f)
	}
	return uint16(f), nil
}

// ParseSize parses a panel size preset (XS, S, M, L, XL) or a (width, height) pair.
func ParseSize(raw string) (Size, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return Size{}, err
	}

	if name, ok := identOf(v); ok {
		p, err := ParsePanelSize(name)
		if err != nil {
			return Size{}, err
		}
		return PresetSize(p), nil
	}

	if name, arg, ok := ctorOf(v); ok {
		switch name {
		case "PanelSize":
			if inner, ok := identOf(arg); ok {
				p, err := ParsePanelSize(inner)
				if err != nil {
					return Size{}, err
				}
				return PresetSize(p), nil
			}
			return Size{}, fmt.Errorf("invalid panel size %q", raw)
		case "Hardcoded":
			v = arg
		default:
			return Size{}, fmt.Errorf("unknown size variant %q", name)
		}
	}

	nums, err := numbers(v)
	if err != nil {
		return Size{}, fmt.Errorf("invalid size %q: %w", raw, err)
	}
	if len(nums) != 2 {
		return Size{}, fmt.Errorf("invalid size %q: want (width, height)", raw)
	}
	w, err := toUint16(nums[0])
	if err != nil {
		return Size{}, err
	}
	h, err := toUint16(nums[1])
	if err != nil {
		return Size{}, err
	}
	return FixedSize(w, h), nil
}

// ParsePanelSize parses a preset name.
func ParsePanelSize(name string) (PanelSize, error) {
	for p, n := range panelSizeNames {
		if n == name {
			return PanelSize(p), nil
		}
	}
	return 0, fmt.Errorf("invalid panel size %q, must be one of: %v", name, panelSizeNames)
}

// ParseAnchor parses Left, Right, Top or Bottom.
func ParseAnchor(raw string) (Anchor, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return 0, err
	}
	name, ok := identOf(v)
	if !ok {
		return 0, fmt.Errorf("invalid anchor %q", raw)
	}
	for a, n := range anchorNames {
		if n == name {
			return Anchor(a), nil
		}
	}
	return 0, fmt.Errorf("invalid anchor %q, must be one of: %v", name, anchorNames)
}

// ParseBackground parses ThemeDefault, Dark, Light or Color((r, g, b[, a])).
func ParseBackground(raw string) (Background, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return Background{}, err
	}

	if name, ok := identOf(v); ok {
		switch name {
		case "ThemeDefault":
			return ThemeDefault(), nil
		case "Dark":
			return DarkBackground(), nil
		case "Light":
			return LightBackground(), nil
		}
		return Background{}, fmt.Errorf("invalid background %q", name)
	}

	name, arg, ok := ctorOf(v)
	if !ok || name != "Color" {
		return Background{}, fmt.Errorf("invalid background %q", raw)
	}
	nums, err := numbers(arg)
	if err != nil {
		return Background{}, fmt.Errorf("invalid colour %q: %w", raw, err)
	}
	if len(nums) != 3 && len(nums) != 4 {
		return Background{}, fmt.Errorf("invalid colour %q: want 3 or 4 components", raw)
	}
	c := Color{R: float32(nums[0]), G: float32(nums[1]), B: float32(nums[2]), A: 1}
	if len(nums) == 4 {
		c.A = float32(nums[3])
	}
	return SolidColor(c), nil
}

// ParseOutputName accepts a bare or quoted output name.
func ParseOutputName(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return strconv.Unquote(s)
	}
	return raw, nil
}
