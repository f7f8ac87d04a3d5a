package output

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"
)

// PlainFormatter formats reports as aligned plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes the report as plain text.
func (f *PlainFormatter) Format(w io.Writer, r *Report) error {
	if f.template != nil {
		if err := f.template.Execute(w, r); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	if f.opts.Field != "" {
		value, err := FormatField(r, f.opts.Field)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, value)
		return err
	}

	var sb strings.Builder
	line := func(label, value string) {
		sb.WriteString(fmt.Sprintf("%-16s %s\n", label+":", value))
	}

	line("size", r.Panel.Size)
	line("anchor", r.Panel.Anchor)
	line("background", r.Panel.Background)
	line("output", orNone(r.Panel.Output))
	line("suggested size", fmt.Sprintf("%dx%d", r.SuggestedSize.Width, r.SuggestedSize.Height))
	line("window", formatWindow(r))
	line("popup anchor", r.Popup.Positioner.Anchor.String())
	line("popup gravity", r.Popup.Positioner.Gravity.String())
	line("popup offset", fmt.Sprintf("(%d, %d)", r.Popup.Positioner.Offset.X, r.Popup.Positioner.Offset.Y))
	line("anchor rect", formatRect(r))
	line("constraints", r.Popup.Positioner.ConstraintAdjustment.String())
	line("alignment", fmt.Sprintf("%s, %s", r.Alignment.Horizontal, r.Alignment.Vertical))

	if t := r.Theme; t != nil {
		sb.WriteString("\n")
		line("theme", t.Name)
		line("dark", fmt.Sprintf("%t", t.Dark))
		line("corner radius", fmt.Sprintf("%g", t.CornerRadius))
		if t.Source != "" {
			line("source", t.Source)
		}
		if t.Modified != nil {
			line("modified", humanize.Time(*t.Modified))
		}
		for _, c := range t.Palette {
			line(c.Key, c.Color.Hex())
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// ErrUnknownField is returned by FormatField for a field it does not know.
var ErrUnknownField = errors.New("unknown field")

// FieldNames lists the fields FormatField accepts.
func FieldNames() []string {
	return []string{
		"size", "anchor", "background", "output", "suggested_size", "window",
		"gravity", "popup_anchor", "offset", "anchor_rect", "alignment", "theme",
	}
}

// FormatField outputs a specific field from a report.
func FormatField(r *Report, field string) (string, error) {
	value, ok := fieldValue(r, strings.ToLower(field))
	if !ok {
		return "", fmt.Errorf("%w %q, valid fields: %s", ErrUnknownField, field, strings.Join(FieldNames(), ", "))
	}
	return value, nil
}

func fieldValue(r *Report, field string) (string, bool) {
	switch field {
	case "size":
		return r.Panel.Size, true
	case "anchor":
		return r.Panel.Anchor, true
	case "background":
		return r.Panel.Background, true
	case "output":
		return r.Panel.Output, true
	case "suggested", "suggested_size":
		return fmt.Sprintf("%dx%d", r.SuggestedSize.Width, r.SuggestedSize.Height), true
	case "window":
		return formatWindow(r), true
	case "gravity":
		return r.Popup.Positioner.Gravity.String(), true
	case "popup_anchor":
		return r.Popup.Positioner.Anchor.String(), true
	case "offset":
		return fmt.Sprintf("%d,%d", r.Popup.Positioner.Offset.X, r.Popup.Positioner.Offset.Y), true
	case "anchor_rect":
		return formatRect(r), true
	case "alignment":
		return fmt.Sprintf("%s,%s", r.Alignment.Horizontal, r.Alignment.Vertical), true
	case "theme":
		if r.Theme != nil {
			return r.Theme.Name, true
		}
		return "", true
	}
	return "", false
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"orNone": orNone,
	}
}

func formatWindow(r *Report) string {
	fixed := "resizable"
	if !r.Window.Resizable {
		fixed = "fixed"
	}
	return fmt.Sprintf("%dx%d (%s)", r.Window.Width, r.Window.Height, fixed)
}

func formatRect(r *Report) string {
	rect := r.Popup.Positioner.AnchorRect
	return fmt.Sprintf("%d,%d %dx%d", rect.X, rect.Y, rect.Width, rect.Height)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
