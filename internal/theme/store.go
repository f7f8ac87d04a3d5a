package theme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrStoreUnavailable is returned when the theme store cannot be opened.
var ErrStoreUnavailable = errors.New("theme store unavailable")

// EntryFile is the file holding a theme inside a store version directory.
const EntryFile = "theme.toml"

// Store is a process-wide theme configuration store.
type Store interface {
	// Open connects to the named store at a schema version.
	Open(name string, version uint64) (Conn, error)
}

// Conn is an open connection to a theme store.
type Conn interface {
	// Entry reads the current theme. Fields that cannot be read keep the
	// value from fallback and are reported as errors; the returned theme is
	// always usable.
	Entry(fallback Theme) (Theme, []error)

	// Watch signals on the returned channel whenever the entry changes,
	// until ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Path returns where the entry lives, for diagnostics.
	Path() string

	Close() error
}

// FieldError reports a theme field that could not be read.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("theme field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("theme field %q = %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

var errUnknownField = errors.New("unknown field")

// FileStore keeps themes as TOML files under <root>/<name>/v<version>/theme.toml.
type FileStore struct {
	root string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

// Open implements Store. The version directory is created if missing.
func (s *FileStore) Open(name string, version uint64) (Conn, error) {
	if s.root == "" {
		return nil, fmt.Errorf("%w: no store directory", ErrStoreUnavailable)
	}
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("%w: invalid store name %q", ErrStoreUnavailable, name)
	}

	dir := filepath.Join(s.root, name, "v"+strconv.FormatUint(version, 10))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return &fileConn{dir: dir}, nil
}

type fileConn struct {
	dir string
}

// entryFile is the on-disk shape of a theme entry.
type entryFile struct {
	Name         string            `toml:"name"`
	IsDark       *bool             `toml:"is_dark"`
	CornerRadius *float32          `toml:"corner_radius"`
	Palette      map[string]string `toml:"palette"`
}

func (c *fileConn) Path() string {
	return filepath.Join(c.dir, EntryFile)
}

// Entry implements Conn.
func (c *fileConn) Entry(fallback Theme) (Theme, []error) {
	data, err := os.ReadFile(c.Path())
	if err != nil {
		return fallback, []error{fmt.Errorf("failed to read theme entry: %w", err)}
	}
	return decodeEntry(data, fallback)
}

// decodeEntry overlays a TOML entry onto fallback, collecting one error per bad field.
func decodeEntry(data []byte, fallback Theme) (Theme, []error) {
	var raw entryFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fallback, []error{fmt.Errorf("failed to parse theme entry: %w", err)}
	}

	t := fallback
	var errs []error

	if raw.Name != "" {
		t.Name = raw.Name
	}
	if raw.IsDark != nil {
		t.IsDark = *raw.IsDark
		// Unset colours come from the built-in theme of the same polarity.
		if t.IsDark != fallback.IsDark {
			base := Light()
			if t.IsDark {
				base = Dark()
			}
			t.Palette = base.Palette
		}
	}
	if raw.CornerRadius != nil {
		if *raw.CornerRadius < 0 {
			errs = append(errs, &FieldError{
				Field: "corner_radius",
				Value: strconv.FormatFloat(float64(*raw.CornerRadius), 'g', -1, 32),
				Err:   errors.New("must not be negative"),
			})
		} else {
			t.CornerRadius = *raw.CornerRadius
		}
	}

	known := make(map[string]*Color)
	for _, f := range t.Palette.fields() {
		known[f.key] = f.ptr
	}
	for key, value := range raw.Palette {
		ptr, ok := known[key]
		if !ok {
			errs = append(errs, &FieldError{Field: "palette." + key, Value: value, Err: errUnknownField})
			continue
		}
		c, err := ParseHex(value)
		if err != nil {
			errs = append(errs, &FieldError{Field: "palette." + key, Value: value, Err: err})
			continue
		}
		*ptr = c
	}

	return t, errs
}

// Write stores t as the entry of an open FileStore connection.
func Write(conn Conn, t Theme) error {
	palette := make(map[string]string)
	for _, e := range t.Palette.Entries() {
		palette[e.Key] = e.Color.Hex()
	}
	isDark := t.IsDark
	radius := t.CornerRadius

	data, err := toml.Marshal(entryFile{
		Name:         t.Name,
		IsDark:       &isDark,
		CornerRadius: &radius,
		Palette:      palette,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}

	// Write atomically via temp file
	path := conn.Path()
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write theme entry: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Watch implements Conn.
func (c *fileConn) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, err := NewWatcher(c.Path(), nil)
	if err != nil {
		return nil, err
	}
	return w.Run(ctx)
}

// ModTime reports when the entry was last written, or zero if it is missing.
func ModTime(conn Conn) time.Time {
	info, err := os.Stat(conn.Path())
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (c *fileConn) Close() error {
	return nil
}
