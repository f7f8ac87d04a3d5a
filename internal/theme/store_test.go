package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_OpenCreatesVersionDir(t *testing.T) {
	root := t.TempDir()

	conn, err := NewFileStore(root).Open("org.example.Theme", 2)
	require.NoError(t, err)
	defer conn.Close()

	info, err := os.Stat(filepath.Join(root, "org.example.Theme", "v2"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(root, "org.example.Theme", "v2", EntryFile), conn.Path())
}

func TestFileStore_OpenFailures(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	cases := []struct {
		name      string
		root      string
		storeName string
	}{
		{"empty root", "", "org.example.Theme"},
		{"empty name", root, ""},
		{"nested name", root, "a/b"},
		{"root is a file", blocker, "org.example.Theme"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFileStore(tc.root).Open(tc.storeName, 1)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrStoreUnavailable))
		})
	}
}

func TestFileConn_EntryMissingFile(t *testing.T) {
	conn, err := NewFileStore(t.TempDir()).Open("org.example.Theme", 1)
	require.NoError(t, err)

	th, errs := conn.Entry(Light())
	assert.Equal(t, Light(), th)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], os.ErrNotExist))
}

func TestFileConn_WriteAndRead(t *testing.T) {
	conn, err := NewFileStore(t.TempDir()).Open("org.example.Theme", 1)
	require.NoError(t, err)

	want := Light()
	want.Name = "custom"
	want.CornerRadius = 6
	want.Palette.Accent = RGB(0x12, 0x34, 0x56)

	require.NoError(t, Write(conn, want))

	got, errs := conn.Entry(Dark())
	assert.Empty(t, errs)
	assert.Equal(t, "custom", got.Name)
	assert.False(t, got.IsDark)
	assert.Equal(t, float32(6), got.CornerRadius)
	assert.Equal(t, "#123456", got.Palette.Accent.Hex())
	assert.Equal(t, want.Palette.Background.Hex(), got.Palette.Background.Hex())
	assert.False(t, ModTime(conn).IsZero())
}

func TestDecodeEntry_PartialOverlay(t *testing.T) {
	data := []byte(`
name = "partial"

[palette]
accent = "#ff0000"
`)
	got, errs := decodeEntry(data, Dark())

	assert.Empty(t, errs)
	assert.Equal(t, "partial", got.Name)
	assert.True(t, got.IsDark)
	assert.Equal(t, "#ff0000", got.Palette.Accent.Hex())
	assert.Equal(t, Dark().Palette.Background, got.Palette.Background)
}

func TestDecodeEntry_OneErrorPerBadField(t *testing.T) {
	data := []byte(`
corner_radius = -3.0

[palette]
background = "#zzzzzz"
accent = "not a colour"
sparkle = "#ffffff"
divider = "#101010"
`)
	got, errs := decodeEntry(data, Dark())

	require.Len(t, errs, 4)

	fields := make(map[string]bool)
	for _, err := range errs {
		var fe *FieldError
		require.True(t, errors.As(err, &fe), "error %v should be a FieldError", err)
		fields[fe.Field] = true
	}
	assert.True(t, fields["corner_radius"])
	assert.True(t, fields["palette.background"])
	assert.True(t, fields["palette.accent"])
	assert.True(t, fields["palette.sparkle"])

	// Bad fields keep the fallback, good ones apply.
	assert.Equal(t, Dark().CornerRadius, got.CornerRadius)
	assert.Equal(t, Dark().Palette.Background, got.Palette.Background)
	assert.Equal(t, Dark().Palette.Accent, got.Palette.Accent)
	assert.Equal(t, "#101010", got.Palette.Divider.Hex())
}

func TestDecodeEntry_PolaritySwitchUsesMatchingBase(t *testing.T) {
	got, errs := decodeEntry([]byte("is_dark = false\n"), Dark())

	assert.Empty(t, errs)
	assert.False(t, got.IsDark)
	assert.Equal(t, Light().Palette, got.Palette)
}

func TestDecodeEntry_SyntaxError(t *testing.T) {
	got, errs := decodeEntry([]byte("this is [ not toml"), Light())

	assert.Equal(t, Light(), got)
	assert.Len(t, errs, 1)
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: "palette.accent", Value: "nope", Err: errUnknownField}
	assert.Equal(t, `theme field "palette.accent" = "nope": unknown field`, err.Error())
	assert.True(t, errors.Is(err, errUnknownField))

	bare := &FieldError{Field: "x", Err: errUnknownField}
	assert.Equal(t, `theme field "x": unknown field`, bare.Error())
}
