package theme

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/panelkit/internal/panel"
)

// fakeStore counts connections and hands out one shared fakeConn.
type fakeStore struct {
	mu      sync.Mutex
	opens   int
	openErr error
	conn    *fakeConn
}

func (s *fakeStore) Open(name string, version uint64) (Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opens++
	if s.openErr != nil {
		return nil, s.openErr
	}
	return s.conn, nil
}

func (s *fakeStore) Opens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens
}

type fakeConn struct {
	mu       sync.Mutex
	theme    *Theme
	errs     []error
	watchers map[chan struct{}]struct{}
}

func newFakeConn(t *Theme, errs ...error) *fakeConn {
	return &fakeConn{theme: t, errs: errs, watchers: make(map[chan struct{}]struct{})}
}

func (c *fakeConn) Entry(fallback Theme) (Theme, []error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.theme == nil {
		return fallback, c.errs
	}
	return *c.theme, c.errs
}

func (c *fakeConn) set(t Theme) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = &t
}

// fire signals a change to every active watch.
func (c *fakeConn) fire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for w := range c.watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
}

func (c *fakeConn) Watch(ctx context.Context) (<-chan struct{}, error) {
	out := make(chan struct{}, 1)
	c.mu.Lock()
	c.watchers[out] = struct{}{}
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.watchers, out)
		close(out)
		c.mu.Unlock()
	}()
	return out, nil
}

func (c *fakeConn) Path() string { return "/fake/theme.toml" }
func (c *fakeConn) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func receive(t *testing.T, ch <-chan Theme) Theme {
	t.Helper()
	select {
	case th, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return th
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for theme")
		return Theme{}
	}
}

func TestResolve_StaticBackgroundsSkipStore(t *testing.T) {
	store := &fakeStore{openErr: errors.New("must not be called")}
	r := NewResolver(store, "org.example.Theme", 1, discardLogger())

	assert.Equal(t, Dark(), r.Resolve(panel.DarkBackground()))
	assert.Equal(t, Light(), r.Resolve(panel.LightBackground()))
	assert.Zero(t, store.Opens())
}

func TestResolve_ReadsStore(t *testing.T) {
	custom := Light()
	custom.Name = "custom"
	store := &fakeStore{conn: newFakeConn(&custom)}
	r := NewResolver(store, "org.example.Theme", 1, discardLogger())

	for _, bg := range []panel.Background{
		panel.ThemeDefault(),
		panel.SolidColor(panel.Color{R: 1, A: 1}),
	} {
		assert.Equal(t, "custom", r.Resolve(bg).Name)
	}
	assert.Equal(t, 2, store.Opens())
}

func TestResolve_StoreUnavailableUsesDark(t *testing.T) {
	store := &fakeStore{openErr: ErrStoreUnavailable}
	r := NewResolver(store, "org.example.Theme", 1, discardLogger())
	r.SetFallback(Light())

	assert.Equal(t, Dark(), r.Resolve(panel.ThemeDefault()))
}

func TestResolve_LogsEachEntryError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	store := &fakeStore{conn: newFakeConn(nil,
		&FieldError{Field: "palette.accent", Err: errUnknownField},
		&FieldError{Field: "palette.divider", Err: errUnknownField},
		errors.New("third"),
	)}
	r := NewResolver(store, "org.example.Theme", 1, logger)
	r.SetFallback(Light())

	th := r.Resolve(panel.ThemeDefault())

	assert.Equal(t, Light(), th, "fallback should be used for a missing entry")
	assert.Equal(t, 3, strings.Count(buf.String(), "theme entry error"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "palette.divider")
}

func TestUpdates_StaticBackgroundsAreEmpty(t *testing.T) {
	store := &fakeStore{openErr: errors.New("must not be called")}
	r := NewResolver(store, "org.example.Theme", 1, discardLogger())

	for _, bg := range []panel.Background{panel.DarkBackground(), panel.LightBackground()} {
		ch := r.Updates(context.Background(), bg, 1)
		_, ok := <-ch
		assert.False(t, ok, "channel should be closed")
	}
	assert.Zero(t, store.Opens())
	assert.Zero(t, r.Subscribers())
}

func TestUpdates_StoreUnavailableYieldsDarkOnce(t *testing.T) {
	store := &fakeStore{openErr: ErrStoreUnavailable}
	r := NewResolver(store, "org.example.Theme", 1, discardLogger())

	ch := r.Updates(context.Background(), panel.ThemeDefault(), 1)

	assert.Equal(t, Dark(), receive(t, ch))
	_, ok := <-ch
	assert.False(t, ok)
}

func TestUpdates_DeliversCurrentThenChanges(t *testing.T) {
	first := Light()
	conn := newFakeConn(&first)
	r := NewResolver(&fakeStore{conn: conn}, "org.example.Theme", 1, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := r.Updates(ctx, panel.ThemeDefault(), 7)
	assert.Equal(t, LightName, receive(t, ch).Name)

	next := Dark()
	next.Name = "next"
	conn.set(next)
	conn.fire()

	assert.Equal(t, "next", receive(t, ch).Name)
}

func TestUpdates_SameSubscriberSharesWatch(t *testing.T) {
	conn := newFakeConn(nil)
	store := &fakeStore{conn: conn}
	r := NewResolver(store, "org.example.Theme", 1, discardLogger())

	ctxA, cancelA := context.WithCancel(context.Background())
	ctxB, cancelB := context.WithCancel(context.Background())
	defer cancelB()

	a := r.Updates(ctxA, panel.ThemeDefault(), 42)
	b := r.Updates(ctxB, panel.ThemeDefault(), 42)
	receive(t, a)
	receive(t, b)

	assert.Equal(t, 1, store.Opens())
	assert.Equal(t, 1, r.Subscribers())

	other := r.Updates(ctxB, panel.ThemeDefault(), 43)
	receive(t, other)
	assert.Equal(t, 2, store.Opens())
	assert.Equal(t, 2, r.Subscribers())

	// Dropping one listener keeps the shared watch alive.
	cancelA()
	require.Eventually(t, func() bool {
		_, ok := <-a
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, r.Subscribers())

	updated := Light()
	updated.Name = "shared"
	conn.set(updated)
	conn.fire()
	assert.Equal(t, "shared", receive(t, b).Name)
}

func TestUpdates_CancelStopsSubscription(t *testing.T) {
	r := NewResolver(&fakeStore{conn: newFakeConn(nil)}, "org.example.Theme", 1, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	ch := r.Updates(ctx, panel.ThemeDefault(), 1)
	receive(t, ch)

	cancel()

	require.Eventually(t, func() bool {
		return r.Subscribers() == 0
	}, 2*time.Second, 10*time.Millisecond)
	_, ok := <-ch
	assert.False(t, ok)
}

func TestUnsubscribe(t *testing.T) {
	r := NewResolver(&fakeStore{conn: newFakeConn(nil)}, "org.example.Theme", 1, discardLogger())

	ch := r.Updates(context.Background(), panel.ThemeDefault(), 5)
	receive(t, ch)

	r.Unsubscribe(5)
	r.Unsubscribe(5)

	_, ok := <-ch
	assert.False(t, ok)
	assert.Zero(t, r.Subscribers())
}

func TestClose(t *testing.T) {
	r := NewResolver(&fakeStore{conn: newFakeConn(nil)}, "org.example.Theme", 1, discardLogger())

	a := r.Updates(context.Background(), panel.ThemeDefault(), 1)
	b := r.Updates(context.Background(), panel.ThemeDefault(), 2)
	receive(t, a)
	receive(t, b)

	r.Close()

	_, okA := <-a
	_, okB := <-b
	assert.False(t, okA)
	assert.False(t, okB)
	assert.Zero(t, r.Subscribers())
}

func TestUpdates_FileStoreChange(t *testing.T) {
	store := NewFileStore(t.TempDir())
	conn, err := store.Open("org.example.Theme", 1)
	require.NoError(t, err)
	require.NoError(t, Write(conn, Dark()))

	r := NewResolver(store, "org.example.Theme", 1, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := r.Updates(ctx, panel.ThemeDefault(), 1)
	assert.Equal(t, DarkName, receive(t, ch).Name)

	changed := Light()
	changed.Name = "rewritten"
	require.NoError(t, Write(conn, changed))

	require.Eventually(t, func() bool {
		select {
		case th := <-ch:
			return th.Name == "rewritten"
		default:
			return false
		}
	}, 5*time.Second, 20*time.Millisecond)
}

func TestBuiltin(t *testing.T) {
	assert.Equal(t, Light(), Builtin(panel.LightBackground()))
	assert.Equal(t, Dark(), Builtin(panel.DarkBackground()))
}

func TestUnsubscribe_StopsListenerWithoutCancel(t *testing.T) {
	r := NewResolver(&fakeStore{conn: newFakeConn(nil)}, "org.example.Theme", 1, discardLogger())

	// A context that is never cancelled.
	ch := r.Updates(context.Background(), panel.ThemeDefault(), 3)
	receive(t, ch)
	r.Unsubscribe(3)

	closed := make(chan struct{})
	go func() {
		r.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("listener goroutine outlived Unsubscribe")
	}
}

func TestClose_WaitsForListeners(t *testing.T) {
	r := NewResolver(&fakeStore{conn: newFakeConn(nil)}, "org.example.Theme", 1, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for id := uint64(1); id <= 3; id++ {
		receive(t, r.Updates(ctx, panel.ThemeDefault(), id))
	}

	r.Close()
	assert.Zero(t, r.Subscribers())
}
