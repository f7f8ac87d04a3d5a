package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmylchreest/panelkit/internal/panel"
)

// Resolver turns a panel background into a theme, reading the theme store
// when the background follows the system theme.
type Resolver struct {
	store   Store
	name    string
	version uint64
	logger  *slog.Logger

	mu       sync.Mutex
	fallback Theme
	subs     map[uint64]*subscription

	// streams tracks the goroutines tying each stream to its context.
	streams sync.WaitGroup
}

// subscription is one store watch shared by every listener with the same subscriber ID.
type subscription struct {
	conn      Conn
	cancel    context.CancelFunc
	listeners map[chan Theme]chan struct{}
	current   Theme
}

// NewResolver creates a resolver reading the named store at a schema version.
func NewResolver(store Store, name string, version uint64, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:    store,
		name:     name,
		version:  version,
		logger:   logger,
		fallback: Dark(),
		subs:     make(map[uint64]*subscription),
	}
}

// SetFallback sets the theme used for anything the store cannot provide.
func (r *Resolver) SetFallback(t Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = t
}

// Fallback returns the current fallback theme.
func (r *Resolver) Fallback() Theme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fallback
}

// Builtin returns the static theme for a Dark or Light background.
func Builtin(bg panel.Background) Theme {
	if bg.Kind == panel.BackgroundLight {
		return Light()
	}
	return Dark()
}

// Resolve returns the theme for bg. Store problems never fail the caller:
// an unreachable store yields the dark theme, and entry errors are logged
// while the best-effort entry is returned.
func (r *Resolver) Resolve(bg panel.Background) Theme {
	if !bg.UsesThemeStore() {
		return Builtin(bg)
	}

	conn, err := r.store.Open(r.name, r.version)
	if err != nil {
		r.logger.Warn("theme store unavailable, using dark theme", "store", r.name, "error", err)
		return Dark()
	}
	defer conn.Close()

	return r.readEntry(conn, r.Fallback())
}

// readEntry reads the store entry and logs each error on its own.
func (r *Resolver) readEntry(conn Conn, fallback Theme) Theme {
	t, errs := conn.Entry(fallback)
	for _, err := range errs {
		r.logger.Error("theme entry error", "store", r.name, "path", conn.Path(), "error", err)
	}
	return t
}

// Updates streams the theme for bg. The current theme is delivered first,
// then a new one after every store change. Listeners that fall behind only
// see the latest theme.
//
// Calls with the same subscriber ID share one store watch. The channel is
// closed when ctx is cancelled or the subscriber is removed. Dark and Light
// backgrounds never change, so their channel is returned already closed.
func (r *Resolver) Updates(ctx context.Context, bg panel.Background, id uint64) <-chan Theme {
	out := make(chan Theme, 1)
	if !bg.UsesThemeStore() {
		close(out)
		return out
	}

	r.mu.Lock()
	sub, ok := r.subs[id]
	if !ok {
		var err error
		sub, err = r.subscribe(id)
		if err != nil {
			r.mu.Unlock()
			r.logger.Warn("theme store unavailable, using dark theme", "store", r.name, "subscriber", id, "error", err)
			out <- Dark()
			close(out)
			return out
		}
	}
	done := make(chan struct{})
	sub.listeners[out] = done
	out <- sub.current
	r.streams.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.streams.Done()
		select {
		case <-ctx.Done():
			r.detach(id, out)
		case <-done:
		}
	}()

	return out
}

// subscribe opens and watches the store for id. Must be called with mu held.
func (r *Resolver) subscribe(id uint64) (*subscription, error) {
	conn, err := r.store.Open(r.name, r.version)
	if err != nil {
		return nil, err
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	changes, err := conn.Watch(watchCtx)
	if err != nil {
		cancel()
		_ = conn.Close()
		return nil, err
	}

	sub := &subscription{
		conn:      conn,
		cancel:    cancel,
		listeners: make(map[chan Theme]chan struct{}),
		current:   r.readEntry(conn, r.fallback),
	}
	r.subs[id] = sub

	go r.forward(id, sub, changes)

	r.logger.Debug("theme subscription started", "subscriber", id, "path", conn.Path())
	return sub, nil
}

// forward rereads the entry after each change and fans it out.
func (r *Resolver) forward(id uint64, sub *subscription, changes <-chan struct{}) {
	defer func() {
		_ = sub.conn.Close()
		r.logger.Debug("theme subscription stopped", "subscriber", id)
	}()

	for range changes {
		t := r.readEntry(sub.conn, r.Fallback())

		r.mu.Lock()
		if r.subs[id] != sub {
			r.mu.Unlock()
			return
		}
		sub.current = t
		for l := range sub.listeners {
			offer(l, t)
		}
		r.mu.Unlock()
	}
}

// offer delivers t, replacing a pending value the listener has not read yet.
func offer(ch chan Theme, t Theme) {
	select {
	case ch <- t:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- t:
	default:
	}
}

// detach removes one listener and stops the watch once none remain.
func (r *Resolver) detach(id uint64, out chan Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[id]
	if !ok {
		return
	}
	done, ok := sub.listeners[out]
	if !ok {
		return
	}
	delete(sub.listeners, out)
	close(out)
	close(done)

	if len(sub.listeners) == 0 {
		sub.cancel()
		delete(r.subs, id)
	}
}

// Unsubscribe ends every stream registered under id.
func (r *Resolver) Unsubscribe(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[id]
	if !ok {
		return
	}
	for l, done := range sub.listeners {
		close(l)
		close(done)
	}
	sub.cancel()
	delete(r.subs, id)
}

// Close ends every subscription and waits for their listeners to stop.
// Updates must not be called concurrently with Close.
func (r *Resolver) Close() {
	r.mu.Lock()
	ids := make([]uint64, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		r.Unsubscribe(id)
	}
	r.streams.Wait()
}

// Subscribers returns the number of active subscriber IDs.
func (r *Resolver) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
