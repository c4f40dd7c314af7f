package overlay

import (
	"io"
	"log/slog"
	"sync"
)

// EventSource delivers the application-wide events the registry reacts to.
type EventSource interface {
	OnPointerDown(fn func(Point))
	OnResize(fn func(Size))
	OnScroll(fn func())
}

// Registry tracks the single open overlay of an application context. The
// UI loop is its only writer; the mutex keeps the active slot consistent if
// a caller strays off that goroutine. Close callbacks always run outside the
// lock.
type Registry struct {
	mu       sync.Mutex
	active   *Overlay
	last     CloseEvent
	seq      int
	viewport Size
	listen   sync.Once
	log      *slog.Logger
}

// CloseEvent records an overlay the registry closed on its own: replaced by
// another one, or dismissed by a global event. Seq increases with every
// event so repeated closes of the same overlay stay distinguishable.
type CloseEvent struct {
	Seq    int
	ID     string
	Reason string
}

func NewRegistry(viewport Size, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{viewport: viewport, log: logger}
}

// Activate makes o the open overlay, closing any other one first.
func (r *Registry) Activate(o *Overlay) {
	if o == nil {
		return
	}
	r.mu.Lock()
	prev := r.active
	r.active = o
	r.mu.Unlock()

	if prev != nil && prev != o {
		r.log.Debug("overlay replaced", "closed", prev.ID(), "opened", o.ID())
		r.recordClose(prev, "replaced")
		prev.MarkClosed()
		return
	}
	r.log.Debug("overlay activated", "id", o.ID())
}

// Deactivate clears the active slot if o holds it.
func (r *Registry) Deactivate(o *Overlay) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o != nil && r.active == o {
		r.active = nil
	}
}

func (r *Registry) Active() *Overlay {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Registry) Viewport() Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

// CloseActive closes whatever overlay is open. It reports whether one was.
func (r *Registry) CloseActive(reason string) bool {
	r.mu.Lock()
	prev := r.active
	r.active = nil
	r.mu.Unlock()

	if prev == nil {
		return false
	}
	r.log.Debug("overlay closed", "id", prev.ID(), "reason", reason)
	r.recordClose(prev, reason)
	prev.MarkClosed()
	return true
}

func (r *Registry) recordClose(o *Overlay, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.last = CloseEvent{Seq: r.seq, ID: o.ID(), Reason: reason}
}

// LastClose returns the most recent close the registry made itself. Closes
// requested by an overlay's owner are not recorded.
func (r *Registry) LastClose() CloseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// HandlePointerDown closes the active overlay when the pointer lands outside
// both the panel and its trigger.
func (r *Registry) HandlePointerDown(pt Point) {
	active := r.Active()
	if active == nil || active.Contains(pt) {
		return
	}
	r.CloseActive("outside pointer")
}

// HandleResize records the new viewport and closes the active overlay
// rather than repositioning it.
func (r *Registry) HandleResize(vp Size) {
	r.mu.Lock()
	r.viewport = vp
	r.mu.Unlock()
	r.CloseActive("resize")
}

func (r *Registry) HandleScroll() {
	r.CloseActive("scroll")
}

// Listen subscribes the registry to src. Only the first call on a registry
// subscribes; later calls report false.
func (r *Registry) Listen(src EventSource) bool {
	installed := false
	r.listen.Do(func() {
		src.OnPointerDown(r.HandlePointerDown)
		src.OnResize(r.HandleResize)
		src.OnScroll(r.HandleScroll)
		installed = true
	})
	return installed
}

// Reset closes the open overlay on teardown or navigation.
func (r *Registry) Reset() {
	r.CloseActive("reset")
}

// Dispatcher is a minimal EventSource that front ends feed from their own
// event loop.
type Dispatcher struct {
	pointer []func(Point)
	resize  []func(Size)
	scroll  []func()
}

func (d *Dispatcher) OnPointerDown(fn func(Point)) { d.pointer = append(d.pointer, fn) }
func (d *Dispatcher) OnResize(fn func(Size)) { d.resize = append(d.resize, fn) }
func (d *Dispatcher) OnScroll(fn func()) { d.scroll = append(d.scroll, fn) }

func (d *Dispatcher) PointerDown(pt Point) {
	for _, fn := range d.pointer {
		fn(pt)
	}
}

func (d *Dispatcher) Resize(s Size) {
	for _, fn := range d.resize {
		fn(s)
	}
}

func (d *Dispatcher) Scroll() {
	for _, fn := range d.scroll {
		fn()
	}
}
