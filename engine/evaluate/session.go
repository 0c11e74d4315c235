package evaluate

import (
	"sync"
	"sync/atomic"

	"github.com/npillmayer/lettermath/core/font"
	"github.com/npillmayer/lettermath/engine/colors"
	"github.com/npillmayer/lettermath/engine/glyphing"
)

// Session re-renders source text whenever it changes and publishes the
// result of the latest request. Renders run concurrently, each with its
// own color strategy. A result is committed only if no newer request has
// been committed before, so slow renders of stale input never overwrite
// newer pictures.
type Session struct {
	mx        sync.Mutex
	delivery  sync.Mutex // serializes calls to observers
	font      *font.TypeCase
	colors    colors.Factory
	shaper    glyphing.Shaper
	lastID    uint64 // last request id handed out, accessed atomically
	committed uint64 // highest committed id
	latest    *Result
	inflight  sync.WaitGroup
	observers []func(*Result)
}

// NewSession creates a session rendering with a typecase and a factory for
// color strategies. If factory is nil, the default strategy is used.
func NewSession(tc *font.TypeCase, factory colors.Factory) *Session {
	if factory == nil {
		factory = colors.Default
	}
	return &Session{font: tc, colors: factory}
}

// SetFont changes the typecase for subsequent requests.
func (s *Session) SetFont(tc *font.TypeCase) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.font = tc
}

// SetColors changes the color strategy factory for subsequent requests.
func (s *Session) SetColors(factory colors.Factory) {
	if factory == nil {
		return
	}
	s.mx.Lock()
	defer s.mx.Unlock()
	s.colors = factory
}

// SetShaper changes the shaper for subsequent requests. A nil shaper
// selects HarfBuzz.
func (s *Session) SetShaper(shaper glyphing.Shaper) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.shaper = shaper
}

// OnCommit registers a function to be called for committed results.
// Observers are called from rendering goroutines, one result at a time and
// in commit order. A result superseded before it could be delivered is
// skipped. Observers must not call Commit.
func (s *Session) OnCommit(f func(*Result)) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.observers = append(s.observers, f)
}

// Update starts rendering text in the background and returns the id of
// the request. Ids are increasing.
func (s *Session) Update(text string) uint64 {
	id := atomic.AddUint64(&s.lastID, 1)
	s.mx.Lock()
	tc, factory, shaper := s.font, s.colors, s.shaper
	s.mx.Unlock()
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		r := RenderText(text, tc, factory, shaper)
		r.ID = id
		s.Commit(r)
	}()
	tracer().Debugf("request #%d: %q", id, text)
	return id
}

// Commit publishes a result, unless a result with the same or a higher id
// has already been committed. It reports whether r has been accepted.
func (s *Session) Commit(r *Result) bool {
	if r == nil {
		return false
	}
	s.mx.Lock()
	if r.ID <= s.committed {
		s.mx.Unlock()
		tracer().Debugf("dropping stale result #%d", r.ID)
		return false
	}
	s.committed, s.latest = r.ID, r
	s.mx.Unlock()
	s.deliver(r)
	return true
}

func (s *Session) deliver(r *Result) {
	s.delivery.Lock()
	defer s.delivery.Unlock()
	s.mx.Lock()
	current, observers := r.ID == s.committed, s.observers
	s.mx.Unlock()
	if !current {
		tracer().Debugf("result #%d superseded before delivery", r.ID)
		return
	}
	for _, f := range observers {
		f(r)
	}
}

// Latest returns the most recently committed result, or nil.
func (s *Session) Latest() *Result {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.latest
}

// Wait blocks until all requests started so far have finished.
func (s *Session) Wait() {
	s.inflight.Wait()
}
