package layout

import "slices"

// Capture registers the host's pointer-move/pointer-up handlers for the
// lifetime of a separator drag. Acquire is called when a session opens and
// Release exactly once when it closes.
type Capture interface {
	Acquire(s *SeparatorSession)
	Release(s *SeparatorSession)
}

type nopCapture struct{}

func (nopCapture) Acquire(*SeparatorSession) {}
func (nopCapture) Release(*SeparatorSession) {}

// SessionStats counts what happened to the move events of one session.
type SessionStats struct {
	Applied int // frames that changed the proportion vector
	Skipped int // frames that reached the resize math but were degenerate
	Dropped int // frames dropped by the throttle
}

// SeparatorSession is an open separator drag. Every move is computed from the
// proportions captured when the session opened, so a frame depends only on
// the pointer position and repeating a frame changes nothing.
type SeparatorSession struct {
	engine   *Engine
	index    int
	baseline []float64
	released bool
	stats    SessionStats
}

// Index returns the separator's layout index.
func (s *SeparatorSession) Index() int { return s.index }

// Active reports whether the session has not been released yet.
func (s *SeparatorSession) Active() bool { return !s.released }

// Stats returns the move counters so far.
func (s *SeparatorSession) Stats() SessionStats { return s.stats }

// Baseline returns the proportion vector captured when the session opened.
func (s *SeparatorSession) Baseline() []float64 { return slices.Clone(s.baseline) }

// Move feeds one pointer-move event. It reports whether the proportion
// vector changed. Events arriving inside the throttle window are dropped.
func (s *SeparatorSession) Move(p Point) bool {
	if s.released {
		return false
	}
	if !s.engine.throttle.Allow() {
		s.stats.Dropped++
		return false
	}
	return s.apply(p)
}

func (s *SeparatorSession) apply(p Point) bool {
	e := s.engine
	props, ok := ComputeResize(ResizeInput{
		Proportions:  s.baseline,
		Separator:    s.index,
		Pointer:      p,
		Container:    e.bounds,
		Axis:         e.opts.Axis,
		Reversed:     e.opts.Reversed,
		FixedExtent:  e.state.TotalFixedExtent(e.opts.Axis),
		SpacerExtent: e.state.TotalSpacerSize,
	})
	if ok {
		e.state.Proportions = props
		s.stats.Applied++
	} else {
		s.stats.Skipped++
	}
	if e.opts.Observer != nil {
		e.opts.Observer.SeparatorMoved(s.index, e.Proportions(), ok)
	}
	return ok
}

// Release ends the session and releases pointer capture. Calling it again is
// a no-op, so every exit path may call it.
func (s *SeparatorSession) Release() {
	if s.released {
		return
	}
	s.released = true
	e := s.engine
	if e.session == s {
		e.session = nil
	}
	e.opts.Capture.Release(s)
	if e.opts.Observer != nil {
		e.opts.Observer.SeparatorReleased(s.index, e.Proportions(), s.stats)
	}
}
