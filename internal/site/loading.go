package site

import "sync/atomic"

// Route identifies a document being loaded.
type Route struct {
	// Path of the document, /-separated, no leading slash.
	Path string
}

// LoadSignal publishes the route whose content is currently
// being loaded or rebuilt, if any.
//
// Busy state is always derived from the current pointer,
// never tracked separately, so the indicator cannot drift
// from the signal that feeds it.
type LoadSignal struct {
	cur atomic.Pointer[Route]
}

// Begin marks the given route as loading.
func (s *LoadSignal) Begin(r Route) {
	s.cur.Store(&r)
}

// End clears the loading route.
func (s *LoadSignal) End() {
	s.cur.Store(nil)
}

// Current returns the route currently loading,
// or nil if nothing is in flight.
func (s *LoadSignal) Current() *Route {
	return s.cur.Load()
}

// Busy reports whether a load is in flight.
// It is true exactly while Current is non-nil.
func (s *LoadSignal) Busy() bool {
	return s.Current() != nil
}
