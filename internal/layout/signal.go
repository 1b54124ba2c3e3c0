// Package layout carries the shared UI-layout state that page chrome
// (header, promo bar) consumes reactively. Gates write intent here; they
// never reach into sibling components.
package layout

import "sync"

// ChromeState says whether the surrounding page chrome should be shown.
type ChromeState int

const (
	ChromeVisible ChromeState = iota
	ChromeHidden
)

func (c ChromeState) String() string {
	if c == ChromeHidden {
		return "hidden"
	}
	return "visible"
}

// Signal is a small single-value broadcast. Subscribers get the latest
// state on subscription and on every change; slow subscribers only ever see
// the most recent value.
type Signal struct {
	mu    sync.Mutex
	state ChromeState
	subs  map[int]chan ChromeState
	next  int
}

func NewSignal() *Signal {
	return &Signal{subs: make(map[int]chan ChromeState)}
}

func (s *Signal) Get() ChromeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set publishes a new state. No-op when unchanged.
func (s *Signal) Set(state ChromeState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == state {
		return
	}
	s.state = state
	for _, ch := range s.subs {
		// Replace a stale pending value rather than blocking.
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}

// Subscribe registers a consumer. The returned cancel must be called when
// the consumer unmounts.
func (s *Signal) Subscribe() (<-chan ChromeState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	ch := make(chan ChromeState, 1)
	ch <- s.state
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
	return ch, cancel
}
