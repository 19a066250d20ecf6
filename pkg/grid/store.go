package grid

import "sync"

// Subscriber receives every state transition in dispatch order, along with
// the action that produced it.
type Subscriber func(next, prev State, action Action)

// Store is the reducer-style single source of truth. It is single-writer:
// gridcore's concurrency model never calls Dispatch from more
// than one goroutine at a time, but the mutex guards against accidental
// misuse rather than for real contention.
type Store struct {
	mu          sync.Mutex
	state       State
	subscribers []Subscriber
	dispatching bool
	pending     []Action
}

// NewStore constructs a Store seeded with the given initial state.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// State returns a snapshot of the current value.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be notified on every future dispatch. The
// returned func removes the subscription; calling it more than once is a
// no-op.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
	id := len(s.subscribers) - 1
	removed := false
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if removed || id >= len(s.subscribers) {
			return
		}
		s.subscribers[id] = nil
		removed = true
	}
}

// Dispatch applies the reducer and synchronously notifies all subscribers
// with (next, prev, action). A dispatch made from inside a subscriber's
// notification (reentrant dispatch) is enqueued and flushed once the
// current notification completes. It is never dropped and never
// interleaves with the in-progress notification.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	if s.dispatching {
		s.pending = append(s.pending, action)
		s.mu.Unlock()
		return
	}
	s.dispatching = true
	s.mu.Unlock()

	s.apply(action)

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.dispatching = false
			s.mu.Unlock()
			break
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
		s.apply(next)
	}
}

func (s *Store) apply(action Action) {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, action)
	s.state = next
	subs := append([]Subscriber(nil), s.subscribers...)
	s.mu.Unlock()

	for _, sub := range subs {
		if sub == nil {
			continue
		}
		sub(next, prev, action)
	}
}
