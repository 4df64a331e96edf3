package app

import (
	"log"
	"sync"
)

// State owns the window's current Session and notifies listeners when
// parts of it change.
type State struct {
	mu      sync.RWMutex
	session Session

	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventTargetChanged
	EventResultChanged
	EventStatusChanged
	EventModelTrained
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	return &State{
		session:   NewSession(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Session returns a copy of the current session.
func (s *State) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Apply runs a handler over the current session, stores the result and
// emits an event for each part that changed.
func (s *State) Apply(handler func(Session) Session) Session {
	s.mu.Lock()
	old := s.session
	next := handler(old)
	s.session = next
	s.mu.Unlock()

	if next.Picture != old.Picture {
		s.Emit(EventImageLoaded, next.Picture)
	}
	if next.Target != old.Target {
		s.Emit(EventTargetChanged, next.Target)
	}
	if next.Result != old.Result {
		s.Emit(EventResultChanged, next.Result)
	}
	if next.Status != old.Status {
		if !next.Status.OK {
			log.Printf("Status: %s (%v)", next.Status.Text, next.Status.Err)
		}
		s.Emit(EventStatusChanged, next.Status)
	}
	return next
}

// SetStatus replaces only the status.
func (s *State) SetStatus(st Status) {
	s.Apply(func(sess Session) Session {
		sess.Status = st
		return sess
	})
}
