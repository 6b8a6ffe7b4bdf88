// Package store is the in-memory mirror of persisted state used for
// rendering. It is made of three independent slices, each updated by a pure
// reducer. A Store is created once per session and shared by reference.
package store

import (
	"sync"

	"blogspace/app/models"
)

// State is a snapshot of all slices.
type State struct {
	Auth     AuthState     `json:"auth"`
	Posts    PostsState    `json:"posts"`
	Comments CommentsState `json:"comments"`
}

// Listener is notified after every dispatched action with the new state.
type Listener func(action Action, state State)

// Store owns the current State and serializes dispatches.
type Store struct {
	mutex     sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// New creates a Store in its initial state.
func New() *Store {
	return &Store{
		state: State{
			Auth:     AuthState{},
			Posts:    InitialPosts(),
			Comments: InitialComments(),
		},
		listeners: make(map[int]Listener),
	}
}

// Dispatch applies action to every slice and notifies listeners.
func (s *Store) Dispatch(action Action) {
	s.mutex.Lock()
	s.state = State{
		Auth:     ReduceAuth(s.state.Auth, action),
		Posts:    ReducePosts(s.state.Posts, action),
		Comments: ReduceComments(s.state.Comments, action),
	}
	snapshot := s.snapshot()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mutex.Unlock()

	for _, l := range listeners {
		l(action, snapshot)
	}
}

// Subscribe registers a listener and returns a function removing it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		delete(s.listeners, id)
	}
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.snapshot()
}

// Auth returns a copy of the auth slice.
func (s *Store) Auth() AuthState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state.Auth.clone()
}

// Posts returns a copy of the posts slice.
func (s *Store) Posts() PostsState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state.Posts.clone()
}

// Comments returns a copy of the loaded comments of one post.
func (s *Store) Comments(postID string) []models.Comment {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]models.Comment{}, s.state.Comments.Comments[postID]...)
}

func (s *Store) snapshot() State {
	return State{
		Auth:     s.state.Auth.clone(),
		Posts:    s.state.Posts.clone(),
		Comments: s.state.Comments.clone(),
	}
}
