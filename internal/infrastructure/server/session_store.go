// Package server hosts the transport layer: the SSE and streamable HTTP
// session managers, the stdio adapter, and the router that exposes the
// HTTP transports on one listener. All transports funnel into the same
// JSON-RPC dispatch function.
package server

import (
	"context"
	"encoding/json"
	"sync"
)

// DispatchFunc is the shared JSON-RPC entry point every transport binds
// to. A nil return means the message was a notification and no response
// is written.
type DispatchFunc func(ctx context.Context, rawMessage json.RawMessage) interface{}

// Session is the capability contract a transport session fulfils:
// a stable id, request handling bound to the shared dispatch, and an
// idempotent close. Managers interact with sessions only through this
// interface.
type Session interface {
	// ID returns the session identifier the session was created with.
	ID() string
	// HandleRequest dispatches one raw JSON-RPC message for this session.
	HandleRequest(ctx context.Context, rawMessage json.RawMessage) interface{}
	// Close releases the session. Safe to call more than once.
	Close()
}

// SessionStore holds the live sessions of one manager keyed by id.
// Stores are dependency-injected so tests can observe them; they are
// never package-level singletons. All methods are safe for concurrent
// use; the store itself is the only synchronization the managers rely on.
type SessionStore struct {
	entries sync.Map
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Put registers a session under its own id, replacing any previous entry.
func (s *SessionStore) Put(session Session) {
	s.entries.Store(session.ID(), session)
}

// Get returns the live session for id.
func (s *SessionStore) Get(id string) (Session, bool) {
	value, ok := s.entries.Load(id)
	if !ok {
		return nil, false
	}
	return value.(Session), true
}

// Remove drops the entry for id. Removing an unknown id is a no-op.
func (s *SessionStore) Remove(id string) {
	s.entries.Delete(id)
}

// Len counts the live sessions.
func (s *SessionStore) Len() int {
	n := 0
	s.entries.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// CloseAll closes every live session and empties the store. Used on
// server shutdown.
func (s *SessionStore) CloseAll() {
	s.entries.Range(func(key, value interface{}) bool {
		value.(Session).Close()
		s.entries.Delete(key)
		return true
	})
}
