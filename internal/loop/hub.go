package loop

import (
	"context"
	"sync"
	"time"
)

// Session is one registered player connection. Its context is cancelled when
// the hub shuts down.
type Session struct {
	ID       int
	Username string
	Started  time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// Context returns the session context to pass to Run.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Hub tracks the sessions of a multi-user server so they can be stopped
// together. Every session runs its own independent game loop.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int]*Session
	nextID   int
	closed   bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[int]*Session),
		nextID:   1,
	}
}

// Register adds a session derived from parent. After Shutdown, the returned
// session is already cancelled.
func (h *Hub) Register(parent context.Context, username string) *Session {
	ctx, cancel := context.WithCancel(parent)

	h.mu.Lock()
	defer h.mu.Unlock()
	s := &Session{
		ID:       h.nextID,
		Username: username,
		Started:  time.Now(),
		ctx:      ctx,
		cancel:   cancel,
	}
	h.nextID++
	if h.closed {
		cancel()
		return s
	}
	h.sessions[s.ID] = s
	return s
}

// Unregister removes a session and releases its context.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if ok {
		s.cancel()
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Shutdown cancels every session and waits until all of them unregister or
// timeout elapses. It reports whether all sessions ended in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.mu.Lock()
	h.closed = true
	for _, s := range h.sessions {
		s.cancel()
	}
	h.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}
