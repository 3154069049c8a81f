package pipeline

import (
	"sync"

	"github.com/google/uuid"

	"github.com/veristream/veristream/internal/model"
)

// Coordinator owns every in-flight AnalysisSession, keyed by request
// identity. Sessions are registered when a request starts and evicted when
// its channel closes; nothing about a request lives in package globals.
type Coordinator struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*model.AnalysisSession
}

// NewCoordinator creates an empty session registry.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		sessions: make(map[uuid.UUID]*model.AnalysisSession),
	}
}

// Begin creates and registers a session for one request.
func (c *Coordinator) Begin(articleURL string) *model.AnalysisSession {
	session := model.NewAnalysisSession(articleURL)

	c.mu.Lock()
	c.sessions[session.ID] = session
	c.mu.Unlock()

	return session
}

// End evicts a session once its request has completed or errored.
func (c *Coordinator) End(id uuid.UUID) {
	c.mu.Lock()
	delete(c.sessions, id)
	c.mu.Unlock()
}

// Get returns a registered session.
func (c *Coordinator) Get(id uuid.UUID) (*model.AnalysisSession, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	session, ok := c.sessions[id]
	return session, ok
}

// Active reports the number of in-flight sessions.
func (c *Coordinator) Active() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}
