package logistics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/afjrotc/logistics/internal/navigation"
	"github.com/afjrotc/logistics/internal/notify"
	"github.com/afjrotc/logistics/internal/store"
)

// Workspace is the per-client state: who is signed in, where they are and
// what they have yet to be told. Its fields are guarded by the Service lock;
// use the Service methods rather than touching them directly.
type Workspace struct {
	ID      string
	Session *store.Session
	Nav     *navigation.Controller
	Notices *notify.Queue

	notifier notify.Notifier
}

func (s *Service) newWorkspace(id string) *Workspace {
	ws := &Workspace{
		ID:      id,
		Session: store.NewSession(id, s.kv, s.allow),
		Nav:     navigation.New(),
		Notices: &notify.Queue{},
	}
	ws.notifier = notify.Multi{ws.Notices, s.sink}
	return ws
}

// NewWorkspace registers a fresh, unauthenticated workspace.
func (s *Service) NewWorkspace() *Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.newWorkspace(uuid.NewString())
	s.workspaces[ws.ID] = ws
	return ws
}

// Workspace returns the workspace with the given id. A workspace not held in
// memory is rebuilt from its persisted session; ErrUnauthenticated is
// returned when there is none.
func (s *Service) Workspace(ctx context.Context, id string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ws, ok := s.workspaces[id]; ok {
		return ws, nil
	}
	if _, ok := s.signedOut[id]; ok {
		return nil, ErrUnauthenticated
	}

	ws := s.newWorkspace(id)
	found, err := ws.Session.Restore(ctx)
	if err != nil {
		return nil, fmt.Errorf("restoring workspace %s: %w", id, err)
	}
	if !found {
		return nil, ErrUnauthenticated
	}
	s.workspaces[id] = ws
	return ws, nil
}

// Forget drops the in-memory workspace. A persisted session survives and is
// restored by the next Workspace call, unless its logout failed to delete it.
func (s *Service) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workspaces, id)
}

// Notices drains the pending notifications of ws.
func (s *Service) Notices(ws *Workspace) []notify.Notification {
	return ws.Notices.Drain()
}
