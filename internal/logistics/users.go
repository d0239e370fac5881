package logistics

import (
	"context"
	"errors"

	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/store"
)

// AllowedUsers lists the allow-list.
func (s *Service) AllowedUsers(ws *Workspace) ([]model.AllowedEmail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authorize(ws, model.CapManageUsers); err != nil {
		return nil, err
	}
	return s.allow.List(), nil
}

// AddAllowedUser authorizes a new email.
func (s *Service) AddAllowedUser(ctx context.Context, ws *Workspace, email, name, role string) (model.AllowedEmail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.authorize(ws, model.CapManageUsers)
	if err != nil {
		return model.AllowedEmail{}, err
	}

	entry, err := s.allow.Add(ctx, email, name, role)
	if !applied(err) {
		s.fail(ws, "Error adding user", err)
		return model.AllowedEmail{}, err
	}

	err = errors.Join(err, s.record(ctx, u, "Authorized user", entry.Email))
	s.done(ws, "User added successfully!", entry.Name+" can now log in", err)
	return entry, err
}

// RemoveAllowedUser revokes an email. It requires confirmation. Sessions
// already signed in with that email stay signed in until they log out.
func (s *Service) RemoveAllowedUser(ctx context.Context, ws *Workspace, email string, confirm store.Confirmation) (model.AllowedEmail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.authorize(ws, model.CapManageUsers)
	if err != nil {
		return model.AllowedEmail{}, err
	}

	removed, err := s.allow.Remove(ctx, email, confirm)
	if !applied(err) {
		s.fail(ws, "Error removing user", err)
		return model.AllowedEmail{}, err
	}

	err = errors.Join(err, s.record(ctx, u, "Removed user", removed.Email))
	s.done(ws, "User removed successfully!", removed.Email+" can no longer log in", err)
	return removed, err
}
