package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/afjrotc/logistics/internal/kv"
	"github.com/afjrotc/logistics/internal/model"
)

// Session holds the signed-in user of one client. It is Unauthenticated until
// Login or Restore succeeds and again after Logout.
type Session struct {
	id    string
	kv    kv.Store
	allow *AllowList
	user  *model.User
}

// NewSession returns an unauthenticated session that authorizes against allow.
func NewSession(id string, s kv.Store, allow *AllowList) *Session {
	return &Session{id: id, kv: s, allow: allow}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Current returns the signed-in user.
func (s *Session) Current() (model.User, bool) {
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s.user != nil
}

// Restore loads a previously persisted user. The user is not re-checked
// against the allow-list: someone removed while signed in stays signed in
// until they log out.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	var u model.User
	found, err := kv.GetJSON(ctx, s.kv, kv.SessionKey(s.id), &u)
	if err != nil {
		return false, fmt.Errorf("restoring session: %w", err)
	}
	if !found {
		return false, nil
	}
	s.user = &u
	return true, nil
}

// Login signs in the allow-list record matching email case-insensitively.
// On failure the session is left as it was.
func (s *Session) Login(ctx context.Context, email string) (model.User, error) {
	rec, ok := s.allow.Find(strings.TrimSpace(email))
	if !ok {
		return model.User{}, ErrNotAuthorized
	}

	u := rec.User()
	s.user = &u
	if err := kv.SetJSON(ctx, s.kv, kv.SessionKey(s.id), u); err != nil {
		return u, persistErr(err)
	}
	return u, nil
}

// Logout signs the user out. The session is unauthenticated afterwards even
// when removing the persisted record fails.
func (s *Session) Logout(ctx context.Context) error {
	s.user = nil
	if err := s.kv.Delete(ctx, kv.SessionKey(s.id)); err != nil {
		return persistErr(err)
	}
	return nil
}
