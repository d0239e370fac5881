package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/afjrotc/logistics/internal/kv"
	"github.com/afjrotc/logistics/internal/model"
)

// AllowList is the set of emails permitted to log in. It is not safe for
// concurrent use.
type AllowList struct {
	kv      kv.Store
	entries []model.AllowedEmail
}

// NewAllowList returns an empty allow-list persisted to s.
func NewAllowList(s kv.Store) *AllowList {
	return &AllowList{kv: s}
}

// Load reads the persisted allow-list. When none exists yet, seed becomes the
// list and is written back. If the store can't be read, seed is used and the
// error returned.
func (a *AllowList) Load(ctx context.Context, seed []model.AllowedEmail) error {
	var entries []model.AllowedEmail
	found, err := kv.GetJSON(ctx, a.kv, kv.KeyAllowedEmails, &entries)
	if err != nil {
		a.entries = seed
		return fmt.Errorf("loading allow-list: %w", err)
	}
	if found {
		a.entries = entries
		return nil
	}

	a.entries = seed
	return a.save(ctx)
}

// Reset replaces the whole allow-list and persists it.
func (a *AllowList) Reset(ctx context.Context, entries []model.AllowedEmail) error {
	a.entries = entries
	return a.save(ctx)
}

// List returns a copy of the allow-list in insertion order.
func (a *AllowList) List() []model.AllowedEmail {
	out := make([]model.AllowedEmail, len(a.entries))
	copy(out, a.entries)
	return out
}

// Len returns the number of authorized emails.
func (a *AllowList) Len() int {
	return len(a.entries)
}

// Find looks email up case-insensitively.
func (a *AllowList) Find(email string) (model.AllowedEmail, bool) {
	i := a.index(email)
	if i < 0 {
		return model.AllowedEmail{}, false
	}
	return a.entries[i], true
}

func (a *AllowList) index(email string) int {
	for i, e := range a.entries {
		if equalFold(e.Email, email) {
			return i
		}
	}
	return -1
}

// Add authorizes email with the given name and role.
func (a *AllowList) Add(ctx context.Context, email, name, role string) (model.AllowedEmail, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	switch {
	case email == "":
		return model.AllowedEmail{}, fmt.Errorf("%w: email", ErrMissingField)
	case name == "":
		return model.AllowedEmail{}, fmt.Errorf("%w: name", ErrMissingField)
	case !model.ValidRole(role):
		return model.AllowedEmail{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	case a.index(email) >= 0:
		return model.AllowedEmail{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}

	entry := model.AllowedEmail{Email: email, Role: role, Name: name}
	a.entries = append(a.entries, entry)
	return entry, a.save(ctx)
}

// Remove revokes the authorization of email. It requires an explicit
// confirmation and leaves the list untouched when email is unknown.
func (a *AllowList) Remove(ctx context.Context, email string, confirm Confirmation) (model.AllowedEmail, error) {
	if !confirm {
		return model.AllowedEmail{}, ErrConfirmationRequired
	}
	i := a.index(strings.TrimSpace(email))
	if i < 0 {
		return model.AllowedEmail{}, fmt.Errorf("allowed email %s: %w", email, ErrNotFound)
	}

	removed := a.entries[i]
	a.entries = append(a.entries[:i:i], a.entries[i+1:]...)
	return removed, a.save(ctx)
}

func (a *AllowList) save(ctx context.Context) error {
	if err := kv.SetJSON(ctx, a.kv, kv.KeyAllowedEmails, a.entries); err != nil {
		return persistErr(err)
	}
	return nil
}
