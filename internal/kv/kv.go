// Package kv is the key-value persistence layer. Every collection the
// application keeps is stored as one JSON document under a fixed key.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// Keys used by the application.
const (
	KeyItems         = "afjrotc-items"
	KeyActivity      = "afjrotc-activity"
	KeyAllowedEmails = "afjrotc-allowed-emails"
	KeySessionSecret = "afjrotc-session-secret"

	keySessionPrefix = "afjrotc-current-user:"
)

// SessionKey returns the key holding the signed-in user of a session.
func SessionKey(sessionID string) string {
	return keySessionPrefix + sessionID
}

// Store is a string key-value store. A missing key is reported through ok,
// never as an error, and deleting a missing key succeeds.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// GetJSON reads key and decodes it into target. It returns false when the key
// does not exist, leaving target untouched.
func GetJSON(ctx context.Context, s Store, key string, target any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes value and writes it under key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
