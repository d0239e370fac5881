package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/afjrotc/logistics/internal/kv"
)

// SessionSecret returns the token signing secret, generating and storing one
// on first use.
func SessionSecret(ctx context.Context, s kv.Store) (string, error) {
	secret, ok, err := s.Get(ctx, kv.KeySessionSecret)
	if err != nil {
		return "", fmt.Errorf("querying session secret: %w", err)
	}
	if ok && secret != "" {
		return secret, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	secret = hex.EncodeToString(buf)

	if err := s.Set(ctx, kv.KeySessionSecret, secret); err != nil {
		return "", fmt.Errorf("storing session secret: %w", err)
	}
	return secret, nil
}
