package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/everestcrafts/souvenirs-backend/pkg/config"
	redisclient "github.com/everestcrafts/souvenirs-backend/pkg/redis"
)

// ErrUnknownSession is returned when a key is well-formed but not tracked.
var ErrUnknownSession = errors.New("unknown session")

var keyPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

type sessionStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionKey string) string
}

// Manager mints opaque session keys and tracks their liveness in Redis with a
// sliding TTL. Keys identify an anonymous browsing session; they carry no
// identity and are never authenticated.
type Manager struct {
	store sessionStore
	ttl   time.Duration
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.TTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: client, ttl: ttl}, nil
}

// Mint creates a fresh session key and registers it.
func (m *Manager) Mint(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		key := uuid.NewString()
		ok, err := m.store.SetNX(ctx, m.store.SessionKey(key), time.Now().UTC().Format(time.RFC3339), m.ttl)
		if err != nil {
			return "", fmt.Errorf("register session: %w", err)
		}
		if ok {
			return key, nil
		}
	}
	return "", errors.New("could not mint a unique session key")
}

// Touch slides the TTL of a live session. ErrUnknownSession when the key has
// expired or was never minted.
func (m *Manager) Touch(ctx context.Context, key string) error {
	if !IsWellFormed(key) {
		return ErrUnknownSession
	}
	ok, err := m.store.Expire(ctx, m.store.SessionKey(key), m.ttl)
	if err != nil && !errors.Is(err, redislib.Nil) {
		return fmt.Errorf("touch session: %w", err)
	}
	if !ok {
		return ErrUnknownSession
	}
	return nil
}

// Ensure returns the provided key if it is still live, minting a replacement
// otherwise. The boolean reports whether a new key was minted.
func (m *Manager) Ensure(ctx context.Context, key string) (string, bool, error) {
	if key != "" {
		if err := m.Touch(ctx, key); err == nil {
			return key, false, nil
		} else if !errors.Is(err, ErrUnknownSession) {
			return "", false, err
		}
	}
	minted, err := m.Mint(ctx)
	if err != nil {
		return "", false, err
	}
	return minted, true, nil
}

// Revoke drops the session registration.
func (m *Manager) Revoke(ctx context.Context, key string) error {
	if !IsWellFormed(key) {
		return nil
	}
	return m.store.Del(ctx, m.store.SessionKey(key))
}

// IsWellFormed reports whether the key looks like a minted session key.
func IsWellFormed(key string) bool {
	return keyPattern.MatchString(key)
}
