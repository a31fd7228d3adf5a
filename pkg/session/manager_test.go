package session

import (
	"context"
	"testing"
	"time"

	"github.com/everestcrafts/souvenirs-backend/pkg/config"
)

type fakeStore struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = "1"
	f.ttls[key] = ttl
	return true, nil
}

func (f *fakeStore) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if _, ok := f.data[key]; !ok {
		return false, nil
	}
	f.ttls[key] = ttl
	return true, nil
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeStore) SessionKey(sessionKey string) string {
	return "souvenirs:session:" + sessionKey
}

func newManager(store *fakeStore) *Manager {
	return &Manager{store: store, ttl: time.Hour}
}

func TestMintAndTouch(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	mgr := newManager(store)

	key, err := mgr.Mint(ctx)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if !IsWellFormed(key) {
		t.Fatalf("minted key is not well formed: %q", key)
	}
	if err := mgr.Touch(ctx, key); err != nil {
		t.Fatalf("touch live session: %v", err)
	}
}

func TestTouchUnknownSession(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(newFakeStore())

	if err := mgr.Touch(ctx, "0b9c82f4-0000-4000-8000-000000000000"); err != ErrUnknownSession {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
	if err := mgr.Touch(ctx, "not-a-session-key"); err != ErrUnknownSession {
		t.Fatalf("malformed key must read unknown, got %v", err)
	}
}

func TestEnsureKeepsLiveKey(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(newFakeStore())

	key, err := mgr.Mint(ctx)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	got, minted, err := mgr.Ensure(ctx, key)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if minted || got != key {
		t.Fatalf("expected existing key kept, minted=%v got=%q", minted, got)
	}
}

func TestEnsureReplacesDeadKey(t *testing.T) {
	ctx := context.Background()
	mgr := newManager(newFakeStore())

	got, minted, err := mgr.Ensure(ctx, "0b9c82f4-0000-4000-8000-000000000000")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !minted || got == "0b9c82f4-0000-4000-8000-000000000000" {
		t.Fatalf("expected a fresh key, minted=%v got=%q", minted, got)
	}

	got2, minted2, err := mgr.Ensure(ctx, "")
	if err != nil {
		t.Fatalf("ensure empty: %v", err)
	}
	if !minted2 || got2 == "" {
		t.Fatalf("expected mint for empty key, minted=%v", minted2)
	}
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	mgr := newManager(store)

	key, err := mgr.Mint(ctx)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := mgr.Revoke(ctx, key); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := mgr.Touch(ctx, key); err != ErrUnknownSession {
		t.Fatalf("expected revoked session unknown, got %v", err)
	}
}

func TestNewManagerValidation(t *testing.T) {
	if _, err := NewManager(nil, config.SessionConfig{TTLHours: 1}); err == nil {
		t.Fatal("expected error for nil client")
	}
}
