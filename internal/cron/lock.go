package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
)

const defaultLockTTL = 2 * time.Hour

// Lock coordinates exclusive cron runs.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type lockRecord struct {
	Owner     string    `json:"owner"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StoreLock implements Lock on top of the key-value store. Acquisition
// is read-then-write, not atomic; with a single API process per store
// that is enough, and a stale lock falls off after its TTL.
type StoreLock struct {
	store kv.Store
	key   string
	ttl   time.Duration
	owner string
	now   func() time.Time
}

// NewStoreLock constructs a store-backed lock.
func NewStoreLock(store kv.Store, key string, ttl time.Duration) (*StoreLock, error) {
	if store == nil {
		return nil, errors.New("store required for lock")
	}
	if key == "" {
		return nil, errors.New("lock key is required")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &StoreLock{store: store, key: key, ttl: ttl, now: time.Now}, nil
}

// Acquire tries to own the lock until its TTL elapses.
func (l *StoreLock) Acquire(ctx context.Context) (bool, error) {
	raw, err := l.store.Get(ctx, l.key)
	switch {
	case err == nil:
		var current lockRecord
		if jsonErr := json.Unmarshal(raw, &current); jsonErr == nil && l.now().Before(current.ExpiresAt) {
			return false, nil
		}
	case !pkgerrors.Is(err, kv.ErrNotFound):
		return false, fmt.Errorf("read lock: %w", err)
	}

	owner := uuid.NewString()
	record, err := json.Marshal(lockRecord{Owner: owner, ExpiresAt: l.now().Add(l.ttl)})
	if err != nil {
		return false, fmt.Errorf("encode lock: %w", err)
	}
	if err := l.store.Put(ctx, l.key, record); err != nil {
		return false, fmt.Errorf("write lock: %w", err)
	}
	l.owner = owner
	return true, nil
}

// Release frees the lock only if the owner value still matches.
func (l *StoreLock) Release(ctx context.Context) error {
	if l.owner == "" {
		return nil
	}
	raw, err := l.store.Get(ctx, l.key)
	if err != nil {
		if pkgerrors.Is(err, kv.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("read lock owner: %w", err)
	}
	var current lockRecord
	if err := json.Unmarshal(raw, &current); err != nil || current.Owner != l.owner {
		return nil
	}
	if err := l.store.Delete(ctx, l.key); err != nil && !pkgerrors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("delete lock: %w", err)
	}
	l.owner = ""
	return nil
}
