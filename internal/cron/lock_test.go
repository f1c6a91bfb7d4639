package cron

import (
	"context"
	"testing"
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/kv"
)

func TestStoreLockAcquireReleaseCycle(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	lock, err := NewStoreLock(store, "fazenda_cron_lock", time.Minute)
	if err != nil {
		t.Fatalf("NewStoreLock() error = %v", err)
	}

	ok, err := lock.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("first Acquire() = %v, %v, want true, nil", ok, err)
	}

	other, err := NewStoreLock(store, "fazenda_cron_lock", time.Minute)
	if err != nil {
		t.Fatalf("NewStoreLock() error = %v", err)
	}
	ok, err = other.Acquire(ctx)
	if err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	if ok {
		t.Fatal("second Acquire() succeeded while lock held")
	}

	if err := lock.Release(ctx); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	ok, err = other.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("Acquire() after release = %v, %v, want true, nil", ok, err)
	}
}

func TestStoreLockExpiredLockIsReclaimed(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	held, err := NewStoreLock(store, "fazenda_cron_lock", time.Minute)
	if err != nil {
		t.Fatalf("NewStoreLock() error = %v", err)
	}
	held.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	if ok, err := held.Acquire(ctx); err != nil || !ok {
		t.Fatalf("stale Acquire() = %v, %v, want true, nil", ok, err)
	}

	fresh, err := NewStoreLock(store, "fazenda_cron_lock", time.Minute)
	if err != nil {
		t.Fatalf("NewStoreLock() error = %v", err)
	}
	if ok, err := fresh.Acquire(ctx); err != nil || !ok {
		t.Fatalf("Acquire() over stale lock = %v, %v, want true, nil", ok, err)
	}
}

func TestStoreLockReleaseWithoutAcquireIsNoop(t *testing.T) {
	lock, err := NewStoreLock(kv.NewMemory(), "fazenda_cron_lock", time.Minute)
	if err != nil {
		t.Fatalf("NewStoreLock() error = %v", err)
	}
	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
}
