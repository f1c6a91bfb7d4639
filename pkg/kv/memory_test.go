package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, "fazenda_users")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "fazenda_users", []byte(`[]`)))

	value, err := store.Get(ctx, "fazenda_users")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), value)

	require.NoError(t, store.Delete(ctx, "fazenda_users"))
	_, err = store.Get(ctx, "fazenda_users")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	original := []byte(`[{"id":"V001"}]`)
	require.NoError(t, store.Put(ctx, "fazenda_animais", original))
	original[2] = 'x'

	value, err := store.Get(ctx, "fazenda_animais")
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":"V001"}]`), value)
}

func TestKeyNamespacing(t *testing.T) {
	if got := Key("fazenda", "users"); got != "fazenda_users" {
		t.Fatalf("Key = %s, want fazenda_users", got)
	}
	if got := Key("", "users"); got != "users" {
		t.Fatalf("Key without namespace = %s, want users", got)
	}
	if !errors.Is(ErrNotFound, ErrNotFound) {
		t.Fatal("sentinel identity broken")
	}
}
