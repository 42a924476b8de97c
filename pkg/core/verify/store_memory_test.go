package verify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPendingStore_PutGet(t *testing.T) {
	store := NewMemoryPendingStore()
	ctx := context.Background()

	reg := PendingRegistration{Code: "123456", Email: "a@b.c", Name: "abc", Password: "pw"}
	require.NoError(t, store.Put(ctx, "h1", reg, time.Minute))

	got, err := store.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, reg, got)
}

func TestMemoryPendingStore_OverwriteSameHandle(t *testing.T) {
	store := NewMemoryPendingStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "h1", PendingRegistration{Code: "111111"}, time.Minute))
	require.NoError(t, store.Put(ctx, "h1", PendingRegistration{Code: "222222"}, time.Minute))

	got, err := store.Get(ctx, "h1")
	require.NoError(t, err)
	// 后写覆盖
	assert.Equal(t, "222222", got.Code)
}

func TestMemoryPendingStore_TTLExpiry(t *testing.T) {
	store := NewMemoryPendingStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "h1", PendingRegistration{Code: "123456"}, -time.Second))

	_, err := store.Get(ctx, "h1")
	assert.ErrorIs(t, err, ErrPendingNotFound)
}

func TestMemoryPendingStore_Delete(t *testing.T) {
	store := NewMemoryPendingStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "h1", PendingRegistration{Code: "123456"}, time.Minute))
	require.NoError(t, store.Delete(ctx, "h1"))

	_, err := store.Get(ctx, "h1")
	assert.ErrorIs(t, err, ErrPendingNotFound)

	// 删除不存在的句柄不报错
	assert.NoError(t, store.Delete(ctx, "missing"))
}
