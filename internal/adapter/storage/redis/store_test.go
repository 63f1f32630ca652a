package redis

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return NewStore(client)
}

func TestStore_GetPutDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	v, err := store.Get(ctx, "wallet_missing")
	require.NoError(t, err)
	assert.Nil(t, v, "absent key should return nil without error")

	require.NoError(t, store.Put(ctx, "wallet_1", []byte(`{"id":"1","balance":0}`)))

	v, err = store.Get(ctx, "wallet_1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","balance":0}`, string(v))

	require.NoError(t, store.Delete(ctx, "wallet_1"))

	v, err = store.Get(ctx, "wallet_1")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStore_Delete_AbsentKey(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Delete(context.Background(), "wallet_never_existed"))
}

func TestStore_Scan_PrefixFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "transaction_w1_a", []byte("1")))
	require.NoError(t, store.Put(ctx, "transaction_w1_b", []byte("2")))
	require.NoError(t, store.Put(ctx, "transaction_w2_c", []byte("3")))
	require.NoError(t, store.Put(ctx, "user_u1", []byte("4")))

	var keys []string
	cursor := ""
	for {
		page, err := store.Scan(ctx, "transaction_w1_", cursor, 10)
		require.NoError(t, err)
		keys = append(keys, page.Keys...)
		if page.Complete {
			break
		}
		cursor = page.Cursor
	}

	assert.ElementsMatch(t, []string{"transaction_w1_a", "transaction_w1_b"}, keys)
}

func TestStore_Scan_CursorWalksWholeKeyspace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := make(map[string]bool)
	for i := 0; i < 25; i++ {
		key := fmt.Sprintf("transaction_w9_%02d", i)
		want[key] = true
		require.NoError(t, store.Put(ctx, key, []byte("v")))
	}

	seen := make(map[string]bool)
	cursor := ""
	for {
		page, err := store.Scan(ctx, "transaction_w9_", cursor, 5)
		require.NoError(t, err)
		for _, k := range page.Keys {
			seen[k] = true
		}
		if page.Complete {
			break
		}
		cursor = page.Cursor
	}

	assert.Equal(t, want, seen, "cursor pagination must eventually visit every key")
}

func TestStore_Scan_InvalidCursor(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Scan(context.Background(), "wallet_", "not-a-cursor", 5)
	assert.Error(t, err)
}

func TestStore_Scan_NoMatches(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user_u1", []byte("v")))

	var keys []string
	cursor := ""
	for {
		page, err := store.Scan(ctx, "wallet_", cursor, 10)
		require.NoError(t, err)
		keys = append(keys, page.Keys...)
		if page.Complete {
			break
		}
		cursor = page.Cursor
	}
	assert.Empty(t, keys)
}

func TestHealthCheck_Ping(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})

	hc := NewHealthCheck(client)
	assert.Equal(t, "redis", hc.Name())
	assert.NoError(t, hc.Ping(context.Background()))

	s.Close()
	assert.Error(t, hc.Ping(context.Background()))
}
