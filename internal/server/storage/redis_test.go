package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStorage_SetGet(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := OpenRedis(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "dnt0042", `[{"id":"A"}]`))

	v, ok, err := s.Get(ctx, "dnt0042")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"A"}]`, v)

	raw, err := mr.Get("kv:dnt0042")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"A"}]`, raw)
}

func TestRedisStorage_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := OpenRedis(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	mr.Close()

	_, _, err = s.Get(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis error")

	err = s.Set(ctx, "k", "v")
	require.Error(t, err)
}

func TestOpenRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), addr, "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping error")
}
