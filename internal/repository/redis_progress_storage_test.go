package repository

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStorage(t *testing.T) (*RedisProgressStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisProgressStorage(rdb, "triz-progress"), mr
}

func TestRedisProgressStorage_RoundTrip(t *testing.T) {
	s, mr := newTestRedisStorage(t)

	require.NoError(t, s.Save(sampleProgress()))
	assert.True(t, mr.Exists("triz-progress"))
	assert.Equal(t, sampleProgress(), s.Load())
}

func TestRedisProgressStorage_MissingKeyIsEmpty(t *testing.T) {
	s, _ := newTestRedisStorage(t)

	got := s.Load()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRedisProgressStorage_CorruptValueIsEmpty(t *testing.T) {
	s, mr := newTestRedisStorage(t)
	require.NoError(t, mr.Set("triz-progress", "{not json"))

	assert.Empty(t, s.Load())
}

func TestRedisProgressStorage_Clear(t *testing.T) {
	s, mr := newTestRedisStorage(t)
	require.NoError(t, s.Save(sampleProgress()))

	require.NoError(t, s.Clear())
	assert.False(t, mr.Exists("triz-progress"))
	assert.Empty(t, s.Load())
}
