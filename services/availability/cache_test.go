package availability

import (
	"context"
	"strings"
	"testing"
	"time"

	"visionhealth/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, time.Minute), mr
}

var eyeExam = []models.AppointmentService{{ServiceTitle: "Eye Exam", Slots: []string{"9am", "11am"}}}

func TestRedisCache_GetSet(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	v, err := c.Version(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "0.0", v)

	_, err = c.Get(ctx, day, v)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, day, v, eyeExam))
	got, err := c.Get(ctx, day, v)
	require.NoError(t, err)
	assert.Equal(t, eyeExam, got)

	assert.Equal(t, time.Minute, mr.TTL(dataKey(day, v)))
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	c, mr := newRedisCache(t)
	require.NoError(t, mr.Set(dataKey(day, "0.0"), "{not json"))

	_, err := c.Get(context.Background(), day, "0.0")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_InvalidateMovesVersion(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	before, err := c.Version(ctx, day)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, day))

	after, err := c.Version(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "0.1", after)
	assert.Equal(t, time.Hour, mr.TTL(verKey(day)))

	// A fill computed under the old version lands where nobody reads.
	require.NoError(t, c.Set(ctx, day, before, eyeExam))
	_, err = c.Get(ctx, day, after)
	assert.ErrorIs(t, err, ErrCacheMiss)

	other, err := c.Version(ctx, "Jan 2, 2024")
	require.NoError(t, err)
	assert.Equal(t, "0.0", other, "other dates keep their version")
}

func TestRedisCache_InvalidateAll(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, day, "0.0", eyeExam))
	require.NoError(t, c.Set(ctx, "Jan 2, 2024", "0.0", eyeExam))
	require.NoError(t, c.InvalidateAll(ctx))

	for _, k := range mr.Keys() {
		assert.False(t, strings.HasPrefix(k, dataPrefix), "data key %q survived", k)
	}
	v, err := c.Version(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "1.0", v)

	// Nothing to delete is fine.
	require.NoError(t, c.InvalidateAll(ctx))
}

func TestRedisCache_Unavailable(t *testing.T) {
	c, mr := newRedisCache(t)
	mr.Close()
	ctx := context.Background()

	_, err := c.Version(ctx, day)
	assert.Error(t, err)
	_, err = c.Get(ctx, day, "0.0")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestForDate_RedisFillRacingInvalidationIsNotServed(t *testing.T) {
	c, _ := newRedisCache(t)
	s, _, bookings := newService(c)
	ctx := context.Background()
	bookDuringSnapshot(t, s, bookings)

	_, err := s.ForDate(ctx, day)
	require.NoError(t, err)

	fresh, err := s.ForDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []string{"11am"}, fresh[0].Slots)
}

func TestForDate_RedisUnavailableFallsBackToStore(t *testing.T) {
	c, mr := newRedisCache(t)
	mr.Close()
	s, catalog, _ := newService(c)
	s.Logger = zap.NewNop()

	got, err := s.ForDate(context.Background(), day)

	require.NoError(t, err)
	assert.Equal(t, []string{"9am", "11am"}, got[0].Slots)
	assert.Equal(t, 1, catalog.Calls)
}
