package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/cache"
)

func TestTTLCache_GetSet_RoundTrips(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Unix(0, 0))
	c, err := cache.New(10, clock)
	require.NoError(t, err)
	key := cache.Key("123 Main St, Tulsa, OK")

	// Act
	c.Set(key, "cached-value", time.Minute)
	value, ok := c.Get(key)

	// Assert
	assert.True(t, ok)
	assert.Equal(t, "cached-value", value)
}

func TestTTLCache_ExpiresAfterTTL(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Unix(0, 0))
	c, err := cache.New(10, clock)
	require.NoError(t, err)
	key := cache.Key("some-input")
	c.Set(key, "value", time.Minute)

	// Act
	clock.Advance(2 * time.Minute)
	_, ok := c.Get(key)

	// Assert
	assert.False(t, ok)
}

func TestTTLCache_DoesNotCacheFailures(t *testing.T) {
	// Arrange: a TTL of zero represents "the call failed, don't cache it".
	clock := shared.NewMockClock(time.Unix(0, 0))
	c, err := cache.New(10, clock)
	require.NoError(t, err)
	key := cache.Key("failing-input")

	// Act
	c.Set(key, "should-not-persist", 0)
	_, ok := c.Get(key)

	// Assert
	assert.False(t, ok)
}

func TestKey_IsDeterministic(t *testing.T) {
	assert.Equal(t, cache.Key("same input"), cache.Key("same input"))
	assert.NotEqual(t, cache.Key("input a"), cache.Key("input b"))
}
