package knowledge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindNearbySortedAscending(t *testing.T) {
	repo := NewStoreRepository(FixtureStores())

	// Between Phoenix and LA, far from both but within a huge radius.
	nearby := repo.FindNearby(Location{Latitude: 33.7, Longitude: -115.0}, 100000)
	require.Len(t, nearby, 3)
	for i := 1; i < len(nearby); i++ {
		assert.LessOrEqual(t, nearby[i-1].DistanceKM, nearby[i].DistanceKM)
	}
}

func TestFindNearbyIsIdempotent(t *testing.T) {
	repo := NewStoreRepository(FixtureStores())
	loc := Location{Latitude: 40.7128, Longitude: -74.0060}

	first := repo.FindNearby(loc, DefaultMaxDistanceKM)
	second := repo.FindNearby(loc, DefaultMaxDistanceKM)
	assert.Equal(t, first, second)
}

func TestFindNearbyIncludesZeroDistance(t *testing.T) {
	repo := NewStoreRepository(FixtureStores())

	// Exactly at the downtown store: included even with a zero radius
	// request (which falls back to the default radius).
	nearby := repo.FindNearby(Location{Latitude: 40.7128, Longitude: -74.0060}, 0)
	require.NotEmpty(t, nearby)
	assert.Equal(t, "starbucks_downtown", nearby[0].StoreID)
	assert.Equal(t, 0.0, nearby[0].DistanceKM)

	// And with an explicit tiny radius.
	nearby = repo.FindNearby(Location{Latitude: 40.7128, Longitude: -74.0060}, 0.001)
	require.NotEmpty(t, nearby)
	assert.Equal(t, "starbucks_downtown", nearby[0].StoreID)
}

func TestFindNearbyRespectsRadius(t *testing.T) {
	repo := NewStoreRepository(FixtureStores())

	// From NYC with the default 5 km radius only the downtown store matches.
	nearby := repo.FindNearby(Location{Latitude: 40.7128, Longitude: -74.0060}, DefaultMaxDistanceKM)
	require.Len(t, nearby, 1)
	assert.Equal(t, "starbucks_downtown", nearby[0].StoreID)
}

func TestHours(t *testing.T) {
	repo := NewStoreRepository(FixtureStores())

	hours, ok := repo.Hours("starbucks_downtown")
	require.True(t, ok)
	assert.Equal(t, "Starbucks Downtown", hours.StoreName)
	assert.Equal(t, "6:00 AM - 9:00 PM", hours.Hours["monday"])
	assert.Equal(t, "+1-555-0101", hours.Phone)

	_, ok = repo.Hours("nonexistent")
	assert.False(t, ok)
}

func TestIsOpen(t *testing.T) {
	repo := NewStoreRepository(FixtureStores())

	// A Monday.
	monday := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	status := repo.IsOpen("starbucks_downtown", monday)
	assert.True(t, status.IsOpen)
	assert.Equal(t, "6:00 AM - 9:00 PM", status.Hours)

	status = repo.IsOpen("nonexistent", monday)
	assert.False(t, status.IsOpen)
	assert.NotEmpty(t, status.Error)
}
