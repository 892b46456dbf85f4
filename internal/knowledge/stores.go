package knowledge

import (
	"math"
	"sort"
	"strings"
	"time"
)

// StoreRepository is a read-only view over the store database.
type StoreRepository interface {
	// Hours returns the hours/contact record for a store.
	Hours(storeID string) (StoreHours, bool)

	// IsOpen checks whether a store is open at the given time.
	IsOpen(storeID string, now time.Time) OpenStatus

	// FindNearby returns stores within maxDistanceKM of the location,
	// sorted ascending by distance.
	FindNearby(loc Location, maxDistanceKM float64) []NearbyStore
}

// DefaultMaxDistanceKM is the standard search radius for nearby stores.
const DefaultMaxDistanceKM = 5.0

// kmPerDegree is the planar approximation used for distance: one degree of
// latitude or longitude is treated as 111 km.
const kmPerDegree = 111.0

type storeRepository struct {
	stores map[string]Store
}

// NewStoreRepository builds a repository over a fixed set of stores.
func NewStoreRepository(stores []Store) StoreRepository {
	byID := make(map[string]Store, len(stores))
	for _, s := range stores {
		byID[s.ID] = s
	}
	return &storeRepository{stores: byID}
}

func (r *storeRepository) Hours(storeID string) (StoreHours, bool) {
	store, ok := r.stores[storeID]
	if !ok {
		return StoreHours{}, false
	}
	return StoreHours{
		StoreName: store.Name,
		Hours:     store.Hours,
		Phone:     store.Phone,
		Address:   store.Address,
	}, true
}

func (r *storeRepository) IsOpen(storeID string, now time.Time) OpenStatus {
	store, ok := r.stores[storeID]
	if !ok {
		return OpenStatus{IsOpen: false, Error: "store not found"}
	}

	day := strings.ToLower(now.Weekday().String())
	hours, ok := store.Hours[day]
	if !ok {
		hours = "Closed"
	}

	return OpenStatus{
		StoreName: store.Name,
		IsOpen:    hours != "Closed",
		Hours:     hours,
		Phone:     store.Phone,
		Address:   store.Address,
	}
}

func (r *storeRepository) FindNearby(loc Location, maxDistanceKM float64) []NearbyStore {
	if maxDistanceKM <= 0 {
		maxDistanceKM = DefaultMaxDistanceKM
	}

	var nearby []NearbyStore
	for id, store := range r.stores {
		distance := planarDistanceKM(loc, store.Latitude, store.Longitude)
		if distance <= maxDistanceKM {
			nearby = append(nearby, NearbyStore{
				StoreID:    id,
				Name:       store.Name,
				DistanceKM: distance,
				Address:    store.Address,
				Phone:      store.Phone,
			})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKM < nearby[j].DistanceKM
	})
	return nearby
}

// planarDistanceKM approximates great-circle distance with a flat projection
// scaled by 111 km per degree, rounded to two decimals.
func planarDistanceKM(loc Location, lat, lon float64) float64 {
	latDiff := math.Abs(lat - loc.Latitude)
	lonDiff := math.Abs(lon - loc.Longitude)
	distance := math.Sqrt(latDiff*latDiff+lonDiff*lonDiff) * kmPerDegree
	return math.Round(distance*100) / 100
}
