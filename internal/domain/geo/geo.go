package geo

import (
	"math"
	"sort"

	"limpflix/internal/domain/entities"
)

const earthRadiusKm = 6371

// DistanceKm returns the haversine great-circle distance between two
// coordinates, in kilometers.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// ProviderDistance pairs a provider with its distance from the search origin.
// DistanceKm is nil when the provider has no registered coordinates.
type ProviderDistance struct {
	Provider   entities.Provider
	DistanceKm *float64
}

// SortByProximity orders providers by distance from (originLat, originLon),
// nearest first. Providers without coordinates always sort last, keeping
// their original relative order. A nil origin is a no-op, not an error: the
// list comes back unranked in its original order.
func SortByProximity(providers []entities.Provider, originLat, originLon *float64) []ProviderDistance {
	out := make([]ProviderDistance, 0, len(providers))
	for _, p := range providers {
		pd := ProviderDistance{Provider: p}
		if originLat != nil && originLon != nil && p.HasCoordinates() {
			d := DistanceKm(*originLat, *originLon, *p.Latitude, *p.Longitude)
			pd.DistanceKm = &d
		}
		out = append(out, pd)
	}
	if originLat == nil || originLon == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DistanceKm, out[j].DistanceKm
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out
}
