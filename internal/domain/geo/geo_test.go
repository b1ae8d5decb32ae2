package geo

import (
	"math"
	"testing"

	"limpflix/internal/domain/entities"
)

func f(v float64) *float64 { return &v }

func TestDistanceKm(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		points := [][2]float64{
			{0, 0},
			{-23.5505, -46.6333},
			{89.9, 179.9},
		}
		for _, p := range points {
			if d := DistanceKm(p[0], p[1], p[0], p[1]); d != 0 {
				t.Fatalf("expected 0 for identical point %v, got %f", p, d)
			}
		}
	})

	t.Run("sao paulo to rio", func(t *testing.T) {
		// Known reference distance, roughly 360 km.
		d := DistanceKm(-23.5505, -46.6333, -22.9068, -43.1729)
		if d < 350 || d > 370 {
			t.Fatalf("expected ~360km, got %f", d)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		a := DistanceKm(-23.5, -46.6, -22.9, -43.1)
		b := DistanceKm(-22.9, -43.1, -23.5, -46.6)
		if math.Abs(a-b) > 1e-9 {
			t.Fatalf("expected symmetric distance, got %f vs %f", a, b)
		}
	})
}

func TestSortByProximity(t *testing.T) {
	withCoords := func(id string, lat, lon float64) entities.Provider {
		return entities.Provider{ID: id, Latitude: f(lat), Longitude: f(lon)}
	}

	t.Run("orders by distance with coordless last", func(t *testing.T) {
		providers := []entities.Provider{
			{ID: "no-coords-1"},
			withCoords("far", -22.9068, -43.1729),
			{ID: "no-coords-2"},
			withCoords("near", -23.56, -46.64),
		}

		sorted := SortByProximity(providers, f(-23.5505), f(-46.6333))

		ids := make([]string, 0, len(sorted))
		for _, pd := range sorted {
			ids = append(ids, pd.Provider.ID)
		}
		want := []string{"near", "far", "no-coords-1", "no-coords-2"}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, ids)
			}
		}

		// Valid-coordinate prefix must be non-decreasing.
		for i := 1; i < len(sorted); i++ {
			a, b := sorted[i-1].DistanceKm, sorted[i].DistanceKm
			if a != nil && b != nil && *a > *b {
				t.Fatalf("distances not non-decreasing at %d: %f > %f", i, *a, *b)
			}
			if a == nil && b != nil {
				t.Fatalf("coordless provider sorted before one with coordinates at %d", i)
			}
		}
	})

	t.Run("no origin is a no-op", func(t *testing.T) {
		providers := []entities.Provider{
			withCoords("b", -22.9, -43.1),
			{ID: "a"},
			withCoords("c", -23.5, -46.6),
		}

		sorted := SortByProximity(providers, nil, nil)
		for i, pd := range sorted {
			if pd.Provider.ID != providers[i].ID {
				t.Fatalf("expected original order preserved, got %s at %d", pd.Provider.ID, i)
			}
			if pd.DistanceKm != nil {
				t.Fatalf("expected nil distance without origin")
			}
		}
	})

	t.Run("stable for coordless ties", func(t *testing.T) {
		providers := []entities.Provider{
			{ID: "x"},
			{ID: "y"},
			{ID: "z"},
		}
		sorted := SortByProximity(providers, f(0), f(0))
		for i, id := range []string{"x", "y", "z"} {
			if sorted[i].Provider.ID != id {
				t.Fatalf("expected stable order, got %s at %d", sorted[i].Provider.ID, i)
			}
		}
	})
}
