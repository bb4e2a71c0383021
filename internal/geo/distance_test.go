package geo

import (
	"math"
	"testing"
)

func TestDistanceMiles_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantMiles float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 40.7128, lng2: -74.0060,
			wantMiles: 0,
			tolerance: 0.001,
		},
		{
			name: "Empire State Building to Times Square (~0.7mi)",
			lat1: 40.7484, lng1: -73.9857,
			lat2: 40.7580, lng2: -73.9855,
			wantMiles: 0.66,
			tolerance: 0.1,
		},
		{
			name: "New York to Los Angeles (~2450mi)",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 34.0522, lng2: -118.2437,
			wantMiles: 2451,
			tolerance: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMiles(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantMiles) > tt.tolerance {
				t.Errorf("DistanceMiles() = %f, want %f (±%f)", got, tt.wantMiles, tt.tolerance)
			}
		})
	}
}

func TestDistanceMiles_Symmetry(t *testing.T) {
	d1 := DistanceMiles(40.0, -74.0, 41.0, -75.0)
	d2 := DistanceMiles(41.0, -75.0, 40.0, -74.0)
	if d1 != d2 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
}

func TestDistanceMiles_TwoDecimalRounding(t *testing.T) {
	d := DistanceMiles(40.7128, -74.0060, 40.7484, -73.9857)
	if math.Round(d*100)/100 != d {
		t.Errorf("distance %f is not rounded to 2 decimal places", d)
	}
}
