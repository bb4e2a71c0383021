// Package geo contains pure geographic computation helpers.
package geo

import "math"

const earthRadiusMiles = 3959.0

// DistanceMiles returns the great-circle distance in miles between two points
// specified in decimal degrees, rounded to 2 decimal places.
func DistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return math.Round(earthRadiusMiles*c*100) / 100
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
