package utils

import "math"

const earthRadiusKm = 6371

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers, rounded to two decimals (matches what gets billed per km).
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*100) / 100
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}
