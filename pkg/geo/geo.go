package geo

import "math"

// EarthRadiusKm matches the sphere radius used for radius-to-radians
// conversion on the search endpoints.
const EarthRadiusKm = 6378.1

// KmToRadians converts a surface distance into an angular radius.
func KmToRadians(km float64) float64 {
	return km / EarthRadiusKm
}

// KmToMeters converts kilometres into the meters ST_DWithin expects on
// geography columns.
func KmToMeters(km float64) float64 {
	return km * 1000
}

// DistanceKm computes the great-circle distance between two points using the
// haversine formula.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	const deg2rad = math.Pi / 180

	dLat := (lat2 - lat1) * deg2rad
	dLng := (lng2 - lng1) * deg2rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*deg2rad)*math.Cos(lat2*deg2rad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

// WithinRadius reports whether the candidate point lies inside the radius
// around the center. The boundary itself is inclusive.
func WithinRadius(centerLat, centerLng, lat, lng, radiusKm float64) bool {
	if radiusKm < 0 {
		return false
	}
	return DistanceKm(centerLat, centerLng, lat, lng) <= radiusKm
}
