package utils

import (
	"math"

	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/mmcloughlin/geohash"
)

// EncodeLocation converts a location to a geohash string, used for coarse
// service-area bucketing in logs and candidate diagnostics
func EncodeLocation(location models.Location, precision uint) string {
	return geohash.EncodeWithPrecision(location.Latitude, location.Longitude, precision)
}

// GeohashNeighbors returns the neighboring geohashes of a given geohash
func GeohashNeighbors(hash string) []string {
	return geohash.Neighbors(hash)
}

// CalculateDistanceKm calculates the distance between two points in kilometers
// using the Haversine formula
func CalculateDistanceKm(from, to models.Location) float64 {
	// Earth's radius in kilometers
	const earthRadius = 6371.0

	lat1 := from.Latitude * math.Pi / 180.0
	lon1 := from.Longitude * math.Pi / 180.0
	lat2 := to.Latitude * math.Pi / 180.0
	lon2 := to.Longitude * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
