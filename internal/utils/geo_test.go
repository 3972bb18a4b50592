package utils

import (
	"testing"

	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

var (
	connaughtPlace = models.Location{Latitude: 28.6315, Longitude: 77.2167}
	hauzKhas       = models.Location{Latitude: 28.5494, Longitude: 77.2001}
	mumbai         = models.Location{Latitude: 19.0760, Longitude: 72.8777}
)

func TestCalculateDistanceKm(t *testing.T) {
	// Connaught Place to Hauz Khas is roughly 9.3 km as the crow flies
	distance := CalculateDistanceKm(connaughtPlace, hauzKhas)
	assert.InDelta(t, 9.3, distance, 0.5)
}

func TestCalculateDistanceKm_ZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, CalculateDistanceKm(connaughtPlace, connaughtPlace))
}

func TestCalculateDistanceKm_Symmetric(t *testing.T) {
	forward := CalculateDistanceKm(connaughtPlace, mumbai)
	backward := CalculateDistanceKm(mumbai, connaughtPlace)
	assert.InDelta(t, forward, backward, 0.0001)
}

func TestEncodeLocation(t *testing.T) {
	hash := EncodeLocation(connaughtPlace, 7)
	assert.Len(t, hash, 7)

	// Nearby points share a geohash prefix
	neighbor := EncodeLocation(models.Location{Latitude: 28.6316, Longitude: 77.2168}, 7)
	assert.Equal(t, hash[:5], neighbor[:5])
}

func TestGeohashNeighbors(t *testing.T) {
	hash := EncodeLocation(connaughtPlace, 6)
	neighbors := GeohashNeighbors(hash)
	assert.Len(t, neighbors, 8)
}
