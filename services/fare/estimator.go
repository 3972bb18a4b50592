// Package fare computes trip fares and arrival estimates. Everything here is
// pure arithmetic over its inputs; distance measurement and surge detection
// are the caller's concern.
package fare

import (
	"math"

	"github.com/ecopath/dispatch/internal/pkg/models"
)

// Base per-km rates by vehicle class, in rupees
var baseRates = map[models.VehicleClass]float64{
	models.VehicleClassCycle:    5,
	models.VehicleClassElectric: 12,
}

// Average speeds by vehicle class in km/h, used for arrival estimates
var avgSpeedsKmh = map[models.VehicleClass]float64{
	models.VehicleClassCycle:    15,
	models.VehicleClassElectric: 25,
}

// BaseRate returns the per-km base rate for a vehicle class. Unknown classes
// fall back to the cycle rate.
func BaseRate(class models.VehicleClass) float64 {
	if rate, ok := baseRates[class]; ok {
		return rate
	}
	return baseRates[models.VehicleClassCycle]
}

// Estimate computes the fare for a trip of the given distance.
//
// The amount is distance times the class base rate times the surge
// multiplier, minus the discount. The result never drops below one km of the
// undiscounted base rate: that floor is the minimum fare, so a large fixed
// discount cannot push a fare to zero or negative.
func Estimate(distanceKm float64, class models.VehicleClass, surgeMultiplier float64, discount *models.Discount) float64 {
	baseRate := BaseRate(class)
	if surgeMultiplier < 1.0 {
		surgeMultiplier = 1.0
	}

	amount := distanceKm * baseRate * surgeMultiplier

	if discount != nil {
		switch discount.Type {
		case models.DiscountTypePercentage:
			amount -= amount * discount.Amount / 100
		case models.DiscountTypeFixed:
			amount -= discount.Amount
		}
	}

	if amount < baseRate {
		amount = baseRate
	}

	return amount
}

// ETAMinutes estimates how long a driver needs to cover the given distance,
// rounded up to whole minutes
func ETAMinutes(distanceKm float64, class models.VehicleClass) int {
	speed, ok := avgSpeedsKmh[class]
	if !ok {
		speed = avgSpeedsKmh[models.VehicleClassCycle]
	}

	return int(math.Ceil(distanceKm / speed * 60))
}
