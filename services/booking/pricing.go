package booking

import (
	"shutterhub/models"
)

// PricingConfig carries the tunable pricing policy. WeeklyRateMultiplier is
// the number of daily units charged per full 7-day block on day-rated
// resources (e.g. 5.5 charges 5.5 day-prices for a 7-day week). It is a
// configuration value, not a constant: the advertised weekly discount and the
// operative multiplier have historically disagreed, so the policy stays
// adjustable until the business settles the number.
type PricingConfig struct {
	WeeklyRateMultiplier float64
}

// DefaultWeeklyRateMultiplier matches the long-standing production value.
const DefaultWeeklyRateMultiplier = 5.5

const daysPerWeek = 7

// Quote computes the total price of booking res for the given interval.
// It is deterministic and side-effect free; callers never supply a price.
func Quote(res *models.Resource, iv models.Interval, cfg PricingConfig) (float64, error) {
	if !iv.IsValid() {
		return 0, NewValidationError("interval start must be before end")
	}
	mult := cfg.WeeklyRateMultiplier
	if mult <= 0 {
		mult = DefaultWeeklyRateMultiplier
	}

	switch res.RateUnit {
	case models.UnitFixed:
		// Fixed-duration services charge the listed price; the interval only
		// serves the availability check.
		return res.RateUnitPrice, nil

	case models.UnitDay:
		days := chargeableUnits(iv.Days(), res.MinUnits)
		if days < daysPerWeek {
			return res.RateUnitPrice * float64(days), nil
		}
		weeks := days / daysPerWeek
		remainder := days % daysPerWeek
		return res.RateUnitPrice*mult*float64(weeks) + res.RateUnitPrice*float64(remainder), nil

	case models.UnitWeek:
		weeks := iv.Days() / daysPerWeek
		if iv.Days()%daysPerWeek != 0 {
			weeks++
		}
		weeks = chargeableUnits(weeks, res.MinUnits)
		return res.RateUnitPrice * float64(weeks), nil

	default:
		return 0, NewValidationError("resource %s has unknown rate unit %q", res.ID, res.RateUnit)
	}
}

// chargeableUnits floors the requested unit count at the resource minimum.
func chargeableUnits(requested, minUnits int) int {
	if requested < 1 {
		requested = 1
	}
	if minUnits > 0 && requested < minUnits {
		return minUnits
	}
	return requested
}
