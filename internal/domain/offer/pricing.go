package offer

import (
	"math"
	"time"
)

// PriceQuote is the buyer-facing price of an offer at a given instant.
type PriceQuote struct {
	EffectivePriceCents int64
	DiscountPercent     int
	Tier                *string
}

// Discount steps by minutes to expiry, evaluated in order; first match wins.
var discountSteps = []struct {
	withinMinutes float64
	percent       int
	tier          string
}{
	{30, 70, "-70%"},
	{60, 50, "-50%"},
	{120, 30, "-30%"},
}

// Quote computes the effective price for the given price fields at `now`.
// Offers without an expiry never discount. The reference price is
// originalPriceCents when present, otherwise priceCents. Rounding is
// half-away-from-zero at the cents unit.
func Quote(priceCents int64, originalPriceCents *int64, expiresAt *time.Time, now time.Time) PriceQuote {
	quote := PriceQuote{EffectivePriceCents: priceCents}
	if expiresAt == nil {
		return quote
	}

	minutesToExpiry := expiresAt.Sub(now).Minutes()
	for _, step := range discountSteps {
		if minutesToExpiry <= step.withinMinutes {
			quote.DiscountPercent = step.percent
			tier := step.tier
			quote.Tier = &tier
			break
		}
	}
	if quote.DiscountPercent == 0 {
		return quote
	}

	reference := priceCents
	if originalPriceCents != nil {
		reference = *originalPriceCents
	}
	if reference > 0 {
		discounted := float64(reference) * (1 - float64(quote.DiscountPercent)/100)
		quote.EffectivePriceCents = int64(math.Round(discounted))
	}
	return quote
}
