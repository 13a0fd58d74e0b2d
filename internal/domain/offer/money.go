package offer

import "math"

// Price-like inputs accept either major currency units or minor units
// (cents). Values below the threshold are major units and are converted;
// values at or above it are taken as cents verbatim.
const minorUnitThreshold = 100000

// ToMinorUnits normalizes a user-supplied price to cents.
func ToMinorUnits(v float64) int64 {
	if v < minorUnitThreshold {
		return int64(math.Round(v * 100))
	}
	return int64(v)
}
