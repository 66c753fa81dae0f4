package mfrm

import "fmt"

// CalibrateNoBooking redistributes spill that the class-level solve could not
// account for. Zero-booking products default to zero estimates, so the sum of
// class-level spills generally falls short of the host-level spill; the
// shortfall is spread across exactly those products, weighted by how often
// each would have been both selected and closed: probs[p] * (1 - avail[p]).
//
// The input estimates map is never mutated; a fresh map is always returned.
// Non-positive unaccounted spill leaves the estimates unchanged. Positive
// unaccounted spill with no zero-booking product (or all such products carry
// zero weight) is an ErrNoSpillTarget rather than a silent NaN.
func CalibrateNoBooking(estimates map[string]Estimate, observed, availability, probs map[string]float64, hostSpill float64) (map[string]Estimate, error) {
	calibrated := make(map[string]Estimate, len(estimates))
	var classSpill float64
	for product, estimate := range estimates {
		calibrated[product] = estimate
		classSpill += estimate.Spill
	}

	unaccounted := hostSpill - classSpill
	if unaccounted <= 0 {
		return calibrated, nil
	}

	weights := make(map[string]float64)
	var totalWeight float64
	for product := range calibrated {
		if observed[product] == 0 {
			w := probs[product] * (1 - availability[product])
			weights[product] = w
			totalWeight += w
		}
	}

	if totalWeight == 0 {
		return nil, fmt.Errorf("%w: %g unaccounted", ErrNoSpillTarget, unaccounted)
	}

	for product, w := range weights {
		share := unaccounted * w / totalWeight
		estimate := calibrated[product]
		estimate.Demand = share
		estimate.Spill = share
		calibrated[product] = estimate
	}

	return calibrated, nil
}
