// Package mfrm implements the Multi-Flight Recapture Method (MFRM) for
// estimating unconstrained demand, spill and recapture from observed airline
// bookings, product availability and a discrete-choice selection model.
//
// The method is described in Richard M. Ratliff, "A multi-flight recapture
// heuristic for estimating unconstrained demand from airline bookings",
// Journal of Revenue and Pricing Management (2008). CalibrateNoBooking is an
// extension beyond the paper that redistributes unaccounted spill across
// products with no observed bookings.
//
// All functions are pure: inputs are never mutated and no global state is
// touched, so concurrent calls over independent inputs are safe.
package mfrm

// Estimate holds the estimated demand, spill and recapture for a single
// product or for the pooled host.
type Estimate struct {
	Demand    float64 `json:"demand"`
	Spill     float64 `json:"spill"`
	Recapture float64 `json:"recapture"`
}

// EstimateHostLevel estimates aggregate unconstrained demand, spill and
// recapture for the whole host, treating all products as one pooled set
// against the full market.
//
// observed maps product to its observed booking count, availability maps
// product to the probability in [0,1] that it was open during the period,
// probs maps product to its customer selection probability, and noFlyProb is
// the probability a customer leaves the market entirely. Missing keys in
// observed and availability default to 0.
//
// An empty probs yields a zero Estimate: without a market model there is
// nothing to solve.
func EstimateHostLevel(observed, availability, probs map[string]float64, noFlyProb float64) (Estimate, error) {
	if len(probs) == 0 {
		return Estimate{}, nil
	}

	// probability of selecting an open element from the market set M
	probMarketOpen := noFlyProb
	for product, pr := range probs {
		probMarketOpen += pr * availability[product]
	}

	// fraction of market-open selections that are recapturable rather than
	// the no-fly alternative
	recaptureRate := (probMarketOpen - noFlyProb) / probMarketOpen

	// probability of selecting a closed element from the host set H,
	// conditional on wanting to fly at all
	probHostClosed := (1 - probMarketOpen) / (1 - noFlyProb)

	var totalODemand float64
	for _, d := range observed {
		totalODemand += d
	}

	return DemandMassBalanceH(totalODemand, probHostClosed, recaptureRate)
}

// EstimateClassLevel disaggregates host-level estimates down to each product
// in probs. Products with observed bookings are solved through the class-level
// mass balance; products without bookings default to a zero Estimate because
// the balance equation is underdetermined for them. When calibrate is true the
// result is passed through CalibrateNoBooking so that spill unaccounted for at
// class level is redistributed across the zero-booking products.
//
// A product with positive observed demand but zero availability is an
// ErrInvalidInput: it cannot have been booked while never open. The error
// aborts the whole call.
func EstimateClassLevel(observed, availability, probs map[string]float64, noFlyProb float64, calibrate bool) (map[string]Estimate, error) {
	host, err := EstimateHostLevel(observed, availability, probs, noFlyProb)
	if err != nil {
		return nil, err
	}

	var totalODemand float64
	for _, d := range observed {
		totalODemand += d
	}

	estimates := make(map[string]Estimate, len(probs))
	for product := range probs {
		odemand := observed[product]
		avail := availability[product]

		if avail == 0 && odemand > 0 {
			return nil, errProductUnavailable(product)
		}

		if odemand > 0 {
			estimate, err := DemandMassBalanceC(totalODemand, odemand, avail, host.Recapture)
			if err != nil {
				return nil, err
			}
			estimates[product] = estimate
		} else {
			estimates[product] = Estimate{}
		}
	}

	if calibrate {
		return CalibrateNoBooking(estimates, observed, availability, probs, host.Spill)
	}
	return estimates, nil
}
