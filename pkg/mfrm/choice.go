package mfrm

import (
	"fmt"
	"math"
)

// SelectionProbs computes the customer selection probability for every product
// plus the "do not fly" probability from multinomial-logit utilities and the
// host's market share.
//
// The no-fly alternative gets the implied exponentiated utility
// expSum * (1-marketShare) / marketShare, so that after normalization the
// host's products account for exactly marketShare of the probability mass.
// The returned probabilities and no-fly probability sum to 1.
//
// marketShare must lie in (0, 1] and utilities must be non-empty; both are
// validated so a bad share can never reach the normalization as a division by
// zero.
func SelectionProbs(utilities map[string]float64, marketShare float64) (map[string]float64, float64, error) {
	if marketShare <= 0 || marketShare > 1 {
		return nil, 0, fmt.Errorf("%w: got %v", ErrInvalidMarketShare, marketShare)
	}
	if len(utilities) == 0 {
		return nil, 0, fmt.Errorf("%w: no product utilities", ErrInvalidInput)
	}

	exps := make(map[string]float64, len(utilities))
	var expSum float64
	for product, u := range utilities {
		e := math.Exp(u)
		exps[product] = e
		expSum += e
	}

	expNoFly := expSum * (1 - marketShare) / marketShare
	total := expSum + expNoFly

	probs := make(map[string]float64, len(utilities))
	for product, e := range exps {
		probs[product] = e / total
	}
	noFlyProb := expNoFly / total

	return probs, noFlyProb, nil
}
