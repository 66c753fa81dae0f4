package mfrm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DemandMassBalanceH solves the host-level demand mass-balance equation.
//
// Three unknowns (demand D, spill S, recapture R) under three constraints:
// conservation D - S + R = odemand, spill proportional to demand via
// closeProb, and recapture proportional to spill via recaptureRate. The 3x3
// system is solved exactly; a degenerate closeProb/recaptureRate combination
// surfaces as ErrSingularSystem.
func DemandMassBalanceH(odemand, closeProb, recaptureRate float64) (Estimate, error) {
	a := mat.NewDense(3, 3, []float64{
		1, -1, 1,
		-closeProb, 1, 0,
		0, -recaptureRate, 1,
	})
	b := mat.NewVecDense(3, []float64{odemand, 0, 0})

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return Estimate{}, fmt.Errorf("%w: host level: %v", ErrSingularSystem, err)
	}

	return Estimate{
		Demand:    x.AtVec(0),
		Spill:     x.AtVec(1),
		Recapture: x.AtVec(2),
	}, nil
}

// DemandMassBalanceC solves the class-level demand mass-balance equation for a
// single product. The host-level recapture is first apportioned to the class
// pro-rata by observed demand, then demand and spill are solved from the 2x2
// system of conservation and spill-proportional-to-demand (with the product's
// closed probability 1 - avail).
//
// With zero classODemand the balance is underdetermined and a zero Estimate
// is returned; callers resolve these products through CalibrateNoBooking.
func DemandMassBalanceC(hostODemand, classODemand, avail, hostRecapture float64) (Estimate, error) {
	if classODemand == 0 {
		return Estimate{}, nil
	}

	recapture := hostRecapture * classODemand / hostODemand

	// probability the product was closed during the period
	k := 1 - avail

	a := mat.NewDense(2, 2, []float64{
		1, -1,
		-k, 1,
	})
	b := mat.NewVecDense(2, []float64{classODemand - recapture, 0})

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return Estimate{}, fmt.Errorf("%w: class level: %v", ErrSingularSystem, err)
	}

	return Estimate{
		Demand:    x.AtVec(0),
		Spill:     x.AtVec(1),
		Recapture: recapture,
	}, nil
}
