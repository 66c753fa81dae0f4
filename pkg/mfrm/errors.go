package mfrm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports an input set the method cannot estimate from,
	// e.g. non-zero observed demand on a product with zero availability.
	ErrInvalidInput = errors.New("mfrm: invalid input")

	// ErrInvalidMarketShare reports a market share outside (0, 1].
	ErrInvalidMarketShare = errors.New("mfrm: market share must be in (0, 1]")

	// ErrSingularSystem reports a non-invertible mass-balance system, e.g. a
	// close probability or recapture rate that degenerates the equations.
	ErrSingularSystem = errors.New("mfrm: singular mass-balance system")

	// ErrNoSpillTarget reports positive unaccounted spill with no
	// zero-booking product left to absorb it.
	ErrNoSpillTarget = errors.New("mfrm: no zero-booking product to absorb unaccounted spill")
)

func errProductUnavailable(product string) error {
	return fmt.Errorf("%w: product %q has non-zero observed demand with zero availability", ErrInvalidInput, product)
}
