/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package interpolate

import (
	"math/big"

	"github.com/IBM/sss-recovery/rational"
	"github.com/IBM/sss-recovery/shares"
	. "github.com/IBM/sss-recovery/types"
	"github.com/pkg/errors"
)

type Interpolator struct {
	Logger Logger
}

// Reconstruct returns the constant term of the polynomial through the first k shares of the set,
// i.e. its value at x = 0. The remaining shares are ignored.
func (in *Interpolator) Reconstruct(set *shares.ShareSet) (*big.Int, error) {
	if set.Len() < set.K() {
		return nil, errors.Wrapf(ErrInsufficientShares, "need %d, got %d", set.K(), set.Len())
	}

	chosen := set.Chosen()
	if in.logger().DebugEnabled() {
		in.logger().Debugf("Reconstructing from %d out of %d shares: %v", len(chosen), set.Len(), chosen)
	}

	secret, err := ReconstructPoints(chosen)
	if err != nil {
		return nil, err
	}

	in.logger().Debugf("Reconstructed secret %s", secret)
	return secret, nil
}

// ReconstructPoints interpolates all the given points at x = 0 and returns the result,
// which must be an integer.
func ReconstructPoints(points []Point) (*big.Int, error) {
	if len(points) == 0 {
		return nil, errors.Wrap(ErrInsufficientShares, "no points to interpolate")
	}

	xs := make([]*big.Int, len(points))
	for i, p := range points {
		xs[i] = p.X
	}

	sum := rational.Zero()
	for i, p := range points {
		l, err := Coefficient(i, xs)
		if err != nil {
			return nil, err
		}
		sum = sum.Add(l.Mul(rational.FromInt(p.Y)))
	}

	secret, err := sum.Int()
	if err != nil {
		return nil, errors.WithMessagef(err, "points %v do not lie on an integer polynomial of degree < %d", points, len(points))
	}

	return secret, nil
}

// Coefficient returns the Lagrange basis polynomial of xs[i] evaluated at 0,
// that is the product of -xj / (xi - xj) over all j != i.
func Coefficient(i int, xs []*big.Int) (rational.Rational, error) {
	xi := xs[i]
	prod := rational.One()

	for j, xj := range xs {
		if i == j {
			continue
		}

		nominator := new(big.Int).Neg(xj)       // 0 - xj
		denominator := new(big.Int).Sub(xi, xj) // xi - xj
		division, err := rational.New(nominator, denominator)
		if err != nil {
			return rational.Rational{}, errors.WithMessagef(err, "x-coordinate %s appears more than once", xi)
		}

		prod = prod.Mul(division)
	}

	return prod, nil
}

func (in *Interpolator) logger() Logger {
	if in.Logger == nil {
		return NopLogger{}
	}
	return in.Logger
}
