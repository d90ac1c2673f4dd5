/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rational

import (
	"math/big"

	. "github.com/IBM/sss-recovery/types"
	"github.com/pkg/errors"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// Rational is an exact fraction p/q kept in lowest terms with q > 0.
// A Rational is never modified after construction.
type Rational struct {
	p *big.Int
	q *big.Int
}

// New returns p/q in canonical form, or ErrInvalidFraction if q is zero.
// The arguments are copied and may be reused by the caller.
func New(p, q *big.Int) (Rational, error) {
	if q.Sign() == 0 {
		return Rational{}, errors.Wrapf(ErrInvalidFraction, "%s/0", p)
	}

	num := new(big.Int).Set(p)
	den := new(big.Int).Set(q)

	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}

	// GCD only accepts non-negative operands, and gcd(0, q) = q
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
	if g.Cmp(one) != 0 {
		num.Quo(num, g)
		den.Quo(den, g)
	}

	return Rational{p: num, q: den}, nil
}

// FromInt returns x/1.
func FromInt(x *big.Int) Rational {
	return Rational{p: new(big.Int).Set(x), q: big.NewInt(1)}
}

// Zero returns 0/1.
func Zero() Rational {
	return FromInt(zero)
}

// One returns 1/1.
func One() Rational {
	return FromInt(one)
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	left := new(big.Int).Mul(r.num(), o.den())
	right := new(big.Int).Mul(o.num(), r.den())
	sum, err := New(left.Add(left, right), new(big.Int).Mul(r.den(), o.den()))
	if err != nil {
		// both denominators are positive
		panic(err)
	}
	return sum
}

// Mul returns r * o.
func (r Rational) Mul(o Rational) Rational {
	prod, err := New(new(big.Int).Mul(r.num(), o.num()), new(big.Int).Mul(r.den(), o.den()))
	if err != nil {
		panic(err)
	}
	return prod
}

// Int returns r as an integer, or ErrNonIntegerResult if the division leaves a remainder.
func (r Rational) Int() (*big.Int, error) {
	quo, rem := new(big.Int).QuoRem(r.num(), r.den(), new(big.Int))
	if rem.Sign() != 0 {
		return nil, errors.Wrapf(ErrNonIntegerResult, "%s is not an integer", r)
	}
	return quo, nil
}

// Num returns a copy of the numerator.
func (r Rational) Num() *big.Int {
	return new(big.Int).Set(r.num())
}

// Denom returns a copy of the denominator, which is always positive.
func (r Rational) Denom() *big.Int {
	return new(big.Int).Set(r.den())
}

// Equal reports whether r and o denote the same number.
func (r Rational) Equal(o Rational) bool {
	return r.num().Cmp(o.num()) == 0 && r.den().Cmp(o.den()) == 0
}

func (r Rational) String() string {
	if r.den().Cmp(one) == 0 {
		return r.num().String()
	}
	return r.num().String() + "/" + r.den().String()
}

// The zero value Rational{} behaves as 0/1.
func (r Rational) num() *big.Int {
	if r.p == nil {
		return zero
	}
	return r.p
}

func (r Rational) den() *big.Int {
	if r.q == nil {
		return one
	}
	return r.q
}
