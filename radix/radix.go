/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package radix

import (
	"math/big"
	"strconv"

	. "github.com/IBM/sss-recovery/types"
	"github.com/pkg/errors"
)

const (
	MinBase = 2
	MaxBase = 36
)

// Decode returns the non-negative integer whose digits in the given base are value.
// Digits are 0-9 followed by a-z, in either case. Signs, separators and
// surrounding whitespace are not accepted.
func Decode(value string, base int) (*big.Int, error) {
	if base < MinBase || base > MaxBase {
		return nil, errors.Wrapf(ErrInvalidBase, "%d is outside [%d, %d]", base, MinBase, MaxBase)
	}

	if len(value) == 0 {
		return nil, errors.Wrap(ErrInvalidDigit, "empty value")
	}

	b := big.NewInt(int64(base))
	res := new(big.Int)
	d := new(big.Int)

	for i := 0; i < len(value); i++ {
		digit := digitValue(value[i])
		if digit < 0 || digit >= base {
			return nil, errors.Wrapf(ErrInvalidDigit, "%q at offset %d is not a base %d digit", value[i], i, base)
		}
		res.Mul(res, b)
		res.Add(res, d.SetInt64(int64(digit)))
	}

	return res, nil
}

// ParseBase parses a decimal base indicator such as "16".
func ParseBase(s string) (int, error) {
	base, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidBase, "%q is not a number", s)
	}
	if base < MinBase || base > MaxBase {
		return 0, errors.Wrapf(ErrInvalidBase, "%d is outside [%d, %d]", base, MinBase, MaxBase)
	}
	return base, nil
}

func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	default:
		return -1
	}
}
