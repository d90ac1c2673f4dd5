/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package types

import "github.com/pkg/errors"

// Error kinds. Detection sites wrap these with context, so test for them with errors.Is.
var (
	ErrInvalidFraction    = errors.New("invalid fraction: zero denominator")
	ErrInvalidBase        = errors.New("invalid base")
	ErrInvalidDigit       = errors.New("invalid digit")
	ErrInvalidInteger     = errors.New("invalid integer")
	ErrInvalidThreshold   = errors.New("invalid threshold")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrNonIntegerResult   = errors.New("non-integer result")
	ErrInconsistentShares = errors.New("inconsistent shares")
	ErrMalformedCase      = errors.New("malformed case")
)
