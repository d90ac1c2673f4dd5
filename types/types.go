/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package types

import (
	"fmt"
	"math/big"
)

const (
	// MetadataKey is the reserved document entry holding n and k.
	MetadataKey = "keys"
)

// Logger logs messages in a synchronized fashion to the same destination (usually stderr)
type Logger interface {
	DebugEnabled() bool
	Debugf(format string, a ...interface{})
	Infof(format string, a ...interface{})
	Warnf(format string, a ...interface{})
	Errorf(format string, a ...interface{})
}

// Point is a decoded share: the evaluation point X and the polynomial's value Y at X.
type Point struct {
	X *big.Int
	Y *big.Int
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}

// RawShare is a share as it appears in a case document, before decoding.
// Key is the decimal x-coordinate, Value holds the digits of y in Base.
type RawShare struct {
	Key   string
	Base  string
	Value string
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) DebugEnabled() bool                     { return false }
func (NopLogger) Debugf(format string, a ...interface{}) {}
func (NopLogger) Infof(format string, a ...interface{})  {}
func (NopLogger) Warnf(format string, a ...interface{})  {}
func (NopLogger) Errorf(format string, a ...interface{}) {}
