/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package recovery

import (
	"math/big"

	"github.com/IBM/sss-recovery/casefile"
	"github.com/IBM/sss-recovery/interpolate"
	"github.com/IBM/sss-recovery/shares"
	. "github.com/IBM/sss-recovery/types"
	"github.com/pkg/errors"
)

// Recoverer turns case files into secrets. Cases are independent of each other.
type Recoverer struct {
	Logger Logger

	// Verify makes every k-subset of the shares agree, rather than trusting the first k.
	Verify bool
}

// Result is the outcome of a single case.
type Result struct {
	Path   string
	Secret *big.Int
	Err    error
}

// Recover loads the case file at path and returns its secret.
func (r *Recoverer) Recover(path string) (*big.Int, error) {
	c, err := casefile.Load(path)
	if err != nil {
		return nil, err
	}

	secret, err := r.RecoverCase(c)
	if err != nil {
		return nil, errors.WithMessagef(err, "case %s", path)
	}
	return secret, nil
}

// RecoverCase decodes, orders and interpolates the shares of an already parsed case.
func (r *Recoverer) RecoverCase(c *casefile.Case) (*big.Int, error) {
	logger := r.logger()

	if len(c.Skipped) > 0 {
		logger.Warnf("Ignoring entries of %s that are not shares: %v", c.Path, c.Skipped)
	}

	if logger.DebugEnabled() {
		logger.Debugf("Case %s: %s", c.Path, c)
	}

	set, err := shares.New(c.N, c.K, c.Shares)
	if err != nil {
		return nil, err
	}

	if set.Len() != set.N() {
		logger.Infof("Case %s declares %d shares but holds %d", c.Path, set.N(), set.Len())
	}

	in := &interpolate.Interpolator{Logger: logger}
	if r.Verify {
		return in.VerifyConsistency(set)
	}
	return in.Reconstruct(set)
}

// RecoverAll processes the paths in order.
// Unless isolate is set it stops at the first failing case, whose Result is the last one returned.
func (r *Recoverer) RecoverAll(paths []string, isolate bool) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		secret, err := r.Recover(path)
		results = append(results, Result{Path: path, Secret: secret, Err: err})
		if err != nil {
			r.logger().Errorf("Failed recovering secret of %s: %v", path, err)
			if !isolate {
				break
			}
		}
	}
	return results
}

func (r *Recoverer) logger() Logger {
	if r.Logger == nil {
		return NopLogger{}
	}
	return r.Logger
}
