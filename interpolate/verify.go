/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package interpolate

import (
	"math/big"

	"github.com/IBM/sss-recovery/shares"
	. "github.com/IBM/sss-recovery/types"
	"github.com/pkg/errors"
)

// VerifyConsistency reconstructs the secret from every k-subset of the shares
// and fails with ErrInconsistentShares unless all subsets agree.
// On success it returns the common secret, which equals what Reconstruct returns.
// The number of subsets grows as n choose k.
func (in *Interpolator) VerifyConsistency(set *shares.ShareSet) (*big.Int, error) {
	secret, err := in.Reconstruct(set)
	if err != nil {
		return nil, err
	}

	points := set.Points()
	var checked int
	var failure error

	chooseKoutOfN(len(points), set.K(), func(indices []int) bool {
		subset := make([]Point, len(indices))
		for i, index := range indices {
			subset[i] = points[index]
		}

		checked++
		s, err := ReconstructPoints(subset)
		if err != nil {
			failure = errors.WithMessagef(ErrInconsistentShares, "shares %v: %v", subset, err)
			return false
		}

		if s.Cmp(secret) != 0 {
			failure = errors.WithMessagef(ErrInconsistentShares, "shares %v yield %s but %v yield %s", subset, s, set.Chosen(), secret)
			return false
		}

		return true
	})

	if failure != nil {
		in.logger().Warnf("Share set is inconsistent after %d subsets: %v", checked, failure)
		return nil, failure
	}

	in.logger().Debugf("All %d subsets of %d out of %d shares agree on %s", checked, set.K(), len(points), secret)
	return secret, nil
}
