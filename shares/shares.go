/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package shares

import (
	"math/big"
	"sort"

	"github.com/IBM/sss-recovery/radix"
	. "github.com/IBM/sss-recovery/types"
	"github.com/pkg/errors"
)

// ShareSet is a decoded case: n declared shares, of which any k reconstruct the secret.
// Points are ordered by ascending x. A ShareSet is not modified after New returns.
type ShareSet struct {
	n      int
	k      int
	points []Point
}

// New decodes the raw shares and orders them by x.
// It fails if a share cannot be decoded or there are fewer than k of them.
// Distinctness of the x-coordinates is left to interpolation.
func New(n, k int, raw []RawShare) (*ShareSet, error) {
	if k < 1 {
		return nil, errors.Wrapf(ErrInvalidThreshold, "threshold is %d", k)
	}

	points := make([]Point, 0, len(raw))
	for _, rs := range raw {
		p, err := decodeShare(rs)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return FromPoints(n, k, points)
}

// FromPoints builds a ShareSet out of already decoded points, which are copied.
func FromPoints(n, k int, points []Point) (*ShareSet, error) {
	if k < 1 {
		return nil, errors.Wrapf(ErrInvalidThreshold, "threshold is %d", k)
	}

	sorted := copyPoints(points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X.Cmp(sorted[j].X) < 0
	})

	if len(sorted) < k {
		return nil, errors.Wrapf(ErrInsufficientShares, "need %d, got %d", k, len(sorted))
	}

	return &ShareSet{n: n, k: k, points: sorted}, nil
}

func decodeShare(rs RawShare) (Point, error) {
	x, ok := new(big.Int).SetString(rs.Key, 10)
	if !ok {
		return Point{}, errors.Wrapf(ErrInvalidInteger, "x-coordinate %q", rs.Key)
	}

	base, err := radix.ParseBase(rs.Base)
	if err != nil {
		return Point{}, errors.WithMessagef(err, "share %s", rs.Key)
	}

	y, err := radix.Decode(rs.Value, base)
	if err != nil {
		return Point{}, errors.WithMessagef(err, "share %s", rs.Key)
	}

	return Point{X: x, Y: y}, nil
}

// N returns the declared total number of shares.
func (s *ShareSet) N() int {
	return s.n
}

// K returns the reconstruction threshold.
func (s *ShareSet) K() int {
	return s.k
}

// Len returns the number of decoded shares.
func (s *ShareSet) Len() int {
	return len(s.points)
}

// Points returns all shares ordered by x.
func (s *ShareSet) Points() []Point {
	return copyPoints(s.points)
}

// Chosen returns the first k shares, which are the ones reconstruction uses.
func (s *ShareSet) Chosen() []Point {
	k := s.k
	if k > len(s.points) {
		k = len(s.points)
	}
	return copyPoints(s.points[:k])
}

// copyPoints copies the coordinates too, so neither side can modify the other's values.
func copyPoints(points []Point) []Point {
	res := make([]Point, len(points))
	for i, p := range points {
		res[i] = Point{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
	}
	return res
}
