/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package interpolate

import (
	"fmt"
	"math/big"
	"math/rand"
	"testing"

	"github.com/IBM/sss-recovery/shares"
	. "github.com/IBM/sss-recovery/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestReconstructExample(t *testing.T) {
	in := &Interpolator{Logger: logger(t.Name())}

	set, err := shares.New(4, 3, []RawShare{
		{Key: "1", Base: "10", Value: "4"},
		{Key: "2", Base: "2", Value: "111"},
		{Key: "3", Base: "10", Value: "12"},
		{Key: "6", Base: "4", Value: "213"},
	})
	require.NoError(t, err)

	secret, err := in.Reconstruct(set)
	require.NoError(t, err)
	assert.Equal(t, "3", secret.String())
}

func TestReconstructRandomPolynomials(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	in := &Interpolator{Logger: logger(t.Name())}

	for _, tst := range []struct {
		n int
		k int
	}{
		{n: 1, k: 1},
		{n: 3, k: 2},
		{n: 5, k: 3},
		{n: 10, k: 7},
		{n: 12, k: 12},
	} {
		t.Run(fmt.Sprintf("%d out of %d", tst.k, tst.n), func(t *testing.T) {
			for round := 0; round < 20; round++ {
				polynomial := randomPolynomial(rnd, tst.k)
				points := samplePoints(rnd, polynomial, tst.n)

				set, err := shares.FromPoints(tst.n, tst.k, points)
				require.NoError(t, err)

				secret, err := in.Reconstruct(set)
				require.NoError(t, err)
				assert.Zero(t, polynomial.ValueAt(big.NewInt(0)).Cmp(secret))

				// Any k of the points recover the same constant term
				perm := rnd.Perm(tst.n)[:tst.k]
				subset := make([]Point, tst.k)
				for i, index := range perm {
					subset[i] = points[index]
				}
				secret, err = ReconstructPoints(subset)
				require.NoError(t, err)
				assert.Zero(t, polynomial[0].Cmp(secret))
			}
		})
	}
}

func TestReconstructHugeValues(t *testing.T) {
	c, _ := new(big.Int).SetString("79836264049851996721156549382931367485293146671802818900931239276523466710", 10)
	polynomial := Polynomial{c, big.NewInt(-17), new(big.Int).Lsh(big.NewInt(1), 256)}

	var points []Point
	for _, x := range []int64{1000000007, -998244353, 31337} {
		points = append(points, Point{X: big.NewInt(x), Y: polynomial.ValueAt(big.NewInt(x))})
	}

	secret, err := ReconstructPoints(points)
	require.NoError(t, err)
	assert.Zero(t, c.Cmp(secret))
}

func TestReconstructUsesFirstK(t *testing.T) {
	in := &Interpolator{Logger: logger(t.Name())}

	// (1,4) (2,7) (3,12) lie on x^2+3, the share at 6 is corrupt and ignored
	set, err := shares.New(4, 3, []RawShare{
		{Key: "6", Base: "10", Value: "1000"},
		{Key: "3", Base: "10", Value: "12"},
		{Key: "2", Base: "10", Value: "7"},
		{Key: "1", Base: "10", Value: "4"},
	})
	require.NoError(t, err)

	secret, err := in.Reconstruct(set)
	require.NoError(t, err)
	assert.Equal(t, "3", secret.String())
}

func TestReconstructDuplicateX(t *testing.T) {
	in := &Interpolator{Logger: logger(t.Name())}

	set, err := shares.New(3, 3, []RawShare{
		{Key: "1", Base: "10", Value: "4"},
		{Key: "2", Base: "10", Value: "7"},
		{Key: "2", Base: "10", Value: "7"},
	})
	require.NoError(t, err)

	_, err = in.Reconstruct(set)
	assert.True(t, errors.Is(err, ErrInvalidFraction), "got %v", err)
	assert.Contains(t, err.Error(), "x-coordinate 2 appears more than once")
}

func TestReconstructDuplicateXOutsideChosen(t *testing.T) {
	in := &Interpolator{Logger: logger(t.Name())}

	set, err := shares.New(4, 2, []RawShare{
		{Key: "1", Base: "10", Value: "5"},
		{Key: "2", Base: "10", Value: "8"},
		{Key: "3", Base: "10", Value: "11"},
		{Key: "3", Base: "10", Value: "11"},
	})
	require.NoError(t, err)

	secret, err := in.Reconstruct(set)
	require.NoError(t, err)
	assert.Equal(t, "2", secret.String())
}

func TestReconstructNonInteger(t *testing.T) {
	in := &Interpolator{Logger: logger(t.Name())}

	// The line through (1,1) and (3,2) crosses the y axis at 1/2
	set, err := shares.New(2, 2, []RawShare{
		{Key: "1", Base: "10", Value: "1"},
		{Key: "3", Base: "10", Value: "2"},
	})
	require.NoError(t, err)

	_, err = in.Reconstruct(set)
	assert.True(t, errors.Is(err, ErrNonIntegerResult), "got %v", err)
}

func TestReconstructInsufficient(t *testing.T) {
	_, err := ReconstructPoints(nil)
	assert.True(t, errors.Is(err, ErrInsufficientShares))

	_, err = shares.FromPoints(3, 3, []Point{{X: big.NewInt(1), Y: big.NewInt(1)}})
	assert.True(t, errors.Is(err, ErrInsufficientShares))
}

func TestCoefficient(t *testing.T) {
	xs := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}

	var expected []string
	for i := range xs {
		l, err := Coefficient(i, xs)
		require.NoError(t, err)
		expected = append(expected, l.String())
	}
	// L_1(0) = 3, L_2(0) = -3, L_3(0) = 1
	assert.Equal(t, []string{"3", "-3", "1"}, expected)

	l, err := Coefficient(0, xs[:1])
	require.NoError(t, err)
	assert.Equal(t, "1", l.String())
}

func TestVerifyConsistency(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	in := &Interpolator{Logger: logger(t.Name())}

	polynomial := randomPolynomial(rnd, 3)
	points := samplePoints(rnd, polynomial, 6)

	set, err := shares.FromPoints(6, 3, points)
	require.NoError(t, err)

	secret, err := in.VerifyConsistency(set)
	require.NoError(t, err)
	assert.Zero(t, polynomial[0].Cmp(secret))

	// Corrupt the share with the largest x, which first-k reconstruction never looks at
	sorted := set.Points()
	last := len(sorted) - 1
	sorted[last] = Point{X: sorted[last].X, Y: new(big.Int).Add(sorted[last].Y, big.NewInt(1))}

	corrupt, err := shares.FromPoints(6, 3, sorted)
	require.NoError(t, err)

	secret, err = in.Reconstruct(corrupt)
	require.NoError(t, err)
	assert.Zero(t, polynomial[0].Cmp(secret))

	_, err = in.VerifyConsistency(corrupt)
	assert.True(t, errors.Is(err, ErrInconsistentShares), "got %v", err)
}

func TestNilLogger(t *testing.T) {
	in := &Interpolator{}
	set, err := shares.FromPoints(1, 1, []Point{{X: big.NewInt(5), Y: big.NewInt(9)}})
	require.NoError(t, err)

	secret, err := in.Reconstruct(set)
	require.NoError(t, err)
	assert.Equal(t, "9", secret.String())
}

// Polynomial holds integer coefficients, constant term first.
type Polynomial []*big.Int

func (p Polynomial) ValueAt(x *big.Int) *big.Int {
	// Horner
	sum := big.NewInt(0)
	for i := len(p) - 1; i >= 0; i-- {
		sum.Mul(sum, x)
		sum.Add(sum, p[i])
	}
	return sum
}

func randomPolynomial(rnd *rand.Rand, threshold int) Polynomial {
	polynomial := make(Polynomial, threshold)
	limit := new(big.Int).Lsh(big.NewInt(1), 128)
	for i := range polynomial {
		polynomial[i] = new(big.Int).Rand(rnd, limit)
		if rnd.Intn(2) == 0 {
			polynomial[i].Neg(polynomial[i])
		}
	}
	return polynomial
}

// samplePoints evaluates the polynomial at n distinct non-zero x, in random order.
func samplePoints(rnd *rand.Rand, p Polynomial, n int) []Point {
	seen := make(map[int64]struct{})
	var points []Point
	for len(points) < n {
		x := rnd.Int63n(2000) - 1000
		if _, exists := seen[x]; exists || x == 0 {
			continue
		}
		seen[x] = struct{}{}
		points = append(points, Point{X: big.NewInt(x), Y: p.ValueAt(big.NewInt(x))})
	}
	return points
}

func logger(testName string) Logger {
	logConfig := zap.NewDevelopmentConfig()
	logger, _ := logConfig.Build()
	logger = logger.With(zap.String("t", testName))
	return &testLogger{
		SugaredLogger: logger.Sugar(),
		debugEnabled:  logConfig.Level.Enabled(zapcore.DebugLevel),
	}
}

type testLogger struct {
	debugEnabled bool
	*zap.SugaredLogger
}

func (tl *testLogger) DebugEnabled() bool {
	return tl.debugEnabled
}
