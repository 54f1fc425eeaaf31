package srsverify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zircuit-labs/ceremony/internal/curve"
)

// buildSRS constructs a small, honestly-generated monomial-basis SRS for a
// known secret, bypassing the fixed ceremony.N so the algebraic checks can
// be exercised without allocating a full-size contribution.
func buildSRS(t *testing.T, secret uint64, n int) ([]curve.G1, curve.G2, curve.G2) {
	t.Helper()
	var s curve.Scalar
	s.SetUint64(secret)

	g := make([]curve.G1, n)
	var cur curve.Scalar
	cur.SetOne()
	for i := range g {
		g[i] = curve.ScalarMulG1(&curve.G1Gen, &cur)
		cur.Mul(&cur, &s)
	}
	sG2 := curve.ScalarMulG2(&curve.G2Gen, &s)
	return g, curve.G2Gen, sG2
}

func TestWellFormedAcceptsHonestSRS(t *testing.T) {
	g, g2Gen, sG2 := buildSRS(t, 12345, 16)
	ok, err := wellFormed(g, &g2Gen, &sG2)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestWellFormedRejectsTamperedPoint(t *testing.T) {
	g, g2Gen, sG2 := buildSRS(t, 12345, 16)
	g[7] = curve.ScalarMulG1(&g[7], onePlusOne())

	ok, err := wellFormed(g, &g2Gen, &sG2)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHasOrderRAcceptsGenerator(t *testing.T) {
	require.True(t, hasOrderR(&curve.G2Gen))
}

func TestIsIdentityDetectsIdentity(t *testing.T) {
	var identity curve.G1
	identity.X.SetZero()
	identity.Y.SetZero()
	require.True(t, isIdentity(&identity))
	require.False(t, isIdentity(&curve.G1Gen))
}

func onePlusOne() *curve.Scalar {
	var s curve.Scalar
	s.SetUint64(2)
	return &s
}
