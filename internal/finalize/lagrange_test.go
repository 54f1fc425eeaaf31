package finalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zircuit-labs/ceremony/internal/curve"
)

// monomialSRS builds g[i] = s^i * g1 for i in [0, n).
func monomialSRS(secret uint64, n int) []curve.G1 {
	var s curve.Scalar
	s.SetUint64(secret)

	g := make([]curve.G1, n)
	var cur curve.Scalar
	cur.SetOne()
	for i := range g {
		g[i] = curve.ScalarMulG1(&curve.G1Gen, &cur)
		cur.Mul(&cur, &s)
	}
	return g
}

// Since the Lagrange basis polynomials sum to 1 at every point, the sum of
// the Lagrange-basis SRS points must equal g[0] = 1*g1, regardless of the
// secret used to build the monomial basis.
func TestToLagrangeG1BasisSumsToGenerator(t *testing.T) {
	g := monomialSRS(999331, 8)
	lagrange := toLagrangeG1(g)
	require.Len(t, lagrange, len(g))

	sum := lagrange[0]
	for i := 1; i < len(lagrange); i++ {
		sum = curve.AddG1(&sum, &lagrange[i])
	}
	require.True(t, sum.Equal(&g[0]))
}

func TestToLagrangeG1IsDeterministic(t *testing.T) {
	g := monomialSRS(42, 4)
	a := toLagrangeG1(g)
	b := toLagrangeG1(g)
	for i := range a {
		require.True(t, a[i].Equal(&b[i]))
	}
}
