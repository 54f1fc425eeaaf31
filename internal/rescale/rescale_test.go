package rescale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zircuit-labs/ceremony"
	"github.com/zircuit-labs/ceremony/internal/contribution"
	"github.com/zircuit-labs/ceremony/internal/curve"
	"github.com/zircuit-labs/ceremony/internal/proof"
	"github.com/zircuit-labs/ceremony/internal/rescale"
)

func smallPrev() contribution.Contribution {
	g := make([]curve.G1, 8)
	for i := range g {
		g[i] = curve.G1Gen
	}
	return contribution.Contribution{
		K: ceremony.K, N: 8, G: g, G2Gen: curve.G2Gen, SG2: curve.G2Gen,
		Proof: proof.Default(), Id: 3,
	}
}

func TestApplyScalesEveryPowerCorrectly(t *testing.T) {
	prev := smallPrev()

	var s, z curve.Scalar
	s.SetUint64(5)
	z.SetUint64(9)

	next := rescale.Apply(&prev, &s, &z)

	require.Equal(t, prev.Id+1, next.Id)
	require.Len(t, next.G, len(prev.G))

	var cur curve.Scalar
	cur.SetOne()
	for i := range next.G {
		want := curve.ScalarMulG1(&prev.G[i], &cur)
		require.True(t, want.Equal(&next.G[i]), "index %d", i)
		cur.Mul(&cur, &s)
	}

	wantSG2 := curve.ScalarMulG2(&prev.SG2, &s)
	require.True(t, wantSG2.Equal(&next.SG2))
	require.True(t, next.G2Gen.Equal(&prev.G2Gen))
}

func TestApplyProducesVerifiableProof(t *testing.T) {
	prev := smallPrev()

	var s, z curve.Scalar
	s.SetUint64(7)
	z.SetUint64(13)

	next := rescale.Apply(&prev, &s, &z)
	ok, _ := proof.Verify(prev.SG(), next.SG(), &next.Proof)
	require.True(t, ok)
}
