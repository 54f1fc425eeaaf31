package proof_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zircuit-labs/ceremony/internal/curve"
	"github.com/zircuit-labs/ceremony/internal/proof"
)

func scalars(a, b uint64) (curve.Scalar, curve.Scalar) {
	var sa, sb curve.Scalar
	sa.SetUint64(a)
	sb.SetUint64(b)
	return sa, sb
}

func TestCreateAndVerifyAccept(t *testing.T) {
	s, z := scalars(7, 11)
	prevSG := curve.G1Gen
	newSG := curve.ScalarMulG1(&prevSG, &s)

	p := proof.Create(&prevSG, &s, &z)
	ok, _ := proof.Verify(&prevSG, &newSG, &p)
	require.True(t, ok)
}

func TestVerifyRejectsWrongPredecessor(t *testing.T) {
	s, z := scalars(7, 11)
	prevSG := curve.G1Gen
	newSG := curve.ScalarMulG1(&prevSG, &s)

	p := proof.Create(&prevSG, &s, &z)

	var wrongScalar curve.Scalar
	wrongScalar.SetUint64(99)
	wrongPrevSG := curve.ScalarMulG1(&curve.G1Gen, &wrongScalar)

	ok, _ := proof.Verify(&wrongPrevSG, &newSG, &p)
	require.False(t, ok)
}

func TestVerifyRejectsIdenticalSG(t *testing.T) {
	_, z := scalars(7, 11)
	var one curve.Scalar
	one.SetUint64(1)
	prevSG := curve.G1Gen

	p := proof.Create(&prevSG, &one, &z)
	ok, _ := proof.Verify(&prevSG, &prevSG, &p)
	require.False(t, ok)
}

func TestVerifyRecoversSWhenPublic(t *testing.T) {
	s := curve.Scalar{}
	s.SetUint64(42)
	var zero curve.Scalar

	prevSG := curve.G1Gen
	newSG := curve.ScalarMulG1(&prevSG, &s)

	p := proof.Create(&prevSG, &s, &zero)
	ok, recovered := proof.Verify(&prevSG, &newSG, &p)
	require.True(t, ok)
	require.NotNil(t, recovered)
	require.True(t, recovered.Equal(&s))
}

func TestVerifyDoesNotRecoverSWhenBlinded(t *testing.T) {
	s, z := scalars(42, 11)
	prevSG := curve.G1Gen
	newSG := curve.ScalarMulG1(&prevSG, &s)

	p := proof.Create(&prevSG, &s, &z)
	ok, recovered := proof.Verify(&prevSG, &newSG, &p)
	require.True(t, ok)
	require.Nil(t, recovered)
}

func TestProofWriteReadRoundTrip(t *testing.T) {
	s, z := scalars(3, 5)
	prevSG := curve.G1Gen
	p := proof.Create(&prevSG, &s, &z)

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))

	got, onCurve, err := proof.Read(&buf)
	require.NoError(t, err)
	require.True(t, onCurve)
	require.True(t, p.P.Equal(&got.P))
	require.True(t, p.R.Equal(&got.R))
}

func TestDefaultProofIsIdentity(t *testing.T) {
	d := proof.Default()
	require.True(t, d.P.X.IsZero())
	require.True(t, d.P.Y.IsZero())
}
