package contribution

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zircuit-labs/ceremony"
	"github.com/zircuit-labs/ceremony/internal/curve"
	"github.com/zircuit-labs/ceremony/internal/proof"
)

// small builds a structurally valid contribution with a handful of G1
// points instead of ceremony.N, so the wire format can be exercised
// without allocating a 2^28-element record.
func small(n int, id uint32) Contribution {
	g := make([]curve.G1, n)
	for i := range g {
		g[i] = curve.G1Gen
	}
	return Contribution{
		K: ceremony.K, N: n, G: g, G2Gen: curve.G2Gen, SG2: curve.G2Gen,
		Proof: proof.Default(), Id: id,
	}
}

func TestWriteReadBodyRoundTrip(t *testing.T) {
	c := small(4, 7)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))

	// Write emits k first; readBody picks up from there.
	var kBuf [4]byte
	_, err := buf.Read(kBuf[:])
	require.NoError(t, err)

	got, err := readBody(&buf, ceremony.K, 4)
	require.NoError(t, err)
	require.True(t, c.Equal(&got))
}

func TestReadRejectsWrongK(t *testing.T) {
	c := small(4, 0)
	c.K = ceremony.K + 1

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))

	_, err := Read(&buf)
	var cerr *ceremony.Error
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, ceremony.WrongK, cerr.Kind)
}

func TestReadBodyRejectsTruncatedTail(t *testing.T) {
	c := small(4, 0)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	full := buf.Bytes()

	truncated := bytes.NewReader(full[4 : len(full)-4]) // drop k and the trailing id
	_, err := readBody(truncated, ceremony.K, 4)

	var cerr *ceremony.Error
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, ceremony.Truncated, cerr.Kind)
}

func TestReadBodyRejectsOffCurvePoint(t *testing.T) {
	c := small(2, 0)
	c.G[1].X.SetOne()
	c.G[1].Y.SetOne() // (1,1) is not on the BN254 curve

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	full := buf.Bytes()

	_, err := readBody(bytes.NewReader(full[4:]), ceremony.K, 2)
	var cerr *ceremony.Error
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, ceremony.OffCurve, cerr.Kind)
}

func TestSGIsGOne(t *testing.T) {
	c := small(4, 0)
	require.True(t, c.SG().Equal(&c.G[1]))
}

func TestReadIdMatchesWrittenId(t *testing.T) {
	c := small(4, 9)
	path := t.TempDir() + "/0000000009.csrs"
	require.NoError(t, c.WriteFile(path))

	id, err := ReadId(path)
	require.NoError(t, err)
	require.Equal(t, uint32(9), id)
}

func TestReadIdRejectsTooSmallFile(t *testing.T) {
	path := t.TempDir() + "/tiny.csrs"
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o600))

	_, err := ReadId(path)
	var cerr *ceremony.Error
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, ceremony.Malformed, cerr.Kind)
}
