package codec_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zircuit-labs/ceremony/internal/codec"
	"github.com/zircuit-labs/ceremony/internal/curve"
)

func TestScalarRoundTrip(t *testing.T) {
	var s curve.Scalar
	s.SetUint64(424242)

	var buf bytes.Buffer
	require.NoError(t, codec.EncodeScalar(&buf, &s))
	require.Equal(t, codec.ScalarSize, buf.Len())

	got, err := codec.DecodeScalar(&buf, true)
	require.NoError(t, err)
	require.True(t, s.Equal(&got))
}

func TestG1RawRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, codec.EncodeG1Raw(&buf, &curve.G1Gen))

	got, onCurve, err := codec.DecodeG1Raw(&buf)
	require.NoError(t, err)
	require.True(t, onCurve)
	require.True(t, curve.G1Gen.Equal(&got))
}

func TestG2RawRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, codec.EncodeG2Raw(&buf, &curve.G2Gen))

	got, onCurve, err := codec.DecodeG2Raw(&buf)
	require.NoError(t, err)
	require.True(t, onCurve)
	require.True(t, curve.G2Gen.Equal(&got))
}

func TestDecodeG1RawTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, codec.EncodeG1Raw(&buf, &curve.G1Gen))
	truncated := bytes.NewReader(buf.Bytes()[:10])

	_, _, err := codec.DecodeG1Raw(truncated)
	require.Error(t, err)
}

func TestG1CompressedRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, codec.EncodeG1Compressed(&buf, &curve.G1Gen))

	got, err := codec.DecodeG1Compressed(&buf)
	require.NoError(t, err)
	require.True(t, curve.G1Gen.Equal(&got))
}

func TestG2CompressedRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, codec.EncodeG2Compressed(&buf, &curve.G2Gen))

	got, err := codec.DecodeG2Compressed(&buf)
	require.NoError(t, err)
	require.True(t, curve.G2Gen.Equal(&got))
}

func TestDecodeScalarRejectsUnreduced(t *testing.T) {
	// 32 bytes of 0xff is far above the field modulus.
	buf := bytes.NewReader(bytes.Repeat([]byte{0xff}, codec.ScalarSize))
	_, err := codec.DecodeScalar(buf, true)
	require.Error(t, err)
}

func TestDecodeG1RawRejectsUnreducedCoordinate(t *testing.T) {
	// X is 0xff-filled (far above the base field modulus); Y is a valid
	// encoding of the generator's Y. The X read must fail before any
	// on-curve check runs.
	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte{0xff}, codec.ScalarSize))
	yBuf := new(bytes.Buffer)
	require.NoError(t, codec.EncodeG1Raw(yBuf, &curve.G1Gen))
	buf.Write(yBuf.Bytes()[codec.ScalarSize:])

	_, _, err := codec.DecodeG1Raw(&buf)
	require.Error(t, err)
}

func TestDecodeG2RawRejectsUnreducedCoordinate(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte{0xff}, codec.ScalarSize))
	rest := new(bytes.Buffer)
	require.NoError(t, codec.EncodeG2Raw(rest, &curve.G2Gen))
	buf.Write(rest.Bytes()[codec.ScalarSize:])

	_, _, err := codec.DecodeG2Raw(&buf)
	require.Error(t, err)
}
