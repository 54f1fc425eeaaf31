package codec

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/zircuit-labs/ceremony/internal/curve"
)

// EncodeG1Raw writes a G1 point as two raw field elements (X, then Y), with
// no compression, coordinates in internal Montgomery form.
func EncodeG1Raw(w io.Writer, p *curve.G1) error {
	if err := writeFpRaw(w, &p.X); err != nil {
		return err
	}
	return writeFpRaw(w, &p.Y)
}

// DecodeG1Raw reads a raw-encoded G1 point and verifies it lies on the
// curve. An off-curve point is reported via the returned bool, false.
func DecodeG1Raw(r io.Reader) (curve.G1, bool, error) {
	var p curve.G1
	x, err := readFpRaw(r)
	if err != nil {
		return curve.G1{}, false, err
	}
	y, err := readFpRaw(r)
	if err != nil {
		return curve.G1{}, false, err
	}
	p.X, p.Y = x, y
	return p, p.IsOnCurve(), nil
}

// EncodeG2Raw writes a G2 point as four raw field elements: X.A0, X.A1,
// Y.A0, Y.A1, coordinates in internal Montgomery form.
func EncodeG2Raw(w io.Writer, p *curve.G2) error {
	for _, el := range []*fp.Element{&p.X.A0, &p.X.A1, &p.Y.A0, &p.Y.A1} {
		if err := writeFpRaw(w, el); err != nil {
			return err
		}
	}
	return nil
}

// DecodeG2Raw reads a raw-encoded G2 point and verifies it lies on the
// curve.
func DecodeG2Raw(r io.Reader) (curve.G2, bool, error) {
	var p curve.G2
	for _, el := range []*fp.Element{&p.X.A0, &p.X.A1, &p.Y.A0, &p.Y.A1} {
		v, err := readFpRaw(r)
		if err != nil {
			return curve.G2{}, false, err
		}
		*el = v
	}
	return p, p.IsOnCurve(), nil
}

func writeFpRaw(w io.Writer, e *fp.Element) error {
	l := limbs(*e)
	return WriteRawLimbs(w, &l)
}

func readFpRaw(r io.Reader) (fp.Element, error) {
	l, err := ReadRawLimbs(r, fp.Modulus(), true)
	if err != nil {
		return fp.Element{}, err
	}
	return fp.Element(l), nil
}

// EncodeG1Compressed writes a G1 point using gnark-crypto's native
// compressed point encoding (one coordinate plus a sign tag).
func EncodeG1Compressed(w io.Writer, p *curve.G1) error {
	b := p.Bytes()
	_, err := w.Write(b[:])
	return err
}

// DecodeG1Compressed reads a compressed G1 point, reconstructing the
// missing coordinate and validating it lies on the curve.
func DecodeG1Compressed(r io.Reader) (curve.G1, error) {
	var buf [32]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return curve.G1{}, err
	}
	var p curve.G1
	if _, err := p.SetBytes(buf[:]); err != nil {
		return curve.G1{}, err
	}
	return p, nil
}

// EncodeG2Compressed writes a G2 point using gnark-crypto's native
// compressed point encoding.
func EncodeG2Compressed(w io.Writer, p *curve.G2) error {
	b := p.Bytes()
	_, err := w.Write(b[:])
	return err
}

// DecodeG2Compressed reads a compressed G2 point, reconstructing the
// missing coordinate and validating it lies on the curve.
func DecodeG2Compressed(r io.Reader) (curve.G2, error) {
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return curve.G2{}, err
	}
	var p curve.G2
	if _, err := p.SetBytes(buf[:]); err != nil {
		return curve.G2{}, err
	}
	return p, nil
}
