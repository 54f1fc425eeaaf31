// Package codec implements the exact byte layout for scalars and curve
// points described in spec §4.1: a "raw" encoding (32 little-endian bytes
// per field element, in internal Montgomery form, used throughout
// contribution files) and a "compressed" encoding (one coordinate plus a
// sign tag, delegated to gnark-crypto's own native point compression).
package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/zircuit-labs/ceremony/internal/curve"
)

// limbs is the shape every gnark-crypto field element has: a fixed-size
// array of uint64 limbs holding the value in Montgomery form. Both
// fr.Element and fp.Element (the base field backing G1/G2 coordinates)
// satisfy this shape, so scalar and point-coordinate raw I/O share one
// implementation.
type limbs = [4]uint64

// ScalarSize is the raw encoding size of a field element (scalar or
// coordinate): 4 uint64 limbs.
const ScalarSize = 32

// WriteRawLimbs writes a field element's Montgomery-form limbs as 32
// little-endian bytes, with no reduction or transformation.
func WriteRawLimbs(w io.Writer, e *limbs) error {
	var buf [ScalarSize]byte
	for i, limb := range e {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], limb)
	}
	_, err := w.Write(buf[:])
	return err
}

// ReadRawLimbs reads 32 little-endian bytes into a field element's limbs.
// If checked is true, the resulting value is rejected when it is not a
// canonical representative below the field's modulus.
func ReadRawLimbs(r io.Reader, modulus *big.Int, checked bool) (limbs, error) {
	var buf [ScalarSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return limbs{}, err
	}
	var e limbs
	for i := range e {
		e[i] = binary.LittleEndian.Uint64(buf[i*8 : i*8+8])
	}
	if checked {
		if !belowModulus(&e, modulus) {
			return limbs{}, fmt.Errorf("field element is not reduced modulo the field modulus")
		}
	}
	return e, nil
}

// belowModulus compares the limb array, read as a little-endian big
// integer, against modulus.
func belowModulus(e *limbs, modulus *big.Int) bool {
	be := make([]byte, ScalarSize)
	for i, limb := range e {
		binary.BigEndian.PutUint64(be[ScalarSize-8*(i+1):ScalarSize-8*i], limb)
	}
	v := new(big.Int).SetBytes(be)
	return v.Cmp(modulus) < 0
}

// EncodeScalar writes a scalar in F_r using the raw encoding.
func EncodeScalar(w io.Writer, s *curve.Scalar) error {
	l := limbs(*s)
	return WriteRawLimbs(w, &l)
}

// DecodeScalar reads a scalar in F_r using the raw encoding.
func DecodeScalar(r io.Reader, checked bool) (curve.Scalar, error) {
	l, err := ReadRawLimbs(r, curve.Modulus(), checked)
	if err != nil {
		return curve.Scalar{}, err
	}
	return curve.Scalar(l), nil
}
