// Package proof implements the non-interactive Schnorr-style
// knowledge-of-exponent proof described in spec §4.3, binding each
// contribution to its predecessor. Grounded on
// _examples/original_source/src/lib/proof.rs, reworked against
// gnark-crypto instead of halo2curves.
package proof

import (
	"io"

	"github.com/zircuit-labs/ceremony/internal/codec"
	"github.com/zircuit-labs/ceremony/internal/curve"
	"github.com/zircuit-labs/ceremony/internal/logging"
)

// ContributionProof is the pair (p, r) of spec §3: a commitment point in G1
// and a response scalar in F_r.
type ContributionProof struct {
	P curve.G1
	R curve.Scalar
}

// Default returns the identity proof used by contribution id 0, which is
// never checked.
func Default() ContributionProof {
	var p ContributionProof
	p.P.X.SetZero()
	p.P.Y.SetZero()
	return p
}

// Create produces a proof that the caller knows the secret s newly applied
// on top of prevSG = s_prev * g1, blinded by z.
//
//	p = z*prevSG
//	h = H_FS(s*prevSG || prevSG || p)
//	r = z + h*s
func Create(prevSG *curve.G1, s, z *curve.Scalar) ContributionProof {
	sG := curve.ScalarMulG1(prevSG, s)
	p := curve.ScalarMulG1(prevSG, z)

	h := hashChallenge(&sG, prevSG, &p)

	var hs, r curve.Scalar
	hs.Mul(&h, s)
	r.Add(z, &hs)

	return ContributionProof{P: p, R: r}
}

// Verify checks a contribution proof against its predecessor's s_g and the
// new record's s_g. When the proof is accepted and was produced with a
// zero blinding factor (the "public randomness" mode of spec §4.5), the
// rescaling factor s is publicly recoverable; Verify logs it and also
// returns it as recovered, nil otherwise.
func Verify(prevSG, newSG *curve.G1, p *ContributionProof) (ok bool, recovered *curve.Scalar) {
	if prevSG.Equal(newSG) {
		logging.Log.Error().Msg("contribution proof predecessor and successor s_g are equal; no scalar was applied")
		return false, nil
	}

	h := hashChallenge(newSG, prevSG, &p.P)

	lhs := curve.ScalarMulG1(prevSG, &p.R)
	hNewSG := curve.ScalarMulG1(newSG, &h)
	rhs := curve.AddG1(&p.P, &hNewSG)

	ok = lhs.Equal(&rhs)

	if ok && isIdentity(&p.P) {
		var hInv, s curve.Scalar
		hInv.Inverse(&h)
		s.Mul(&hInv, &p.R)
		logging.Log.Info().Str("s", s.String()).Msg("contribution used a public randomness source; rescaling factor recovered")
		recovered = &s
	}

	return ok, recovered
}

func hashChallenge(a, b *curve.G1, c *curve.G1) curve.Scalar {
	ab := a.Bytes()
	bb := b.Bytes()
	cb := c.Bytes()
	return curve.HashToScalar(ab[:], bb[:], cb[:])
}

func isIdentity(p *curve.G1) bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// Write serializes the proof as raw G1 point then raw scalar, per spec §4.2.
func (p *ContributionProof) Write(w io.Writer) error {
	if err := codec.EncodeG1Raw(w, &p.P); err != nil {
		return err
	}
	return codec.EncodeScalar(w, &p.R)
}

// Read deserializes a proof, verifying p's on-curve membership.
func Read(r io.Reader) (ContributionProof, bool, error) {
	g, onCurve, err := codec.DecodeG1Raw(r)
	if err != nil {
		return ContributionProof{}, false, err
	}
	s, err := codec.DecodeScalar(r, true)
	if err != nil {
		return ContributionProof{}, false, err
	}
	return ContributionProof{P: g, R: s}, onCurve, nil
}
