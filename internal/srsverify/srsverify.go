// Package srsverify implements the six structural and algebraic checks of
// spec §4.4 that together establish an SRS is well-formed. Grounded on
// _examples/original_source/src/lib/check.rs's check_srs, reworked against
// gnark-crypto's MSM and pairing instead of halo2curves'.
package srsverify

import (
	"math/big"

	"github.com/zircuit-labs/ceremony"
	"github.com/zircuit-labs/ceremony/internal/contribution"
	"github.com/zircuit-labs/ceremony/internal/curve"
	"github.com/zircuit-labs/ceremony/internal/logging"
)

// Verify runs all six §4.4 checks against a contribution's embedded SRS
// and reports their conjunction. Every failing check is logged before
// Verify returns, so an operator sees every broken invariant, not just the
// first.
func Verify(c *contribution.Contribution) bool {
	log := logging.Log.With().Uint32("id", c.Id).Logger()
	ok := true

	if c.K != ceremony.K || c.N != ceremony.N {
		log.Error().Msg("SRS check #1 failed: k or n does not match the ceremony constants")
		ok = false
	}

	if !c.G[0].Equal(&curve.G1Gen) || !c.G2Gen.Equal(&curve.G2Gen) {
		log.Error().Msg("SRS check #2 failed: g[0] or g2_gen is not the hardcoded generator")
		ok = false
	}

	if !hasOrderR(&c.G2Gen) || !hasOrderR(&c.SG2) {
		log.Error().Msg("SRS check #3 failed: g2_gen or s_g2 does not have order r")
		ok = false
	}

	if len(c.G) != ceremony.N {
		log.Error().Msg("SRS check #4 failed: g does not have the expected length")
		ok = false
	}

	if len(c.G) > 1 && isIdentity(&c.G[1]) {
		log.Error().Msg("SRS check #5 failed: g[1] is the identity, srs is degenerate")
		ok = false
	}

	if wf, err := wellFormed(c.G, &c.G2Gen, &c.SG2); err != nil || !wf {
		if err != nil {
			log.Error().Err(err).Msg("SRS check #6 failed: pairing computation error")
		} else {
			log.Error().Msg("SRS check #6 failed: srs is not well-formed")
		}
		ok = false
	}

	return ok
}

// hasOrderR checks a G2 point has order r via a full-bitwidth scalar
// multiplication by -1: [r]X = O iff [r-1]X = -X.
func hasOrderR(p *curve.G2) bool {
	neg := curve.NegG2(p)
	scaled := curve.ScalarMulG2(p, negOne())
	return scaled.Equal(&neg)
}

func negOne() *curve.Scalar {
	s := curve.NegOne()
	return &s
}

func isIdentity(p *curve.G1) bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// wellFormed is SRS check #6, the algebraic linchpin. It samples
// rho = H_FS(g[0]..g[N-1], g2_gen, s_g2), forms the powers-of-rho vector,
// computes M = sum(rho^i * g[i]) via MSM, and verifies
//
//	e((M - g1) * rho^-1, g2) == e(M - rho^{N-1}*g[N-1], s_g2)
func wellFormed(g []curve.G1, g2Gen, sG2 *curve.G2) (bool, error) {
	rho := sampleRho(g, g2Gen, sG2)

	rhoPowers, err := powersOfRho(rho, len(g))
	if err != nil {
		return false, err
	}

	m, err := curve.MSM(g, rhoPowers)
	if err != nil {
		return false, err
	}

	var rhoInv curve.Scalar
	rhoInv.Inverse(&rho)

	mMinusG1 := curve.SubG1(&m, &curve.G1Gen)
	left := curve.ScalarMulG1(&mMinusG1, &rhoInv)

	lastTerm := curve.ScalarMulG1(&g[len(g)-1], &rhoPowers[len(rhoPowers)-1])
	right := curve.SubG1(&m, &lastTerm)

	gtLeft, err := curve.Pair(&left, &curve.G2Gen)
	if err != nil {
		return false, err
	}
	gtRight, err := curve.Pair(&right, sG2)
	if err != nil {
		return false, err
	}

	return gtLeft.Equal(&gtRight), nil
}

func sampleRho(g []curve.G1, g2Gen, sG2 *curve.G2) curve.Scalar {
	parts := make([][]byte, 0, len(g)+2)
	for i := range g {
		b := g[i].Bytes()
		parts = append(parts, b[:])
	}
	g2B := g2Gen.Bytes()
	sG2B := sG2.Bytes()
	parts = append(parts, g2B[:], sG2B[:])
	return curve.HashToScalar(parts...)
}

// powersOfRho computes (1, rho, rho^2, .., rho^{n-1}) in parallel: each
// worker fast-exponentiates to its chunk's starting power, then advances
// by repeated multiplication within the chunk.
func powersOfRho(rho curve.Scalar, n int) ([]curve.Scalar, error) {
	powers := make([]curve.Scalar, n)
	err := curve.ParallelRange(n, func(start, end int) error {
		var cur curve.Scalar
		cur.Exp(rho, startExponent(start))
		for i := start; i < end; i++ {
			powers[i] = cur
			cur.Mul(&cur, &rho)
		}
		return nil
	})
	return powers, err
}

func startExponent(start int) *big.Int {
	return big.NewInt(int64(start))
}
