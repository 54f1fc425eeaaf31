// Package rescale applies a freshly derived secret to a predecessor
// contribution, producing the next one in the chain. Grounded on
// _examples/original_source/src/lib/contribute.rs's rescale function.
package rescale

import (
	"math/big"

	"github.com/zircuit-labs/ceremony/internal/contribution"
	"github.com/zircuit-labs/ceremony/internal/curve"
	"github.com/zircuit-labs/ceremony/internal/logging"
	"github.com/zircuit-labs/ceremony/internal/proof"
)

// Apply computes contribution id_prev+1 from prev by raising every power of
// the cumulative secret by s:
//
//	g_new[i]  = s^i * g_prev[i]     for i in [0, N)
//	s_g2_new  = s * s_g2_prev
//
// and attaches a proof binding g_new[1] to g_prev[1] via z. g2_gen and the
// record's k/n are carried over unchanged.
func Apply(prev *contribution.Contribution, s, z *curve.Scalar) contribution.Contribution {
	logging.Log.Info().Uint32("from_id", prev.Id).Msg("rescaling srs")

	g := make([]curve.G1, len(prev.G))
	err := curve.ParallelRange(len(prev.G), func(start, end int) error {
		var cur curve.Scalar
		cur.Exp(*s, startExponent(start))
		for i := start; i < end; i++ {
			g[i] = curve.ScalarMulG1(&prev.G[i], &cur)
			cur.Mul(&cur, s)
		}
		// The chunk's running exponent has served its purpose; clear it
		// before the worker returns.
		cur = curve.Scalar{}
		return nil
	})
	if err != nil {
		// ParallelRange's work funcs never return an error here; a panic
		// would indicate a programming mistake, not a runtime condition.
		panic(err)
	}

	sG2 := curve.ScalarMulG2(&prev.SG2, s)

	p := proof.Create(prev.SG(), s, z)

	next := contribution.Contribution{
		K:     prev.K,
		N:     prev.N,
		G:     g,
		G2Gen: prev.G2Gen,
		SG2:   sG2,
		Proof: p,
		Id:    prev.Id + 1,
	}

	logging.Log.Info().Uint32("id", next.Id).Msg("rescaling complete")
	return next
}

func startExponent(start int) *big.Int {
	return big.NewInt(int64(start))
}
