// Package curve binds the ceremony's abstract PairingCurve capability
// (§9 of the design notes: F_r, G1, G2, fixed generators, bilinear pairing,
// MSM, on-curve check) to a concrete curve, BN254, via gnark-crypto. Every
// other package reaches the curve only through this adapter so that a
// future binding to a different pairing-friendly curve touches one place.
package curve

import (
	"math/big"
	"runtime"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

// G1 and G2 are the curve's two affine point types; Scalar is its scalar
// field element type.
type (
	G1     = bn254.G1Affine
	G2     = bn254.G2Affine
	Scalar = fr.Element
)

// G1Gen and G2Gen are the ceremony's fixed public generators.
var (
	G1Gen G1
	G2Gen G2
)

func init() {
	_, _, G1Gen, G2Gen = bn254.Generators()
}

// Modulus returns F_r's modulus, used by the codec to reject scalars that
// are not reduced.
func Modulus() *big.Int {
	return fr.Modulus()
}

// ScalarMulG1 computes s*p.
func ScalarMulG1(p *G1, s *Scalar) G1 {
	var jac bn254.G1Jac
	jac.FromAffine(p)
	jac.ScalarMultiplication(&jac, scalarBigInt(s))
	var out G1
	out.FromJacobian(&jac)
	return out
}

// ScalarMulG2 computes s*p.
func ScalarMulG2(p *G2, s *Scalar) G2 {
	var jac bn254.G2Jac
	jac.FromAffine(p)
	jac.ScalarMultiplication(&jac, scalarBigInt(s))
	var out G2
	out.FromJacobian(&jac)
	return out
}

// AddG1 computes a+b.
func AddG1(a, b *G1) G1 {
	var aJac bn254.G1Jac
	aJac.FromAffine(a)
	var bJac bn254.G1Jac
	bJac.FromAffine(b)
	aJac.AddAssign(&bJac)
	var out G1
	out.FromJacobian(&aJac)
	return out
}

// SubG1 computes a-b.
func SubG1(a, b *G1) G1 {
	var aJac bn254.G1Jac
	aJac.FromAffine(a)
	var bJac bn254.G1Jac
	bJac.FromAffine(b)
	bJac.Neg(&bJac)
	aJac.AddAssign(&bJac)
	var out G1
	out.FromJacobian(&aJac)
	return out
}

// NegG1 returns -p.
func NegG1(p *G1) G1 {
	var jac bn254.G1Jac
	jac.FromAffine(p)
	jac.Neg(&jac)
	var out G1
	out.FromJacobian(&jac)
	return out
}

// NegG2 returns -p.
func NegG2(p *G2) G2 {
	var jac bn254.G2Jac
	jac.FromAffine(p)
	jac.Neg(&jac)
	var out G2
	out.FromJacobian(&jac)
	return out
}

// NegOne returns the scalar -1 mod r, used by the order check of spec §4.4
// check #3: a full-bitwidth scalar multiplication by -1 defeats small
// subgroup injection in a way that a multiplication by a short scalar
// would not.
func NegOne() Scalar {
	var one, negOne Scalar
	one.SetOne()
	negOne.Neg(&one)
	return negOne
}

func scalarBigInt(s *Scalar) *big.Int {
	var b big.Int
	s.BigInt(&b)
	return &b
}

// MSM computes the multi-scalar multiplication sum(scalars[i] * points[i]),
// parallelized internally by gnark-crypto's Pippenger implementation.
func MSM(points []G1, scalars []Scalar) (G1, error) {
	var res G1
	_, err := res.MultiExp(points, scalars, ecc.MultiExpConfig{NbTasks: runtime.NumCPU()})
	return res, err
}

// Pair computes e(p, q).
func Pair(p *G1, q *G2) (bn254.GT, error) {
	return bn254.Pair([]G1{*p}, []G2{*q})
}

// HashToScalar is H_FS: it feeds every part into a Blake2b-512 digest and
// reduces the 64-byte output into F_r by interpreting it as a big-endian
// integer mod r. 64 bytes sampled against a ~254-bit modulus gives a
// statistically uniform reduction.
func HashToScalar(parts ...[]byte) Scalar {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err) // blake2b.New512 only fails for an invalid key, which we never pass
	}
	for _, p := range parts {
		h.Write(p)
	}
	digest := h.Sum(nil)

	i := new(big.Int).SetBytes(digest)
	i.Mod(i, Modulus())

	var s Scalar
	s.SetBigInt(i)
	return s
}

// ParallelRange splits [0, n) into contiguous chunks and runs work on each
// chunk concurrently, joining before returning. Each worker computes its own
// chunk independently; there is no synchronization other than the join.
func ParallelRange(n int, work func(start, end int) error) error {
	if n == 0 {
		return nil
	}
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		start := start
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			return work(start, end)
		})
	}
	return g.Wait()
}
