package finalize

import (
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/zircuit-labs/ceremony/internal/curve"
)

// toLagrangeG1 converts a monomial-basis SRS (g[i] = s^i * g1 for i in
// [0, n)) into its Lagrange basis over the multiplicative subgroup of size
// n: the same iterative Cooley-Tukey inverse NTT gnark-crypto's fft.Domain
// runs over field coefficients, run instead over G1 points, with twiddle
// multiplication replaced by curve scalar multiplication and field
// addition by curve point addition.
func toLagrangeG1(g []curve.G1) []curve.G1 {
	n := len(g)
	domain := fft.NewDomain(uint64(n))

	a := make([]curve.G1, n)
	copy(a, g)
	bitReverse(a)

	for step := 1; step < n; step <<= 1 {
		jump := step << 1

		var wRoot fr.Element
		wRoot.Exp(domain.GeneratorInv, big.NewInt(int64(n/jump)))

		twiddles := make([]fr.Element, step)
		twiddles[0].SetOne()
		for k := 1; k < step; k++ {
			twiddles[k].Mul(&twiddles[k-1], &wRoot)
		}

		numBlocks := n / jump
		err := curve.ParallelRange(numBlocks, func(start, end int) error {
			for block := start; block < end; block++ {
				base := block * jump
				for k := 0; k < step; k++ {
					u := a[base+k]
					v := curve.ScalarMulG1(&a[base+k+step], &twiddles[k])
					sum := curve.AddG1(&u, &v)
					diff := curve.SubG1(&u, &v)
					a[base+k] = sum
					a[base+k+step] = diff
				}
			}
			return nil
		})
		if err != nil {
			panic(err)
		}
	}

	nInv := domain.CardinalityInv
	err := curve.ParallelRange(n, func(start, end int) error {
		for i := start; i < end; i++ {
			a[i] = curve.ScalarMulG1(&a[i], &nInv)
		}
		return nil
	})
	if err != nil {
		panic(err)
	}

	return a
}

func bitReverse(a []curve.G1) {
	n := uint(len(a))
	logN := uint(bits.Len(n) - 1)
	for i := range a {
		j := reverse(uint(i), logN)
		if j > uint(i) {
			a[i], a[j] = a[j], a[i]
		}
	}
}

func reverse(x, logN uint) uint {
	var r uint
	for i := uint(0); i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}
