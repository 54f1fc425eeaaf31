// Package finalize lifts a verified tail of the contribution chain into
// downstream KZG parameters, per spec §4.8. Grounded on
// _examples/original_source/src/lib/finalize.rs (read-last, check,
// WouldOverwrite-before-expensive-work ordering) and
// src/lib/contribution.rs's to_params (monomial-to-Lagrange conversion).
//
// This system only produces the bytes of the downstream parameter object;
// the object's own wire encoding is this package's concern exactly because
// no external collaborator was wired into the retrieval pack for it, not
// because the bytes are meaningful to any consumer beyond this ceremony.
package finalize

import (
	"bufio"
	"io"
	"os"

	"github.com/zircuit-labs/ceremony"
	"github.com/zircuit-labs/ceremony/internal/chain"
	"github.com/zircuit-labs/ceremony/internal/codec"
	"github.com/zircuit-labs/ceremony/internal/curve"
	"github.com/zircuit-labs/ceremony/internal/logging"
	"github.com/zircuit-labs/ceremony/internal/srsverify"
)

// Params is the downstream KZG parameter object: the same SRS as a
// Contribution, plus its Lagrange-basis representation.
type Params struct {
	K         uint32
	G         []curve.G1 // monomial basis
	GLagrange []curve.G1 // Lagrange basis over the size-N multiplicative subgroup
	G2Gen     curve.G2
	SG2       curve.G2
}

// Write encodes the parameters: k, then the monomial basis, then the
// Lagrange basis, then g2_gen, then s_g2.
func (p *Params) Write(w io.Writer) error {
	var kBuf [4]byte
	kBuf[0] = byte(p.K)
	kBuf[1] = byte(p.K >> 8)
	kBuf[2] = byte(p.K >> 16)
	kBuf[3] = byte(p.K >> 24)
	if _, err := w.Write(kBuf[:]); err != nil {
		return err
	}
	for i := range p.G {
		if err := codec.EncodeG1Raw(w, &p.G[i]); err != nil {
			return err
		}
	}
	for i := range p.GLagrange {
		if err := codec.EncodeG1Raw(w, &p.GLagrange[i]); err != nil {
			return err
		}
	}
	if err := codec.EncodeG2Raw(w, &p.G2Gen); err != nil {
		return err
	}
	return codec.EncodeG2Raw(w, &p.SG2)
}

// Finalize reads the last contribution in dir, verifies its SRS, computes
// its Lagrange basis, and writes the resulting Params to outPath. outPath
// is checked for WouldOverwrite before the (expensive) Lagrange conversion
// runs, not after.
func Finalize(dir, outPath string) error {
	if _, err := os.Stat(outPath); err == nil {
		return ceremony.Errf(ceremony.WouldOverwrite, "%s already exists", outPath)
	} else if !os.IsNotExist(err) {
		return err
	}

	last, err := chain.Last(dir)
	if err != nil {
		return err
	}

	logging.Log.Info().Uint32("id", last.Id).Msg("verifying final contribution before finalizing")
	if !srsverify.Verify(&last) {
		return ceremony.Errf(ceremony.InvalidSRS, "the latest contribution (id %d) failed SRS verification", last.Id)
	}

	logging.Log.Info().Msg("computing Lagrange basis")
	lagrange := toLagrangeG1(last.G)

	params := Params{
		K:         last.K,
		G:         last.G,
		GLagrange: lagrange,
		G2Gen:     last.G2Gen,
		SG2:       last.SG2,
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := params.Write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	logging.Log.Info().Str("path", outPath).Msg("final parameters written")
	return nil
}
