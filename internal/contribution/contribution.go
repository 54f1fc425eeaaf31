// Package contribution implements the in-memory Contribution record of
// spec §3 and its binary I/O of spec §4.2. Grounded on
// _examples/original_source/src/lib/contribution.rs and the teacher's
// setup.go/setup_test.go for Go idiom (package-level constructors, plain
// struct, explicit field accessors).
package contribution

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/zircuit-labs/ceremony"
	"github.com/zircuit-labs/ceremony/internal/codec"
	"github.com/zircuit-labs/ceremony/internal/curve"
	"github.com/zircuit-labs/ceremony/internal/logging"
	"github.com/zircuit-labs/ceremony/internal/proof"
)

// Contribution is one record of the ceremony: an SRS plus the proof that
// binds it to its predecessor and a monotonic id.
type Contribution struct {
	K     uint32
	N     int
	G     []curve.G1
	G2Gen curve.G2
	SG2   curve.G2
	Proof proof.ContributionProof
	Id    uint32
}

// Genesis returns contribution 0: the curve generators repeated N times,
// with the default (unchecked) proof.
func Genesis() Contribution {
	g := make([]curve.G1, ceremony.N)
	for i := range g {
		g[i] = curve.G1Gen
	}
	return Contribution{
		K:     ceremony.K,
		N:     ceremony.N,
		G:     g,
		G2Gen: curve.G2Gen,
		SG2:   curve.G2Gen,
		Proof: proof.Default(),
		Id:    0,
	}
}

// SG returns g[1], the first power of the cumulative secret on G1 — the
// base against which the next contribution's proof is bound.
func (c *Contribution) SG() *curve.G1 {
	return &c.G[1]
}

// Equal is field-by-field structural equality over the full g vector, both
// G2 elements, the proof, and the id.
func (c *Contribution) Equal(o *Contribution) bool {
	if c.K != o.K || c.N != o.N || c.Id != o.Id {
		return false
	}
	if len(c.G) != len(o.G) {
		return false
	}
	for i := range c.G {
		if !c.G[i].Equal(&o.G[i]) {
			return false
		}
	}
	if !c.G2Gen.Equal(&o.G2Gen) || !c.SG2.Equal(&o.SG2) {
		return false
	}
	if !c.Proof.P.Equal(&o.Proof.P) || !c.Proof.R.Equal(&o.Proof.R) {
		return false
	}
	return true
}

// Write encodes the contribution to w in the layout of spec §4.2: k, then
// the N G1 points, then g2_gen, then s_g2, then the proof, then id. No
// padding, framing, or checksum.
func (c *Contribution) Write(w io.Writer) error {
	var kBuf [4]byte
	binary.LittleEndian.PutUint32(kBuf[:], c.K)
	if _, err := w.Write(kBuf[:]); err != nil {
		return err
	}
	for i := range c.G {
		if err := codec.EncodeG1Raw(w, &c.G[i]); err != nil {
			return err
		}
	}
	if err := codec.EncodeG2Raw(w, &c.G2Gen); err != nil {
		return err
	}
	if err := codec.EncodeG2Raw(w, &c.SG2); err != nil {
		return err
	}
	if err := c.Proof.Write(w); err != nil {
		return err
	}
	var idBuf [4]byte
	binary.LittleEndian.PutUint32(idBuf[:], c.Id)
	_, err := w.Write(idBuf[:])
	return err
}

// WriteFile writes the contribution to filepath, creating the file or
// truncating an existing one; it does not itself refuse an existing
// target. Callers check that first (see chain.DefaultPath).
func (c *Contribution) WriteFile(filepath string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := c.Write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	logging.Log.Info().Str("path", filepath).Uint32("id", c.Id).Msg("contribution written")
	return nil
}

// Read decodes a contribution from r per spec §4.2. The first four bytes
// must decode to ceremony.K; a mismatch is a fatal WrongK error. A
// truncated tail is a fatal Truncated error. Every G1/G2 point, including
// the proof's p, must be on-curve or the read fails with OffCurve.
func Read(r io.Reader) (Contribution, error) {
	var kBuf [4]byte
	if _, err := io.ReadFull(r, kBuf[:]); err != nil {
		return Contribution{}, truncatedOrWrap(err)
	}
	k := binary.LittleEndian.Uint32(kBuf[:])
	if k != ceremony.K {
		return Contribution{}, ceremony.Errf(ceremony.WrongK,
			"contribution has k=%d but ceremony requires k=%d", k, ceremony.K)
	}
	return readBody(r, k, ceremony.N)
}

// readBody decodes everything after the k field, given an already-accepted
// k and the number of G1 points to read. Split out from Read, with n taken
// as an explicit parameter rather than derived from k, so tests can
// exercise the wire format at a small n without allocating a
// ceremony-scale (2^28-element) record.
func readBody(r io.Reader, k uint32, n int) (Contribution, error) {
	g := make([]curve.G1, n)
	for i := 0; i < n; i++ {
		pt, onCurve, err := codec.DecodeG1Raw(r)
		if err != nil {
			return Contribution{}, truncatedOrWrap(err)
		}
		if !onCurve {
			return Contribution{}, ceremony.Errf(ceremony.OffCurve, "g[%d] is not on the curve", i)
		}
		g[i] = pt
	}

	g2, onCurve, err := codec.DecodeG2Raw(r)
	if err != nil {
		return Contribution{}, truncatedOrWrap(err)
	}
	if !onCurve {
		return Contribution{}, ceremony.Errf(ceremony.OffCurve, "g2_gen is not on the curve")
	}

	sG2, onCurve, err := codec.DecodeG2Raw(r)
	if err != nil {
		return Contribution{}, truncatedOrWrap(err)
	}
	if !onCurve {
		return Contribution{}, ceremony.Errf(ceremony.OffCurve, "s_g2 is not on the curve")
	}

	pr, onCurve, err := proof.Read(r)
	if err != nil {
		return Contribution{}, truncatedOrWrap(err)
	}
	if !onCurve {
		return Contribution{}, ceremony.Errf(ceremony.OffCurve, "proof.p is not on the curve")
	}

	var idBuf [4]byte
	if _, err := io.ReadFull(r, idBuf[:]); err != nil {
		return Contribution{}, truncatedOrWrap(err)
	}
	id := binary.LittleEndian.Uint32(idBuf[:])

	return Contribution{
		K: k, N: n, G: g, G2Gen: g2, SG2: sG2, Proof: pr, Id: id,
	}, nil
}

// ReadFile opens filepath and decodes a contribution from it.
func ReadFile(filepath string) (Contribution, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return Contribution{}, err
	}
	defer f.Close()
	logging.Log.Info().Str("path", filepath).Msg("reading contribution")
	return Read(bufio.NewReaderSize(f, 1<<20))
}

func truncatedOrWrap(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ceremony.Wrap(ceremony.Truncated, err, "contribution file ended before expected content")
	}
	return ceremony.Wrap(ceremony.Malformed, err, "failed to decode contribution")
}

// ReadId is the fast id-only reader of spec §4.2: it decodes the first 4
// bytes for a sanity k check and seeks to the last 4 bytes of the file for
// the id, without decoding any group element.
func ReadId(filepath string) (uint32, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if info.Size() < 8 {
		return 0, ceremony.Errf(ceremony.Malformed, "contribution file %s is too small (%d bytes)", filepath, info.Size())
	}

	var kBuf [4]byte
	if _, err := io.ReadFull(f, kBuf[:]); err != nil {
		return 0, err
	}
	k := binary.LittleEndian.Uint32(kBuf[:])
	if k != ceremony.K {
		return 0, ceremony.Errf(ceremony.WrongK, "contribution %s has k=%d but ceremony requires k=%d", filepath, k, ceremony.K)
	}

	var idBuf [4]byte
	if _, err := f.ReadAt(idBuf[:], info.Size()-4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(idBuf[:]), nil
}
