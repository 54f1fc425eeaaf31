// Package ppot imports an externally-generated Powers-of-Tau challenge file
// as contribution 0, seeding a ceremony from an existing trusted setup
// instead of from scratch. Grounded on
// _examples/original_source/src/lib/ppot.rs, with the response-file layout
// cross-checked against the teacher's
// setup/DuskBLS12_381/audit.go (64-byte hash header, TauG1 block, then the
// G2 generator and its tau multiple).
package ppot

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"golang.org/x/crypto/blake2b"

	"github.com/zircuit-labs/ceremony"
	"github.com/zircuit-labs/ceremony/internal/contribution"
	"github.com/zircuit-labs/ceremony/internal/curve"
	"github.com/zircuit-labs/ceremony/internal/logging"
	"github.com/zircuit-labs/ceremony/internal/proof"
)

const hashHeaderSize = 64

// auditChunkSize is the buffer size used when hashing the whole challenge
// file for the audit log; large enough to make the syscall overhead
// negligible without holding the full file in memory.
const auditChunkSize = 1 << 30

// ReadChallenge reads a PPoT/response-format challenge file and converts it
// to contribution 0 of a new ceremony directory. challengeK is the
// power-of-tau exponent the challenge file was generated with; it must be
// at least ceremony.K, since a ceremony cannot start from a setup smaller
// than it needs. If hashChallenge is set, the whole file is hashed and the
// digest logged before any parsing, so an operator can cross-check it
// against a published audit hash.
func ReadChallenge(path string, challengeK uint32, hashChallenge bool) (contribution.Contribution, error) {
	if ceremony.K > challengeK {
		return contribution.Contribution{}, ceremony.Errf(ceremony.ChallengeTooSmall,
			"ceremony k is %d but challenge was generated with k=%d", ceremony.K, challengeK)
	}
	return readChallengeN(path, challengeK, ceremony.N, hashChallenge)
}

// readChallengeN is ReadChallenge's implementation, parameterized over how
// many TauG1 elements to read. Production code always passes ceremony.N;
// tests pass a small n to exercise the parsing and seek-offset logic
// without a ceremony-scale (2^28-element) fixture.
func readChallengeN(path string, challengeK uint32, n int, hashChallenge bool) (contribution.Contribution, error) {
	f, err := os.Open(path)
	if err != nil {
		return contribution.Contribution{}, ceremony.Wrap(ceremony.ChallengeIOError, err, "failed to open challenge file")
	}
	defer f.Close()

	if hashChallenge {
		if err := logAuditHash(f); err != nil {
			return contribution.Contribution{}, ceremony.Wrap(ceremony.ChallengeIOError, err, "failed to hash challenge file")
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return contribution.Contribution{}, err
		}
	}

	r := bufio.NewReaderSize(f, 1<<20)

	var header [hashHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return contribution.Contribution{}, ceremony.Wrap(ceremony.ChallengeIOError, err, "failed to read challenge hash header")
	}
	logging.Log.Info().Str("reported_hash", fmt.Sprintf("%x", header)).Msg("challenge file reports this response hash")

	g := make([]curve.G1, n)
	for i := range g {
		pt, err := readG1(r)
		if err != nil {
			return contribution.Contribution{}, ceremony.Wrap(ceremony.ChallengeIOError, err, "failed to read TauG1 element")
		}
		if !pt.IsOnCurve() {
			return contribution.Contribution{}, ceremony.Errf(ceremony.OffCurve, "TauG1[%d] is not on the curve", i)
		}
		g[i] = pt
	}
	logging.Log.Info().Int("count", len(g)).Msg("read TauG1 elements from challenge")

	// The challenge's TauG1 block holds 2^(challengeK+1)-1 elements; we
	// only read the N=2^K we need above, then seek past the remainder of
	// the block to reach TauG2.
	challengeTauG1Len := uint64(1)<<(challengeK+1) - 1
	tauG2Start := int64(hashHeaderSize) + int64(64*challengeTauG1Len)

	if _, err := f.Seek(tauG2Start, io.SeekStart); err != nil {
		return contribution.Contribution{}, ceremony.Wrap(ceremony.ChallengeIOError, err, "failed to seek to TauG2")
	}
	r = bufio.NewReaderSize(f, 1<<16)

	g2, err := readG2(r)
	if err != nil {
		return contribution.Contribution{}, ceremony.Wrap(ceremony.ChallengeIOError, err, "failed to read G2 generator")
	}
	if !g2.IsOnCurve() {
		return contribution.Contribution{}, ceremony.Errf(ceremony.OffCurve, "g2 generator is not on the curve")
	}

	sG2, err := readG2(r)
	if err != nil {
		return contribution.Contribution{}, ceremony.Wrap(ceremony.ChallengeIOError, err, "failed to read tau*G2")
	}
	if !sG2.IsOnCurve() {
		return contribution.Contribution{}, ceremony.Errf(ceremony.OffCurve, "tau*g2 is not on the curve")
	}

	logging.Log.Info().Msg("read 2 elements from TauG2")

	return contribution.Contribution{
		K:     ceremony.K,
		N:     n,
		G:     g,
		G2Gen: g2,
		SG2:   sG2,
		Proof: proof.Default(),
		Id:    0,
	}, nil
}

func logAuditHash(f *os.File) error {
	h, err := blake2b.New512(nil)
	if err != nil {
		return err
	}
	buf := make([]byte, auditChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	logging.Log.Info().Str("computed_hash", fmt.Sprintf("%x", h.Sum(nil))).Msg("hashed challenge file")
	return nil
}

// readFq reads one 32-byte big-endian field element, the canonical encoding
// used throughout the PPoT response format (distinct from this ceremony's
// own little-endian Montgomery-limb raw encoding in internal/codec).
func readFq(r io.Reader) (fp.Element, error) {
	var buf [32]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fp.Element{}, err
	}
	var e fp.Element
	e.SetBytes(buf[:])
	return e, nil
}

func readG1(r io.Reader) (curve.G1, error) {
	var p curve.G1
	x, err := readFq(r)
	if err != nil {
		return p, err
	}
	y, err := readFq(r)
	if err != nil {
		return p, err
	}
	p.X, p.Y = x, y
	return p, nil
}

func readG2(r io.Reader) (curve.G2, error) {
	var p curve.G2
	xc1, err := readFq(r)
	if err != nil {
		return p, err
	}
	xc0, err := readFq(r)
	if err != nil {
		return p, err
	}
	yc1, err := readFq(r)
	if err != nil {
		return p, err
	}
	yc0, err := readFq(r)
	if err != nil {
		return p, err
	}
	p.X.A0, p.X.A1 = xc0, xc1
	p.Y.A0, p.Y.A1 = yc0, yc1
	return p, nil
}
