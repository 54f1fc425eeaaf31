// Package secrets implements deterministic distillation of the ceremony's
// two contribution scalars (s, z) from configured entropy sources, and the
// zeroizing Secret wrapper of spec §3/§4.5/§9. Grounded on
// _examples/original_source/src/lib/secrets.rs, reworked to stream through
// golang.org/x/crypto/blake2b instead of the Blake2b512 crate and to zero
// Go byte slices in place of the `zeroize` crate.
package secrets

import (
	"crypto/rand"
	"io"
	"os"

	"github.com/zircuit-labs/ceremony"
	"github.com/zircuit-labs/ceremony/internal/curve"
	"github.com/zircuit-labs/ceremony/internal/logging"
	"golang.org/x/crypto/blake2b"
)

const chunkSize = 16 * 1024 * 1024 // 16 MiB

// DefaultRandomBytesSize is the default amount of OS CSPRNG entropy fed
// into the accumulator when Config doesn't override it: 1 GiB.
const DefaultRandomBytesSize = uint64(1) << 30

// DefaultHashIterations is the default key-stretching iteration count: 2^20.
const DefaultHashIterations = uint32(1) << 20

// Config enumerates the entropy inputs for one derivation. A nil pointer
// field means that source is skipped entirely (mirrors the original's
// Option<T> fields); DefaultConfig fills in the standard production
// values.
type Config struct {
	FilesToHash     []string
	FromStdin       bool
	RandomBytesSize *uint64
	HashIterations  *uint32
	RevealS         bool
}

// DefaultConfig is the configuration used when a contributor supplies no
// explicit entropy flags: 1 GiB of OS randomness, 2^20 hash iterations, no
// files, no stdin, no public reveal.
func DefaultConfig() Config {
	rb := DefaultRandomBytesSize
	hi := DefaultHashIterations
	return Config{RandomBytesSize: &rb, HashIterations: &hi}
}

// Secret is an opaque wrapper around a scalar in F_r that zeroes its
// storage on Clear and is never serialized. It is always held behind a
// pointer; callers must not copy it by value.
type Secret struct {
	value   curve.Scalar
	cleared bool
}

// Get returns the wrapped scalar. The returned pointer aliases the
// Secret's storage; it becomes invalid after Clear.
func (s *Secret) Get() *curve.Scalar {
	return &s.value
}

// Clear overwrites the wrapped scalar with zero. Idempotent.
func (s *Secret) Clear() {
	s.value = curve.Scalar{}
	s.cleared = true
}

// Derive absorbs the configured entropy sources into a Blake2b-512
// accumulator, optionally iterates the digest hash_iterations times as a
// time-lock, then extracts two domain-separated scalars:
//
//	s = H_FS(Phi || "s")
//	z = H_FS(Phi || "z")   (or z = 0 if cfg.RevealS)
//
// Every intermediate buffer is zeroed after use.
func Derive(cfg Config) (s *Secret, z *Secret, err error) {
	logging.Log.Info().Msg("generating secrets")

	h, err := blake2b.New512(nil)
	if err != nil {
		return nil, nil, err
	}

	if err := absorbFiles(h, cfg.FilesToHash); err != nil {
		return nil, nil, ceremony.Wrap(ceremony.EntropyIOError, err, "failed to hash entropy file")
	}

	if cfg.FromStdin {
		if err := absorbStdin(h); err != nil {
			return nil, nil, ceremony.Wrap(ceremony.EntropyIOError, err, "failed to read stdin")
		}
	}

	if cfg.RandomBytesSize != nil {
		if err := absorbRandom(h, *cfg.RandomBytesSize); err != nil {
			return nil, nil, ceremony.Wrap(ceremony.EntropyIOError, err, "failed to read OS randomness")
		}
	}

	phi := h.Sum(nil)

	if cfg.HashIterations != nil {
		logging.Log.Info().Uint32("iterations", *cfg.HashIterations).Msg("stretching accumulator state")
		for i := uint32(0); i < *cfg.HashIterations; i++ {
			phi = nextDigest(phi)
		}
	}
	defer zero(phi)

	logging.Log.Info().Msg("extracting secrets")

	sVal := curve.HashToScalar(phi, []byte("s"))
	s = &Secret{value: sVal}

	if cfg.RevealS {
		logging.Log.Debug().Msg("z is set to zero to enable public recomputation of the rescaling factor s")
		z = &Secret{value: curve.Scalar{}}
	} else {
		zVal := curve.HashToScalar(phi, []byte("z"))
		z = &Secret{value: zVal}
	}

	return s, z, nil
}

func nextDigest(prev []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(prev)
	defer zero(prev)
	return h.Sum(nil)
}

func absorbFiles(h io.Writer, paths []string) error {
	buf := make([]byte, chunkSize)
	defer zero(buf)

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			logging.Log.Info().Str("path", path).Msg("skipping entropy source: not a regular file")
			continue
		}

		logging.Log.Info().Str("path", path).Msg("hashing entropy file")
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = func() error {
			defer f.Close()
			for {
				n, err := f.Read(buf)
				if n > 0 {
					h.Write(buf[:n])
				}
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
			}
		}()
		if err != nil {
			return err
		}
	}
	return nil
}

func absorbStdin(h io.Writer) error {
	logging.Log.Info().Msg("enter any input text, then press Ctrl+D (Unix) or Ctrl+Z (Windows) to continue")
	buf, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	defer zero(buf)
	h.Write(buf)
	return nil
}

func absorbRandom(h io.Writer, size uint64) error {
	logging.Log.Info().Uint64("bytes", size).Msg("generating and hashing OS randomness")
	buf := make([]byte, chunkSize)
	defer zero(buf)

	for remaining := size; remaining > 0; {
		n := uint64(chunkSize)
		if remaining < n {
			n = remaining
		}
		if _, err := io.ReadFull(rand.Reader, buf[:n]); err != nil {
			return err
		}
		h.Write(buf[:n])
		remaining -= n
	}
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
