// Package ceremony holds the constants and error taxonomy shared by every
// component of the trusted-setup ceremony: the curve-independent parameters
// of the contribution format and the sentinel error kinds the CLI
// executables report on.
package ceremony

import "fmt"

const (
	// K fixes the ceremony's SRS size as N = 2^K group elements, for every
	// contribution record belonging to this ceremony.
	K = 28
	// N is the number of G1 points carried by every contribution.
	N = 1 << K
	// Extension is the filename suffix used for contribution files.
	Extension = "csrs"
	// DefaultParamsFilename is the default output name used by finalize.
	DefaultParamsFilename = "final.params"
)

// Kind enumerates the fatal error taxonomy of §7.
type Kind int

const (
	_ Kind = iota
	NoContributions
	DuplicateId
	Malformed
	Truncated
	WrongK
	OffCurve
	InvalidSRS
	InvalidProof
	ChallengeTooSmall
	ChallengeIOError
	EntropyIOError
	WouldOverwrite
)

func (k Kind) String() string {
	switch k {
	case NoContributions:
		return "NoContributions"
	case DuplicateId:
		return "DuplicateId"
	case Malformed:
		return "Malformed"
	case Truncated:
		return "Truncated"
	case WrongK:
		return "WrongK"
	case OffCurve:
		return "OffCurve"
	case InvalidSRS:
		return "InvalidSRS"
	case InvalidProof:
		return "InvalidProof"
	case ChallengeTooSmall:
		return "ChallengeTooSmall"
	case ChallengeIOError:
		return "ChallengeIOError"
	case EntropyIOError:
		return "EntropyIOError"
	case WouldOverwrite:
		return "WouldOverwrite"
	default:
		return "Unknown"
	}
}

// Error is the fatal error type returned by every component. Kind lets
// callers use errors.As to branch on the taxonomy without string matching;
// Err, when present, carries the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Errf builds an *Error of the given kind with a formatted message.
func Errf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}
