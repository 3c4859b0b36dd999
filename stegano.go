// Package stegano hides binary payloads inside an opaque carrier byte
// sequence (the "host") using two independent covert-channel encodings:
// fixed-width bit-plane substitution and variable-width Pixel-Value
// Differencing (PVD).
//
// The host is treated as raw bytes; acquiring it (image decoding, file
// I/O) is the caller's concern, as is knowing the true length of the
// hidden payload: extraction returns a capacity-sized buffer with no
// terminator. The payload subpackage offers an ECC codec for callers that
// want recovery of a known-length secret from that buffer.
package stegano

import (
	"errors"
	"fmt"
)

// ErrConfiguration reports options that make an operation impossible:
// a bit width outside [1,8], a missing strategy, an empty bin table.
// It is detected before any host mutation.
var ErrConfiguration = errors.New("invalid configuration")

// CapacityError reports that the host could not hold the full secret.
// The fixed-width engine detects it up front, before mutating the host;
// the PVD engine detects it only after a full pass, so the host has
// already been partially rewritten and must be discarded by the caller.
type CapacityError struct {
	// Capacity is the total host capacity in bits, when it is knowable
	// up front (bit-plane embedding). Zero for pair-wise schemes whose
	// capacity depends on the host values themselves.
	Capacity int
	// Embedded is the number of secret bits placed before the host ran out.
	Embedded int
	// Required is the total number of secret bits.
	Required int

	pairwise bool
}

func (e *CapacityError) Error() string {
	if e.pairwise {
		return fmt.Sprintf("Not enough capacity to embed the full secret: embedded %d/%d bits", e.Embedded, e.Required)
	}
	return fmt.Sprintf("Not enough space to embed secret: host capacity is %d bits, secret requires %d bits", e.Capacity, e.Required)
}

// BinCoverageError reports a pixel pair whose difference magnitude matches
// no configured bin. It aborts the whole PVD call: the scheme is only
// invertible when every difference that occurs is covered by the table.
type BinCoverageError struct {
	Idx1, Idx2 int
	P1, P2     byte
	// Diff is the absolute difference between the pair values.
	Diff int
}

func (e *BinCoverageError) Error() string {
	return fmt.Sprintf("difference %d at positions idx1=%d (value: %d) and idx2=%d (value: %d) does not fit any bin",
		e.Diff, e.Idx1, e.P1, e.Idx2, e.P2)
}
