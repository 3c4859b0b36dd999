package stegano

import (
	"fmt"

	"github.com/yyyoichi/stegano/internal/bitcursor"
)

// Bitplane embeds and extracts a fixed number of secret bits per host byte
// through a swappable per-byte Strategy. It operates over the whole host in
// order; it is not driven by an EmbeddingLocator.
type Bitplane struct {
	width   int
	embed   Strategy
	extract Strategy
}

// NewBitplane returns a bit-plane engine. The default operates on one bit
// per host byte with the LSB strategy in both directions.
func NewBitplane(opts ...BitplaneOption) *Bitplane {
	b := &Bitplane{width: 1, embed: LSB, extract: LSB}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BitplaneEmbed embeds the secret into the host in place.
// This is a convenience function that creates a Bitplane instance and calls
// its Embed method.
func BitplaneEmbed(host, secret []byte, opts ...BitplaneOption) error {
	return NewBitplane(opts...).Embed(host, secret)
}

// BitplaneExtract recovers the capacity-sized payload hidden in the host.
// This is a convenience function that creates a Bitplane instance and calls
// its Extract method.
func BitplaneExtract(host []byte, opts ...BitplaneOption) ([]byte, error) {
	return NewBitplane(opts...).Extract(host)
}

// Embed walks the host in order and replaces width bits of each byte with
// the next width bits of the secret stream (MSB-first across byte
// boundaries) until the whole secret has been placed. The final group is
// zero-padded on its low side when the secret ends mid-group. The host is
// mutated in place.
//
// Returns ErrConfiguration for an invalid width or a missing embed
// strategy, and *CapacityError when len(host)*width < len(secret)*8, both
// before any mutation.
func (b *Bitplane) Embed(host, secret []byte) error {
	if err := b.validWidth(); err != nil {
		return err
	}
	if b.embed == nil {
		return fmt.Errorf("%w: no embed strategy configured", ErrConfiguration)
	}
	capacity := len(host) * b.width
	required := len(secret) * 8
	if capacity < required {
		return &CapacityError{Capacity: capacity, Required: required}
	}
	cur := bitcursor.NewReader(secret)
	for i := range host {
		if cur.Remaining() == 0 {
			break
		}
		bits, n := cur.Peek(b.width)
		// A partial final group keeps its bits in the high positions.
		bits <<= uint(b.width - n)
		host[i] = b.embed.Embed(host[i], bits, b.width)
		cur.Advance(b.width)
	}
	return nil
}

// Extract reads width bits from every host byte and packs them MSB-first.
// It has no notion of message length: the result always holds
// ceil(len(host)*width/8) bytes, with the low-order bits of a trailing
// partial byte zero-padded, and the caller truncates to the true secret
// length.
func (b *Bitplane) Extract(host []byte) ([]byte, error) {
	if err := b.validWidth(); err != nil {
		return nil, err
	}
	if b.extract == nil {
		return nil, fmt.Errorf("%w: no extract strategy configured", ErrConfiguration)
	}
	w := bitcursor.NewWriter()
	for _, hb := range host {
		w.WriteBits(b.extract.Extract(hb, b.width), b.width)
	}
	return w.Bytes(), nil
}

func (b *Bitplane) validWidth() error {
	if b.width < 1 || b.width > 8 {
		return fmt.Errorf("%w: bits to operate must be between 1 and 8, got %d", ErrConfiguration, b.width)
	}
	return nil
}
