// Package payload armors a secret with an error correction code before it
// is handed to an embedding engine, and recovers it from the
// capacity-sized buffer an extraction returns. The engines themselves
// never see lengths or ECC; this codec is a separate caller-side layer.
package payload

import (
	"errors"
	"math/rand"

	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/golay"
)

var (
	DefaultShuffleSeed int64 = 1234567890

	// ErrShortPayload reports extracted data too short to hold the encoded
	// secret, typically because embed and extract used different options
	// or index sequences.
	ErrShortPayload = errors.New("extracted data shorter than encoded payload")
)

// Option selects the coding behavior.
type Option func(*Codec)

// Codec expands secrets before embedding and recovers them after
// extraction. The default coding is Golay(23,12) with a seed-keyed bit
// interleave, so a localized disturbance of the host scatters across many
// code words instead of overwhelming one.
type Codec struct {
	plain bool
	seed  int64
}

// WithoutECC disables error correction; the secret passes through as-is.
func WithoutECC() Option {
	return func(c *Codec) {
		c.plain = true
	}
}

// WithGolay selects Golay coding. seed drives the deterministic interleave
// of the encoded bits; encode and decode must agree on it.
func WithGolay(seed int64) Option {
	return func(c *Codec) {
		c.plain = false
		c.seed = seed
	}
}

// New returns a codec, by default Golay-coded with DefaultShuffleSeed.
func New(opts ...Option) *Codec {
	c := &Codec{seed: DefaultShuffleSeed}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EncodedLen returns the number of bytes Encode produces for n secret
// bytes; callers size their host capacity against it.
func (c *Codec) EncodedLen(n int) int {
	if c.plain {
		return n
	}
	return (golay.EncodedBits(n*8) + 7) / 8
}

// Encode returns the protected form of the secret, ready for embedding.
func (c *Codec) Encode(secret []byte) []byte {
	if c.plain {
		return append([]byte(nil), secret...)
	}
	if len(secret) == 0 {
		return nil
	}
	var words []uint64
	enc := golay.NewEncoder(&words)
	_ = enc.Encode(packWords(secret), len(secret)*8)
	coded := unpackBits(words, enc.Bits())

	out := make([]byte, (len(coded)+7)/8)
	for i, src := range c.interleave(len(coded)) {
		if coded[src] {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	return out
}

// Decode recovers n secret bytes from extracted data. The data may be
// capacity-sized and longer than the encoded payload; excess bits are
// ignored.
func (c *Codec) Decode(extracted []byte, n int) ([]byte, error) {
	if c.plain {
		if len(extracted) < n {
			return nil, ErrShortPayload
		}
		return append([]byte(nil), extracted[:n]...), nil
	}
	need := golay.EncodedBits(n * 8)
	if len(extracted)*8 < need {
		return nil, ErrShortPayload
	}
	// Extracted position i holds coded bit interleave[i]; writing it back
	// at that offset restores the code word order.
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i, src := range c.interleave(need) {
		w.WriteBitAt(src, bitAt(extracted, i))
	}
	var words []uint64
	dec := golay.NewDecoder(w.Data(), w.Bits())
	_ = dec.Decode(&words)

	out := make([]byte, n)
	for i, bit := range unpackBits(words, n*8) {
		if bit {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	return out, nil
}

// interleave returns the bit order for length coded bits: output position
// i carries input bit interleave[i]. The order depends only on the seed
// and the length.
func (c *Codec) interleave(length int) []int {
	order := make([]int, length)
	for i := range order {
		order[i] = i
	}
	rand.New(rand.NewSource(c.seed)).Shuffle(length, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

func bitAt(data []byte, i int) bool {
	return data[i/8]&(1<<(7-i%8)) != 0
}

// packWords loads bytes into the word stream the Golay coder consumes.
func packWords(data []byte) []uint64 {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range data {
		w.Write8(0, 8, b)
	}
	return w.Data()
}

// unpackBits reads the leading bits of a word stream back out.
func unpackBits(words []uint64, bits int) []bool {
	out := make([]bool, bits)
	r := bitstream.NewBitReader(words, 0, 0)
	r.SetBits(bits)
	for i := range out {
		out[i], _ = r.ReadBitAt(i)
	}
	return out
}
