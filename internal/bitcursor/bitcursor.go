// Package bitcursor treats a byte payload as a single bit stream,
// most-significant bit first within each byte. It is the one place the bit
// order invariant lives: both engines read secrets through Reader and pack
// extracted bits through Writer.
package bitcursor

import (
	"github.com/yyyoichi/bitstream-go"
)

// Reader walks a payload with a monotonically advancing bit cursor.
type Reader struct {
	r     *bitstream.BitReader[uint64]
	total int
	pos   int
}

// NewReader returns a cursor over the payload's bits. The payload is
// copied into the cursor's backing words; the caller may reuse the slice.
func NewReader(payload []byte) *Reader {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range payload {
		w.Write8(0, 8, b)
	}
	r := bitstream.NewBitReader(w.Data(), 0, 0)
	r.SetBits(len(payload) * 8)
	return &Reader{r: r, total: len(payload) * 8}
}

// Total returns the payload length in bits.
func (r *Reader) Total() int { return r.total }

// Pos returns the cursor position. It may sit past the end of the stream
// after a padded final group.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	if r.pos >= r.total {
		return 0
	}
	return r.total - r.pos
}

// Peek assembles up to width bits at the cursor into an unsigned value,
// first bit most significant, without consuming them. n reports how many
// bits were actually available; value holds exactly those n bits.
func (r *Reader) Peek(width int) (value byte, n int) {
	for i := 0; i < width && r.pos+i < r.total; i++ {
		bit, _ := r.r.ReadBitAt(r.pos + i)
		value <<= 1
		if bit {
			value |= 1
		}
		n++
	}
	return value, n
}

// Advance moves the cursor forward by n bits, possibly past the end.
func (r *Reader) Advance(n int) { r.pos += n }

// Writer accumulates bits and packs them into bytes, MSB-first.
type Writer struct {
	w *bitstream.BitWriter[uint64]
}

func NewWriter() *Writer {
	return &Writer{w: bitstream.NewBitWriter[uint64](0, 0)}
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(bit bool) {
	w.w.WriteBool(bit)
}

// WriteBits appends the low width bits of value, most significant first.
func (w *Writer) WriteBits(value byte, width int) {
	for i := width - 1; i >= 0; i-- {
		w.w.WriteBool((value>>i)&1 == 1)
	}
}

// Bits returns the number of bits written so far.
func (w *Writer) Bits() int { return w.w.Bits() }

// Bytes packs the accumulated bits into bytes. The low-order bits of a
// trailing partial byte are zero.
func (w *Writer) Bytes() []byte {
	n := w.w.Bits()
	out := make([]byte, (n+7)/8)
	r := bitstream.NewBitReader(w.w.Data(), 0, 0)
	for i := 0; i < n; i++ {
		if bit, _ := r.ReadBitAt(i); bit {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	return out
}
