package stegano

import (
	"fmt"
	"iter"
	mathbits "math/bits"

	"github.com/yyyoichi/stegano/internal/bitcursor"
)

// Bin is an inclusive range of difference magnitudes mapped to a fixed bit
// capacity: floor(log2(Max-Min+1)) bits. When the range size is not a
// power of two the capacity is strictly less than what the range could
// represent; embed and extract share the same formula, which is what keeps
// the scheme decodable.
type Bin struct {
	Min, Max int
}

func (b Bin) contains(diff int) bool {
	return b.Min <= diff && diff <= b.Max
}

func (b Bin) capacity() int {
	return mathbits.Len(uint(b.Max-b.Min+1)) - 1
}

// DefaultBins returns the conventional PVD table: bins grow exponentially
// so larger differences carry more bits.
func DefaultBins() []Bin {
	return []Bin{
		{0, 1},
		{2, 3},
		{4, 7},
		{8, 15},
		{16, 31},
		{32, 63},
		{64, 127},
		{128, 255},
	}
}

// Pvd embeds and extracts a variable number of secret bits per pair of
// host bytes, the count derived from the magnitude of the pair's
// difference via a bin table.
type Pvd struct {
	bins []Bin
}

// NewPvd returns a PVD engine using DefaultBins unless overridden.
func NewPvd(opts ...PvdOption) *Pvd {
	p := &Pvd{bins: DefaultBins()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PvdEmbed embeds the secret into the host in place at the given index
// sequence. This is a convenience function that creates a Pvd instance and
// calls its Embed method.
func PvdEmbed(host, secret []byte, indices iter.Seq[int], opts ...PvdOption) (int, error) {
	return NewPvd(opts...).Embed(host, secret, indices)
}

// PvdExtract recovers the capacity-sized payload hidden in the host at the
// given index sequence. This is a convenience function that creates a Pvd
// instance and calls its Extract method.
func PvdExtract(host []byte, indices iter.Seq[int], opts ...PvdOption) ([]byte, error) {
	return NewPvd(opts...).Extract(host, indices)
}

// Embed consumes indices two at a time and rewrites each pair so that its
// difference encodes the next bits of the secret stream, preserving the
// pair average. The bin of the pair's current difference decides how many
// bits the pair carries. A trailing unpaired index is ignored and
// out-of-bounds pairs are skipped. When a rewritten value would leave
// [0,255] the pair is left untouched and the same unconsumed bits are
// retried against the next pair, whose bin may have a different capacity.
// A pair whose difference lands in a capacity-zero bin ends the walk: no
// further pairs are considered, and the shortfall is reported as a
// *CapacityError.
//
// Returns the number of bits embedded. The host has already been partially
// mutated when *CapacityError or *BinCoverageError is returned.
func (p *Pvd) Embed(host, secret []byte, indices iter.Seq[int]) (int, error) {
	if err := p.validBins(); err != nil {
		return 0, err
	}
	cur := bitcursor.NewReader(secret)
	var pair [2]int
	filled := 0
	for idx := range indices {
		pair[filled] = idx
		filled++
		if filled < 2 {
			continue
		}
		filled = 0

		if cur.Remaining() == 0 {
			break
		}
		idx1, idx2 := pair[0], pair[1]
		if idx1 < 0 || idx1 >= len(host) || idx2 < 0 || idx2 >= len(host) {
			continue
		}
		p1, p2 := int(host[idx1]), int(host[idx2])
		diff := p1 - p2
		bin, ok := p.lookup(abs(diff))
		if !ok {
			return cur.Pos(), &BinCoverageError{
				Idx1: idx1, Idx2: idx2,
				P1: host[idx1], P2: host[idx2],
				Diff: abs(diff),
			}
		}
		bits, n := cur.Peek(bin.capacity())
		if n == 0 {
			// A capacity-zero bin can make no progress; stop here and
			// let the trailing check report the shortfall.
			break
		}
		newDiff := bin.Min + int(bits)
		sign := 1
		if diff < 0 {
			sign = -1
		}
		avg := (p1 + p2) / 2
		newP1 := avg + sign*((newDiff+1)/2)
		newP2 := avg - sign*(newDiff/2)
		if newP1 < 0 || newP1 > 255 || newP2 < 0 || newP2 > 255 {
			// Overflow: leave the pair as is and retry the same bits
			// against the next pair.
			continue
		}
		host[idx1], host[idx2] = byte(newP1), byte(newP2)
		cur.Advance(n)
	}
	if cur.Pos() < cur.Total() {
		return cur.Pos(), &CapacityError{
			Embedded: cur.Pos(),
			Required: cur.Total(),
			pairwise: true,
		}
	}
	return cur.Pos(), nil
}

// Extract consumes indices two at a time, mirroring Embed's pairing,
// bounds handling, and bin lookup, and appends each pair's hidden bits
// (the difference magnitude minus its bin floor, bin-capacity bits,
// MSB-first) to the output. The result is capacity-determined by the
// number of pairs: a superset of the true secret, with a trailing partial
// byte zero-padded on its low side.
func (p *Pvd) Extract(host []byte, indices iter.Seq[int]) ([]byte, error) {
	if err := p.validBins(); err != nil {
		return nil, err
	}
	w := bitcursor.NewWriter()
	var pair [2]int
	filled := 0
	for idx := range indices {
		pair[filled] = idx
		filled++
		if filled < 2 {
			continue
		}
		filled = 0

		idx1, idx2 := pair[0], pair[1]
		if idx1 < 0 || idx1 >= len(host) || idx2 < 0 || idx2 >= len(host) {
			continue
		}
		diff := abs(int(host[idx1]) - int(host[idx2]))
		bin, ok := p.lookup(diff)
		if !ok {
			return nil, &BinCoverageError{
				Idx1: idx1, Idx2: idx2,
				P1: host[idx1], P2: host[idx2],
				Diff: diff,
			}
		}
		// Only the low capacity() bits of the hidden value are
		// meaningful; embed never writes a difference past
		// Min + 2^capacity - 1.
		w.WriteBits(byte(diff-bin.Min), bin.capacity())
	}
	return w.Bytes(), nil
}

// lookup returns the first bin containing diff, in table order.
func (p *Pvd) lookup(diff int) (Bin, bool) {
	for _, bin := range p.bins {
		if bin.contains(diff) {
			return bin, true
		}
	}
	return Bin{}, false
}

func (p *Pvd) validBins() error {
	if len(p.bins) == 0 {
		return fmt.Errorf("%w: options.bins cannot be empty", ErrConfiguration)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
