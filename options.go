package stegano

// BitplaneOption configures the bit-plane engine.
type BitplaneOption func(*Bitplane)

// WithWidth sets the number of payload bits operated per host byte.
// Valid widths are 1 through 8; width 8 replaces the whole byte.
func WithWidth(width int) BitplaneOption {
	return func(b *Bitplane) {
		b.width = width
	}
}

// WithStrategy sets the per-byte transform used for both embedding and
// extraction. Passing nil unconfigures both directions.
func WithStrategy(s Strategy) BitplaneOption {
	return func(b *Bitplane) {
		b.embed = s
		b.extract = s
	}
}

// WithEmbedStrategy sets the per-byte transform used for embedding only.
func WithEmbedStrategy(s Strategy) BitplaneOption {
	return func(b *Bitplane) {
		b.embed = s
	}
}

// WithExtractStrategy sets the per-byte transform used for extraction only.
func WithExtractStrategy(s Strategy) BitplaneOption {
	return func(b *Bitplane) {
		b.extract = s
	}
}

// PvdOption configures the PVD engine.
type PvdOption func(*Pvd)

// WithBins replaces the difference bin table. The table must be non-empty
// and, for the scheme to be invertible, must cover every difference
// magnitude the host can produce.
func WithBins(bins []Bin) PvdOption {
	return func(p *Pvd) {
		p.bins = bins
	}
}
