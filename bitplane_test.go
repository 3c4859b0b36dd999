package stegano

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitplaneEmbed(t *testing.T) {
	t.Run("width 2 lsb", func(t *testing.T) {
		host := []byte{255, 255, 255, 255}
		err := BitplaneEmbed(host, []byte{0b10101100}, WithWidth(2))
		assert.NoError(t, err)
		assert.Equal(t, []byte{254, 254, 255, 252}, host)
	})
	t.Run("stops mutating once the secret is exhausted", func(t *testing.T) {
		host := []byte{255, 255, 255, 255, 255, 255}
		err := BitplaneEmbed(host, []byte{0x00}, WithWidth(2))
		assert.NoError(t, err)
		assert.Equal(t, []byte{252, 252, 252, 252, 255, 255}, host)
	})
	t.Run("final partial group keeps bits high", func(t *testing.T) {
		// 8 secret bits over width 3: groups 101|011|00x, the last
		// zero-padded on its low side.
		host := []byte{0, 0, 0}
		err := BitplaneEmbed(host, []byte{0b10101100}, WithWidth(3))
		assert.NoError(t, err)
		assert.Equal(t, []byte{0b101, 0b011, 0b000}, host)
	})
	t.Run("msb strategy", func(t *testing.T) {
		host := []byte{0, 0, 0, 0}
		err := BitplaneEmbed(host, []byte{0b10101100}, WithWidth(2), WithStrategy(MSB))
		assert.NoError(t, err)
		assert.Equal(t, []byte{0b10000000, 0b10000000, 0b11000000, 0b00000000}, host)
	})
	t.Run("empty secret leaves host untouched", func(t *testing.T) {
		host := []byte{1, 2, 3}
		err := BitplaneEmbed(host, nil)
		assert.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, host)
	})
}

func TestBitplaneEmbedErrors(t *testing.T) {
	test := []struct {
		name     string
		host     []byte
		secret   []byte
		opts     []BitplaneOption
		contains string
	}{
		{
			name:     "width 0",
			host:     []byte{255},
			secret:   []byte{1},
			opts:     []BitplaneOption{WithWidth(0)},
			contains: "between 1 and 8",
		},
		{
			name:     "width 9",
			host:     []byte{255},
			secret:   []byte{1},
			opts:     []BitplaneOption{WithWidth(9)},
			contains: "between 1 and 8",
		},
		{
			name:     "no embed strategy",
			host:     []byte{255},
			secret:   []byte{1},
			opts:     []BitplaneOption{WithEmbedStrategy(nil)},
			contains: "no embed strategy",
		},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]byte(nil), tt.host...)
			err := BitplaneEmbed(tt.host, tt.secret, tt.opts...)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.ErrorContains(t, err, tt.contains)
			// Configuration errors fire before any mutation.
			assert.Equal(t, before, tt.host)
		})
	}

	t.Run("capacity", func(t *testing.T) {
		host := []byte{255, 255} // 2 bits at width 1
		err := BitplaneEmbed(host, []byte("AB"))
		var capErr *CapacityError
		assert.ErrorAs(t, err, &capErr)
		assert.Equal(t, 2, capErr.Capacity)
		assert.Equal(t, 16, capErr.Required)
		assert.True(t, strings.HasPrefix(err.Error(), "Not enough space"))
		assert.Equal(t, []byte{255, 255}, host)
	})
}

func TestBitplaneExtract(t *testing.T) {
	t.Run("walks the entire host", func(t *testing.T) {
		host := []byte{254, 254, 255, 252, 255, 255}
		recovered, err := BitplaneExtract(host, WithWidth(2))
		assert.NoError(t, err)
		// 12 bits -> 2 bytes, low-padded.
		assert.Equal(t, []byte{0b10101100, 0b11110000}, recovered)
	})
	t.Run("partial final byte is low padded", func(t *testing.T) {
		recovered, err := BitplaneExtract([]byte{0b1, 0b0, 0b1})
		assert.NoError(t, err)
		assert.Equal(t, []byte{0b10100000}, recovered)
	})
	t.Run("no extract strategy", func(t *testing.T) {
		_, err := BitplaneExtract([]byte{1}, WithExtractStrategy(nil))
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.ErrorContains(t, err, "no extract strategy")
	})
	t.Run("invalid width", func(t *testing.T) {
		_, err := BitplaneExtract([]byte{1}, WithWidth(9))
		assert.ErrorIs(t, err, ErrConfiguration)
	})
	t.Run("empty host", func(t *testing.T) {
		recovered, err := BitplaneExtract(nil)
		assert.NoError(t, err)
		assert.Empty(t, recovered)
	})
}

func TestBitplaneRoundTrip(t *testing.T) {
	secret := []byte("steganography is just bookkeeping")
	for width := 1; width <= 8; width++ {
		for _, s := range []Strategy{LSB, MSB} {
			host := make([]byte, len(secret)*8/width+1)
			for i := range host {
				host[i] = byte(i * 37)
			}
			b := NewBitplane(WithWidth(width), WithStrategy(s))
			assert.NoError(t, b.Embed(host, secret))

			recovered, err := b.Extract(host)
			assert.NoError(t, err)
			// The extractor output is a capacity-sized superset.
			assert.GreaterOrEqual(t, len(recovered), len(secret))
			assert.Equal(t, secret, recovered[:len(secret)], "width=%d strategy=%T", width, s)
		}
	}
}

func TestBitplaneMixedStrategies(t *testing.T) {
	// Embedding in the high plane and reading the low plane must not
	// round-trip; the option pair is honored independently.
	host := make([]byte, 16)
	b := NewBitplane(WithWidth(4), WithEmbedStrategy(MSB), WithExtractStrategy(MSB))
	secret := []byte{0xAB, 0xCD}
	assert.NoError(t, b.Embed(host, secret))
	recovered, err := b.Extract(host)
	assert.NoError(t, err)
	assert.Equal(t, secret, recovered[:2])

	low, err := NewBitplane(WithWidth(4)).Extract(host)
	assert.NoError(t, err)
	assert.NotEqual(t, secret, low[:2])
}
