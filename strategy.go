package stegano

import "sync"

// Strategy transforms a single host byte during bit-plane embedding and
// extraction. Implementations must be pure: the same inputs always produce
// the same output, and Extract must invert Embed for the bits it reads.
type Strategy interface {
	// Embed returns the host byte with the low width bits of bits placed
	// into the plane this strategy writes.
	Embed(host, bits byte, width int) byte
	// Extract returns the width bits this strategy reads from the host
	// byte, right-aligned.
	Extract(host byte, width int) byte
}

// Built-in strategies. LSB replaces the low-order bits of each host byte,
// MSB the high-order bits.
var (
	LSB Strategy = lsbStrategy{}
	MSB Strategy = msbStrategy{}
)

type lsbStrategy struct{}

func (lsbStrategy) Embed(host, bits byte, width int) byte {
	mask := byte(1<<width - 1)
	return (host &^ mask) | (bits & mask)
}

func (lsbStrategy) Extract(host byte, width int) byte {
	return host & byte(1<<width-1)
}

type msbStrategy struct{}

func (msbStrategy) Embed(host, bits byte, width int) byte {
	mask := byte(1<<width-1) << (8 - width)
	return (host &^ mask) | (bits&byte(1<<width-1))<<(8-width)
}

func (msbStrategy) Extract(host byte, width int) byte {
	return host >> (8 - width)
}

var (
	strategyMu sync.RWMutex
	strategies = map[string]Strategy{
		"lsb": LSB,
		"msb": MSB,
	}
)

// RegisterStrategy makes a custom strategy available under the given name,
// replacing any previous registration.
func RegisterStrategy(name string, s Strategy) {
	strategyMu.Lock()
	defer strategyMu.Unlock()
	strategies[name] = s
}

// StrategyByName returns the registered strategy for name.
// The built-ins are registered as "lsb" and "msb".
func StrategyByName(name string) (Strategy, bool) {
	strategyMu.RLock()
	defer strategyMu.RUnlock()
	s, ok := strategies[name]
	return s, ok
}
