package text

import (
	"errors"
	"unicode"
)

var (
	ErrNoCarriers   = errors.New("host text has no carriers (all whitespace)")
	ErrHostConflict = errors.New("host text already contains reserved characters")
)

// IsWhitespace reports whether r can never carry hidden bits.
// the information separators 0x1c..0x1f are treated as spaces too.
func IsWhitespace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// FindCarriers returns indexes of all the non-whitespace runes.
func FindCarriers(host []rune) []int {
	carriers := []int{}
	for i, r := range host {
		if !IsWhitespace(r) {
			carriers = append(carriers, i)
		}
	}
	return carriers
}

/*
 * Allocation describes how the bitstream is spread over the host.
 * every carrier gets PerCarrier bits until the stream is exhausted, so the
 * last used carrier may get less and the rest get nothing.
 */
type Allocation struct {
	Carriers   []int
	PerCarrier int
	TotalBits  int
}

func Allocate(host []rune, totalBits int) (Allocation, error) {
	carriers := FindCarriers(host)
	if len(carriers) == 0 {
		return Allocation{}, ErrNoCarriers
	}
	return Allocation{
		Carriers:   carriers,
		PerCarrier: (totalBits + len(carriers) - 1) / len(carriers),
		TotalBits:  totalBits,
	}, nil
}

// Count returns the amount of bits attached to the n-th carrier.
func (a Allocation) Count(n int) int {
	if n < 0 || n >= len(a.Carriers) {
		return 0
	}
	left := a.TotalBits - n*a.PerCarrier
	if left <= 0 {
		return 0
	}
	if left < a.PerCarrier {
		return left
	}
	return a.PerCarrier
}

// UsedCarriers is the amount of carriers holding at least one bit.
func (a Allocation) UsedCarriers() int {
	if a.PerCarrier == 0 {
		return 0
	}
	return (a.TotalBits + a.PerCarrier - 1) / a.PerCarrier
}
