package util

import (
	"errors"
	"fmt"
)

/*
 * bit serializer. a bit is stored as a single byte holding 0 or 1,
 * bytes are expanded most significant bit first.
 */
const (
	HeaderBits = 40 // 32 bits of length + 8 bits of flags
	LengthBits = 32
	FlagsBits  = 8

	MaxPayloadSize = uint64(1) << LengthBits
)

var (
	ErrPayloadTooLarge = errors.New("payload too large (>= 4GiB unsupported)")
	ErrHeaderMissing   = errors.New("no header found (not enough hidden bits)")
	ErrMalformedBits   = errors.New("bits length must be multiple of 8")
)

// Header is the fixed prefix of every embedded bitstream.
type Header struct {
	Length uint32
	Flags  uint8
}

func ToBin(x byte) []byte {
	result := make([]byte, 8)
	for i := 0; i < 8; i++ {
		result[i] = (x >> (7 - i)) & 1
	}
	return result
}

func FromBin(x []byte) byte {
	result := byte(0)
	for i := 0; i < 8; i++ {
		result = result<<1 | (x[i] & 1)
	}
	return result
}

func BytesToBits(data []byte) []byte {
	res := make([]byte, 0, len(data)*8)
	for _, b := range data {
		res = append(res, ToBin(b)...)
	}
	return res
}

// inverse function
func BitsToBytes(bits []byte) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: got %d bits", ErrMalformedBits, len(bits))
	}
	result := make([]byte, 0, len(bits)/8)
	for i := 0; i < len(bits); i += 8 {
		result = append(result, FromBin(bits[i:i+8]))
	}
	return result, nil
}

// BuildHeader returns the 40 header bits for a payload of the given size.
func BuildHeader(payloadLen int, flags uint8) ([]byte, error) {
	if payloadLen < 0 || uint64(payloadLen) >= MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, payloadLen)
	}
	bits := make([]byte, 0, HeaderBits)
	length := uint32(payloadLen)
	for i := LengthBits - 1; i >= 0; i-- {
		bits = append(bits, byte(length>>uint(i))&1)
	}
	return append(bits, ToBin(flags)...), nil
}

func ParseHeader(bits []byte) (Header, error) {
	if len(bits) < HeaderBits {
		return Header{}, fmt.Errorf("%w: %d bits available", ErrHeaderMissing, len(bits))
	}
	var h Header
	for _, b := range bits[:LengthBits] {
		h.Length = h.Length<<1 | uint32(b&1)
	}
	h.Flags = FromBin(bits[LengthBits:HeaderBits])
	return h, nil
}

// PayloadBits is the amount of bits which must follow the header.
func (h Header) PayloadBits() int {
	return int(h.Length) * 8
}
