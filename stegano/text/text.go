package text

import (
	"errors"
	"fmt"

	"stegtext/stegano/util"
)

var ErrPayloadTruncated = errors.New("not enough bits for payload")

/*
 * HideDense serializes header and payload and embeds them into the host.
 * payload must already be in its final form (compressed or not), flags are
 * stored untouched. with visible set the emphasis channel is applied on top.
 */
func HideDense(host string, payload []byte, flags uint8, visible bool) (string, error) {
	header, err := util.BuildHeader(len(payload), flags)
	if err != nil {
		return "", err
	}
	payloadBits := util.BytesToBits(payload)
	bits := make([]byte, 0, len(header)+len(payloadBits))
	bits = append(bits, header...)
	bits = append(bits, payloadBits...)

	encoded, err := EmbedDense(host, bits)
	if err != nil {
		return "", err
	}
	if visible {
		encoded = Emphasize(encoded, payloadBits)
	}
	return encoded, nil
}

// inverse function. the header length is authoritative, trailing bits are ignored.
func RevealDense(encoded string) (util.Header, []byte, error) {
	bits := ExtractDense(StripEmphasis(encoded))

	header, err := util.ParseHeader(bits)
	if err != nil {
		return util.Header{}, nil, err
	}
	needed := header.PayloadBits()
	if len(bits)-util.HeaderBits < needed {
		return header, nil, fmt.Errorf("%w: expected %d, got %d",
			ErrPayloadTruncated, needed, len(bits)-util.HeaderBits)
	}
	payload, err := util.BitsToBytes(bits[util.HeaderBits : util.HeaderBits+needed])
	if err != nil {
		return header, nil, err
	}
	return header, payload, nil
}

// byte-oriented wrappers, no compression and no visible channel
func Hide(decoy, data []byte) ([]byte, error) {
	str, err := HideDense(string(decoy), data, 0, false)
	return []byte(str), err
}

func Reveal(decoy []byte) ([]byte, error) {
	_, data, err := RevealDense(string(decoy))
	return data, err
}
