package protocol

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestCompress(t *testing.T) {
	randbytes := make([]byte, 128)
	rand.Read(randbytes)

	testCases := []struct {
		name   string
		data   []byte
		shrink bool
	}{
		{name: "Empty data", data: []byte{}},
		{name: "Small data", data: bytes.Repeat([]byte("a"), 150), shrink: true},
		{name: "Large data", data: bytes.Repeat([]byte("a"), 1024), shrink: true},
		{name: "Data not compressible", data: []byte{0x01, 0x02, 0x03, 0x04}},
		{name: "Random data", data: randbytes},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			compressed, err := Compress(tc.data)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(compressed) == 0 {
				t.Errorf("Compressed stream must never be empty")
			}
			if tc.shrink && len(compressed) >= len(tc.data) {
				t.Errorf("Compressed data length is not smaller than original data")
			}
			decompressed, err := Decompress(compressed)
			if err != nil {
				t.Errorf("Failed to decompress: %s, %v", err.Error(), compressed)
			} else if !bytes.Equal(decompressed, tc.data) {
				t.Errorf("Compress/decompress breaks the data. Original: %v; Decompressed: %v",
					tc.data, decompressed)
			}
		})
	}
}

func TestDecompressCorrupt(t *testing.T) {
	compressed, _ := Compress([]byte("some text to compress, some text to compress"))
	truncated := compressed[:len(compressed)/2]
	flipped := append([]byte{}, compressed...)
	flipped[len(flipped)-1] ^= 0xff

	for _, data := range [][]byte{nil, []byte("not zlib at all"), truncated, flipped} {
		if _, err := Decompress(data); !errors.Is(err, ErrCorruptPayload) {
			t.Errorf("Expected ErrCorruptPayload for %v, got %v", data, err)
		}
	}
}
