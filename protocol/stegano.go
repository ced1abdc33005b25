package protocol

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"stegtext/stegano/text"
	"stegtext/stegano/util"
	cutil "stegtext/util"
)

const (
	TextFile    = int8(0) // actually, it also can be a code file
	UnknownFile = int8(-1)
)

var supportedTexts = []string{
	"txt", "md", "markdown", "text", "rst", "html", "htm", "csv",
	"py", "java", "rs", "go", "sql", "c", "cpp", "h", "hpp",
	"ts", "js", "nim", "toml", "conf",
}

type Options struct {
	Compress bool // zlib the payload and set the COMPRESSED flag
	Visible  bool // apply the emphasis channel on top
}

// Report describes what an encode call did or would do.
type Report struct {
	PayloadSize    int // size of serialized (possibly compressed) payload
	TotalBits      int
	Carriers       int
	UsedCarriers   int
	BitsPerCarrier int
	Normalized     bool // host is in NFC form
	HostNotText    bool // host file extension is not a known text type
}

func DetermineFileType(ext string) int8 {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, val := range supportedTexts {
		if val == ext {
			return TextFile
		}
	}
	return UnknownFile
}

// Encode hides payload inside host and returns the encoded text.
func Encode(host string, payload []byte, opts Options) (string, error) {
	encoded, _, err := EncodeWithReport(host, payload, opts)
	return encoded, err
}

func EncodeWithReport(host string, payload []byte, opts Options) (string, Report, error) {
	if uint64(len(payload)) >= util.MaxPayloadSize {
		return "", Report{}, fmt.Errorf("%w: %d bytes", util.ErrPayloadTooLarge, len(payload))
	}

	flags := uint8(0)
	if opts.Compress {
		compressed, err := Compress(payload)
		if err != nil {
			return "", Report{}, err
		}
		cutil.DebugPrintf("compressed payload: %d -> %d bytes", len(payload), len(compressed))
		payload = compressed
		flags |= FlagCompressed
	}

	report, err := Capacity(host, len(payload))
	if err != nil {
		return "", Report{}, err
	}
	encoded, err := text.HideDense(host, payload, flags, opts.Visible)
	if err != nil {
		return "", Report{}, err
	}
	return encoded, report, nil
}

// Capacity computes the allocation for a serialized payload of the given size.
func Capacity(host string, payloadSize int) (Report, error) {
	if payloadSize < 0 || uint64(payloadSize) >= util.MaxPayloadSize {
		return Report{}, fmt.Errorf("%w: %d bytes", util.ErrPayloadTooLarge, payloadSize)
	}
	totalBits := util.HeaderBits + 8*payloadSize
	alloc, err := text.Allocate([]rune(host), totalBits)
	if err != nil {
		return Report{}, err
	}
	return Report{
		PayloadSize:    payloadSize,
		TotalBits:      totalBits,
		Carriers:       len(alloc.Carriers),
		UsedCarriers:   alloc.UsedCarriers(),
		BitsPerCarrier: alloc.PerCarrier,
		Normalized:     IsNormalized(host),
	}, nil
}

// Decode recovers the payload hidden by Encode.
func Decode(encoded string) ([]byte, error) {
	header, payload, err := text.RevealDense(encoded)
	if err != nil {
		return nil, err
	}
	if header.Flags&FlagCompressed == FlagCompressed {
		return Decompress(payload)
	}
	return payload, nil
}

// IsNormalized reports whether host survives NFC normalization unchanged.
// transports that normalize text would otherwise move carriers around.
func IsNormalized(host string) bool {
	return norm.NFC.IsNormalString(host)
}

/*
 * file-level helpers. an empty hostFile means a random decoy is picked from
 * folder, limited to the given extensions (all text ones if empty).
 */
func HideInFile(hostFile, folder string, extensions []string, data []byte, opts Options) (string, string, Report, error) {
	if hostFile == "" {
		if folder == "" {
			return "", "", Report{}, fmt.Errorf("no host text and no decoy folder")
		}
		if len(extensions) == 0 {
			extensions = supportedTexts
		}
		var err error
		if hostFile, err = cutil.PickDecoy(folder, extensions); err != nil {
			return "", "", Report{}, err
		}
	}
	notText := DetermineFileType(filepath.Ext(hostFile)) == UnknownFile
	host, err := cutil.ReadText(hostFile)
	if err != nil {
		return "", "", Report{}, err
	}
	encoded, report, err := EncodeWithReport(host, data, opts)
	report.HostNotText = notText
	return hostFile, encoded, report, err
}

func RevealFromFile(filename string) ([]byte, error) {
	encoded, err := cutil.ReadText(filename)
	if err != nil {
		return nil, err
	}
	return Decode(encoded)
}
