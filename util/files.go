package util

import (
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

/*
 * ReadText reads a text file as utf-8. a byte order mark decides the
 * encoding when present (utf-8 or utf-16) and is dropped from the result.
 */
func ReadText(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return DecodeText(f)
}

func DecodeText(r io.Reader) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IsFile reports whether filename names an existing regular file.
func IsFile(filename string) bool {
	if filename == "" {
		return false
	}
	info, err := os.Stat(filename)
	return err == nil && info.Mode().IsRegular()
}

func WriteFile(filename string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = 0600
	}
	return os.WriteFile(filename, data, perm)
}
