package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeText(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
		out  string
	}{
		{"plain", []byte("hi there"), "hi there"},
		{"utf-8 bom", append([]byte{0xef, 0xbb, 0xbf}, []byte("héllo")...), "héllo"},
		{"utf-16le bom", []byte{0xff, 0xfe, 'h', 0, 'i', 0, ' ', 0, 0x03, 0x26}, "hi ☃"},
		{"utf-16be bom", []byte{0xfe, 0xff, 0, 'h', 0, 'i'}, "hi"},
		{"empty", []byte{}, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := DecodeText(strings.NewReader(string(tc.in)))
			require.NoError(t, err)
			assert.Equal(t, tc.out, out)
		})
	}
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "host.txt")
	require.NoError(t, WriteFile(filename, []byte("\xef\xbb\xbfhost text"), 0))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	text, err := ReadText(filename)
	require.NoError(t, err)
	assert.Equal(t, "host text", text)

	_, err = ReadText(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	assert.True(t, IsFile(filename))
	assert.False(t, IsFile(dir))
	assert.False(t, IsFile(""))
	assert.False(t, IsFile(filepath.Join(dir, "missing.txt")))
}

func TestPickDecoy(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.md", "c.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("decoy"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.txt"), 0700))

	files, err := ReadFiles(dir, []string{"txt", "md"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.md")}, files)

	for i := 0; i < 10; i++ {
		file, err := PickDecoy(dir, []string{"txt", "md"})
		require.NoError(t, err)
		assert.Contains(t, files, file)
	}

	_, err = PickDecoy(dir, []string{"pdf"})
	assert.Error(t, err)
	_, err = PickDecoy(filepath.Join(dir, "missing"), []string{"txt"})
	assert.Error(t, err)
}

func TestRandInt(t *testing.T) {
	assert.Equal(t, 0, RandInt(0))
	for i := 0; i < 100; i++ {
		n := RandInt(3)
		assert.True(t, n >= 0 && n < 3)
	}
}
