package util

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stegtext/cryptography"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerInfo{Mode: Error | Info})
	l.SetOutput(&buf)

	l.LogInfo("carriers: 7")
	l.LogWarning("skipped")
	l.LogError(errors.New("broken"))

	assert.Equal(t, "[INFO] carriers: 7\n[ERROR] broken\n", buf.String())
}

func TestLoggerFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerInfo{Mode: Warning, IsColored: true, SaveTime: true})
	l.SetOutput(&buf)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.LogWarning("not normalized")
	assert.Equal(t, YellowColor+"[WARNING]"+ResetColor+" 2026-01-02T03:04:05Z not normalized\n", buf.String())
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.LogInfo("x")
		l.LogInfof("%d", 1)
		l.LogWarning("x")
		l.LogError(errors.New("x"))
	})
}

func TestLoggerFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "log.log")
	l := NewLogger(&LoggerInfo{Filename: filename, Mode: Info})
	l.LogInfo("first")
	l.LogInfof("second %d", 2)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "[INFO] first\n[INFO] second 2\n", string(data))

	var out bytes.Buffer
	require.NoError(t, ReadLog(&out, filename, ""))
	assert.Equal(t, string(data), out.String())
}

func TestLoggerEncrypted(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "log.enc")
	password, err := GenSalt([]byte("hunter2"))
	require.NoError(t, err)

	l := NewLogger(&LoggerInfo{Filename: filename, Password: password, IsEncrypted: true, Mode: Error | Info})
	l.LogInfo("first")
	l.LogError(errors.New("second"))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "first")

	key, err := cryptography.KeyFromPassword(password)
	require.NoError(t, err)
	plain, err := cryptography.Decrypt(data, key)
	require.NoError(t, err)
	assert.Equal(t, "[INFO] first\n[ERROR] second\n", string(plain))

	var out bytes.Buffer
	require.NoError(t, ReadLog(&out, filename, password))
	assert.Equal(t, string(plain), out.String())

	wrong, _ := GenSalt([]byte("wrong"))
	assert.Error(t, ReadLog(&out, filename, wrong))
}
