package util

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"stegtext/cryptography"
)

/*
 * a custom logger. lines go to a file (optionally encrypted at rest)
 * or to stderr when no file is set.
 */
const (
	Error   = 1
	Warning = 2
	Info    = 4

	RedColor     = "\033[31m"
	YellowColor  = "\033[33m"
	GreenColor   = "\033[32m"
	CyanColor    = "\033[36m"
	BlueColor    = "\033[34m"
	MagentaColor = "\033[35m"
	ResetColor   = "\033[0m"
)

type LoggerInfo struct {
	Filename    string `yaml:"filename"`
	Password    string `yaml:"password"` // <base64 salt>:<password>
	IsEncrypted bool   `yaml:"is_encrypted"`
	IsColored   bool   `yaml:"is_colored"`
	SaveTime    bool   `yaml:"save_time"`
	Mode        uint8  `yaml:"mode"`
}

type Logger struct {
	li      *LoggerInfo
	out     io.Writer
	mtx     sync.Mutex
	now     func() time.Time
	keyOnce sync.Once
	key     []byte
	keyErr  error
}

func NewLogger(li *LoggerInfo) *Logger {
	return &Logger{
		li:  li,
		out: os.Stderr,
		now: time.Now,
	}
}

// SetOutput changes the destination used when no file name is configured.
func (l *Logger) SetOutput(w io.Writer) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.out = w
}

func (l *Logger) colorize(line string, color string) string {
	if l.li.IsColored {
		return color + line + ResetColor
	}
	return line
}

func (l *Logger) prepareString(str string, clr string) string {
	toWrite := l.colorize(str, clr) + " "
	if l.li.SaveTime {
		toWrite += l.now().Format(time.RFC3339) + " "
	}
	return toWrite
}

func (l *Logger) encryptionKey() ([]byte, error) {
	l.keyOnce.Do(func() {
		l.key, l.keyErr = cryptography.KeyFromPassword(l.li.Password)
	})
	return l.key, l.keyErr
}

func (l *Logger) LogString(s string) {
	if l == nil {
		return
	}
	l.mtx.Lock()
	defer l.mtx.Unlock()

	switch {
	case l.li.Filename == "":
		fmt.Fprintln(l.out, s)
	case !l.li.IsEncrypted:
		// just append line
		f, err := os.OpenFile(l.li.Filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err == nil {
			defer f.Close()
			f.WriteString(s + "\n")
		}
	default:
		if err := l.appendEncrypted(s + "\n"); err != nil {
			fmt.Fprintln(l.out, s)
		}
	}
}

// the whole log is one sealed blob, so appending is decrypt-append-encrypt.
func (l *Logger) appendEncrypted(s string) error {
	key, err := l.encryptionKey()
	if err != nil {
		return err
	}
	current := []byte{}
	data, err := os.ReadFile(l.li.Filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		if current, err = cryptography.Decrypt(data, key); err != nil {
			return err
		}
	}
	sealed, err := cryptography.Encrypt(append(current, []byte(s)...), key)
	if err != nil {
		return err
	}
	return os.WriteFile(l.li.Filename, sealed, 0600)
}

func (l *Logger) LogError(err error) {
	if l != nil && l.li.Mode&Error == Error {
		l.LogString(l.prepareString("[ERROR]", RedColor) + err.Error())
	}
}

func (l *Logger) LogWarning(warning string) {
	if l != nil && l.li.Mode&Warning == Warning {
		l.LogString(l.prepareString("[WARNING]", YellowColor) + warning)
	}
}

func (l *Logger) LogInfo(info string) {
	if l != nil && l.li.Mode&Info == Info {
		l.LogString(l.prepareString("[INFO]", CyanColor) + info)
	}
}

func (l *Logger) LogInfof(format string, args ...any) {
	l.LogInfo(fmt.Sprintf(format, args...))
}
