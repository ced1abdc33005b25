package util

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// just a wrapper for term...
func GetPasswd(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	bytepw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return bytepw, err
}
