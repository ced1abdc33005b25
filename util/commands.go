package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"stegtext/cryptography"
)

/*
 * user-related functions behind the cli commands.
 */
func ReadLog(w io.Writer, log string, password string) error {
	data, err := os.ReadFile(log)
	if err != nil {
		return fmt.Errorf("Failed to read file: %s", err.Error())
	}
	if password == "" {
		return printPlain(w, data)
	}
	key, err := cryptography.KeyFromPassword(password)
	if err != nil {
		return fmt.Errorf("Failed to derive key from password: %s", err.Error())
	}
	logs, err := cryptography.Decrypt(data, key)
	if err != nil {
		// logs are unencrypted?
		if perr := printPlain(w, data); perr == nil {
			return nil
		}
		return fmt.Errorf("Failed to decrypt logs: invalid password.")
	}
	_, err = w.Write(logs)
	return err
}

func printPlain(w io.Writer, data []byte) error {
	for _, run := range string(data) {
		if !strconv.IsPrint(run) && !strings.ContainsRune("\n\t\033", run) {
			return errors.New("log file is not plain text")
		}
	}
	_, err := w.Write(data)
	return err
}

// GenSalt returns a fresh password string in the "<salt>:<password>" form.
func GenSalt(password []byte) (string, error) {
	saltBytes, err := cryptography.GenRandom(cryptography.SaltSize)
	if err != nil {
		return "", err
	}
	return cryptography.JoinWithSalt(password, saltBytes), nil
}
