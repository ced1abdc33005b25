package cryptography

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

/*
 * everything here is used to keep local files (logs, configuration) sealed
 * at rest. hidden payloads themselves are never encrypted.
 */

// chacha20poly1305 encryption+authentication, nonce is prepended to the ciphertext
func Encrypt(data, key []byte) ([]byte, error) {
	if len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce, err := GenRandom(NonceSize)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, data, nil), nil
}

func Decrypt(data, key []byte) ([]byte, error) {
	if len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}
	if len(data) < NonceSize {
		return nil, fmt.Errorf("Invalid length of data")
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, data[:NonceSize], data[NonceSize:], nil)
}

// generate a random amount of bytes
func GenRandom(size uint) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("GenRandom: Invalid size of random data")
	}
	data := make([]byte, size)
	if _, err := rand.Read(data); err != nil {
		return nil, err
	}
	return data, nil
}

// format: <base64-encoded-salt>:<password>
func SplitWithSalt(password string) ([]byte, []byte, error) {
	salt, pass, found := strings.Cut(password, ":")
	if !found {
		return nil, nil, fmt.Errorf("no salt supplied")
	}
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, nil, err
	}
	return []byte(pass), saltBytes, nil
}

func JoinWithSalt(password, saltBytes []byte) string {
	return base64.StdEncoding.EncodeToString(saltBytes) + ":" + string(password)
}

// derive encryption key from password. the parameters are part of the key,
// so they must stay the same on every machine.
func DeriveKey(password, saltBytes []byte) []byte {
	return argon2.IDKey(password, saltBytes, ArgonTime, ArgonMemory, ArgonThreads, SymKeySize)
}

// derive key from "<salt>:<password>" string
func KeyFromPassword(password string) ([]byte, error) {
	pass, saltBytes, err := SplitWithSalt(password)
	if err != nil {
		return nil, err
	}
	return DeriveKey(pass, saltBytes), nil
}
