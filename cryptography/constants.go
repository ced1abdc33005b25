package cryptography

import (
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	SymKeySize = chacha20poly1305.KeySize
	NonceSize  = chacha20poly1305.NonceSize
	SaltSize   = 16

	// argon2id, the draft RFC recommends time=3 and memory=32*1024 (32 MB)
	ArgonTime    = 3
	ArgonMemory  = 32 * 1024
	ArgonThreads = 4
)
