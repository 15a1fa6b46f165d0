// Package cryptox seals JSON documents with a passphrase. The key is derived
// with Argon2id from a random salt and the document is encrypted with
// AES-256-GCM.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32

	// Algorithm names the scheme recorded in every envelope.
	Algorithm = "argon2id+aes-256-gcm"
)

var ErrDecrypt = errors.New("decryption failed")

// Envelope is a sealed document. Byte fields are base64 encoded in JSON.
type Envelope struct {
	Algorithm  string `json:"algorithm"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// DeriveKey stretches a passphrase into an AES-256 key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// Seal serializes v to JSON and encrypts it under passphrase. Every call
// uses a fresh salt and nonce.
func Seal(v any, passphrase []byte) (*Envelope, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	key := DeriveKey(passphrase, salt)
	defer wipe(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return &Envelope{
		Algorithm:  Algorithm,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aesgcm.Seal(nil, nonce, plaintext, nil),
	}, nil
}

// Open decrypts env and unmarshals the document into v. A wrong passphrase
// or a tampered envelope yields ErrDecrypt.
func Open(env *Envelope, passphrase []byte, v any) error {
	if env.Algorithm != Algorithm {
		return fmt.Errorf("%w: unsupported algorithm %q", ErrDecrypt, env.Algorithm)
	}

	key := DeriveKey(passphrase, env.Salt)
	defer wipe(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}
	if len(env.Nonce) != aesgcm.NonceSize() {
		return fmt.Errorf("%w: bad nonce size %d", ErrDecrypt, len(env.Nonce))
	}

	plaintext, err := aesgcm.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return json.Unmarshal(plaintext, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// wipe zeroes key material after use.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
