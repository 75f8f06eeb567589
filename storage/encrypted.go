// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	encryptedPrefix = "enc1:"
	keySalt         = "hwto/storage/v1"
	scryptN         = 1 << 15
	scryptR         = 8
	scryptP         = 1
	keyLen          = 32
)

// Encrypted seals values with AES-256-GCM before handing them to the wrapped
// KV. A value that cannot be decrypted reads as absent.
type Encrypted struct {
	inner KV
	aead  cipher.AEAD
}

// NewEncrypted derives the key from passphrase with scrypt.
func NewEncrypted(inner KV, passphrase string) (*Encrypted, error) {
	if passphrase == "" {
		return nil, errors.New("storage: empty passphrase")
	}

	key, err := scrypt.Key([]byte(passphrase), []byte(keySalt), scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("deriving storage key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	return &Encrypted{inner: inner, aead: aead}, nil
}

// Get implements KV.
func (e *Encrypted) Get(key string) (string, bool, error) {
	raw, ok, err := e.inner.Get(key)
	if err != nil || !ok {
		return "", false, err
	}

	plain, err := e.open(key, raw)
	if err != nil {
		log.Printf("storage: discarding %s: %v", key, err)

		return "", false, nil
	}

	return plain, true, nil
}

// Set implements KV.
func (e *Encrypted) Set(key, value string) error {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generating nonce: %w", err)
	}

	sealed := e.aead.Seal(nonce, nonce, []byte(value), []byte(key))

	return e.inner.Set(key, encryptedPrefix+base64.StdEncoding.EncodeToString(sealed))
}

// Remove implements KV.
func (e *Encrypted) Remove(key string) error {
	return e.inner.Remove(key)
}

func (e *Encrypted) open(key, raw string) (string, error) {
	payload, ok := strings.CutPrefix(raw, encryptedPrefix)
	if !ok {
		return "", errors.New("value is not encrypted")
	}

	sealed, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decoding: %w", err)
	}

	if len(sealed) < e.aead.NonceSize() {
		return "", errors.New("value too short")
	}

	nonce, ciphertext := sealed[:e.aead.NonceSize()], sealed[e.aead.NonceSize():]

	plain, err := e.aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return "", fmt.Errorf("decrypting: %w", err)
	}

	return string(plain), nil
}
