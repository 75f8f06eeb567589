// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptedRoundTrip(t *testing.T) {
	inner := NewMemory()

	enc, err := NewEncrypted(inner, DefaultPassphrase)
	require.NoError(t, err)

	require.NoError(t, enc.Set("employee-storage", `{"state":{"records":[]}}`))

	raw, ok, err := inner.Get("employee-storage")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(raw, encryptedPrefix))
	assert.NotContains(t, raw, "records")

	v, ok, err := enc.Get("employee-storage")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"state":{"records":[]}}`, v)
}

func TestEncryptedNonceIsRandom(t *testing.T) {
	inner := NewMemory()

	enc, err := NewEncrypted(inner, DefaultPassphrase)
	require.NoError(t, err)

	require.NoError(t, enc.Set("a", "same"))
	require.NoError(t, enc.Set("b", "same"))

	a, _, _ := inner.Get("a")
	b, _, _ := inner.Get("b")
	assert.NotEqual(t, a, b)
}

func TestEncryptedUndecryptableReadsAsAbsent(t *testing.T) {
	inner := NewMemory()

	enc, err := NewEncrypted(inner, DefaultPassphrase)
	require.NoError(t, err)

	other, err := NewEncrypted(inner, "another passphrase")
	require.NoError(t, err)

	require.NoError(t, other.Set("office-storage", "secret"))
	require.NoError(t, inner.Set("plain", "not encrypted"))
	require.NoError(t, inner.Set("garbage", encryptedPrefix+"!!!"))
	require.NoError(t, inner.Set("short", encryptedPrefix+"AAAA"))

	for _, key := range []string{"office-storage", "plain", "garbage", "short"} {
		v, ok, err := enc.Get(key)
		require.NoError(t, err, key)
		assert.False(t, ok, key)
		assert.Empty(t, v, key)
	}
}

func TestEncryptedBindsKey(t *testing.T) {
	inner := NewMemory()

	enc, err := NewEncrypted(inner, DefaultPassphrase)
	require.NoError(t, err)

	require.NoError(t, enc.Set("office-storage", "offices"))

	// a sealed value moved under another key must not decrypt
	raw, _, _ := inner.Get("office-storage")
	require.NoError(t, inner.Set("employee-storage", raw))

	_, ok, err := enc.Get("employee-storage")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEncryptedEmptyPassphrase(t *testing.T) {
	_, err := NewEncrypted(NewMemory(), "")
	assert.Error(t, err)
}
