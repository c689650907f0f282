package hash_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/internal/hash"
)

func TestChecksumDeterministic(t *testing.T) {
	data := []byte("VOSTL trajectory log body")

	require.Equal(t, hash.Checksum(data), hash.Checksum(data))
	require.NotEqual(t, hash.Checksum(data), hash.Checksum(data[:len(data)-1]))
}

func TestChecksumEmptyInput(t *testing.T) {
	require.NotEqual(t, hash.Checksum(nil), hash.Checksum([]byte{0}))
	require.Equal(t, hash.Checksum(nil), hash.Checksum([]byte{}))
}
