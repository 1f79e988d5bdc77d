package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandByteArray_Length(t *testing.T) {
	for _, n := range []int{0, 1, 32, ChallengeSize} {
		buf := GenerateRandByteArray(n)
		require.NotNil(t, buf)
		assert.Len(t, buf, n)
	}
}

func TestGenerateRandByteArray_EntropyHint(t *testing.T) {
	a := GenerateRandByteArray(ChallengeSize)
	b := GenerateRandByteArray(ChallengeSize)
	if bytes.Equal(a, b) {
		t.Logf("warning: two %d-byte nonces are identical; extremely unlikely", ChallengeSize)
	}
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)

	require.NotPanics(t, func() { WipeByteArray(nil) })
}
