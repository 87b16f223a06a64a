package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	otp, err := GenerateOTP(6)
	require.NoError(t, err)
	require.Len(t, otp, 6)
	for _, c := range otp {
		assert.True(t, c >= '0' && c <= '9')
	}

	_, err = GenerateOTP(0)
	assert.Error(t, err)
}

func TestSha256Hex(t *testing.T) {
	// stable digest, hex encoded
	assert.Equal(t,
		"8d969eef6ecad3c29a3a629280e686cf0c3f5d5a86aff3ca12020c923adc6c92",
		Sha256Hex("123456"),
	)
	assert.Len(t, Sha256Hex(""), 64)
}
