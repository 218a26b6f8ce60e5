package segy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTextHeader_ASCII(t *testing.T) {
	buf := make([]byte, TextHeaderSize)
	for i := range buf {
		buf[i] = ' '
	}

	copy(buf, "C01 CLIENT ACME SURVEYS")
	copy(buf[textCardWidth:], "C02 LINE 42")

	cards, err := DecodeTextHeader(buf)
	require.NoError(t, err)
	require.Len(t, cards, textCards)

	assert.Equal(t, "C01", cards[0].Key)
	assert.Equal(t, "C01 CLIENT ACME SURVEYS", cards[0].Text)
	assert.Equal(t, "C02 LINE 42", cards[1].Text)
	assert.Equal(t, "C40", cards[39].Key)
	assert.Empty(t, cards[39].Text)
}

func TestDecodeTextHeader_EBCDIC(t *testing.T) {
	buf := make([]byte, TextHeaderSize)
	for i := range buf {
		buf[i] = 0x40 // EBCDIC space
	}

	// "C01 SEGY" in EBCDIC.
	ebcdic := []byte{0xC3, 0xF0, 0xF1, 0x40, 0xE2, 0xC5, 0xC7, 0xE8}
	copy(buf, ebcdic)

	cards, err := DecodeTextHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, "C01 SEGY", cards[0].Text)
}

func TestDecodeTextHeader_ShortSpan(t *testing.T) {
	_, err := DecodeTextHeader(make([]byte, TextHeaderSize-1))
	require.ErrorIs(t, err, ErrMalformedHeader)
}

func TestDecodeTextHeader_ControlBytesBecomeSpaces(t *testing.T) {
	buf := make([]byte, TextHeaderSize)
	buf[0] = 'X'
	buf[1] = 0x01

	cards, err := DecodeTextHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, "X", cards[0].Text)
}
