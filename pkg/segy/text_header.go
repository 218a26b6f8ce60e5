package segy

import "fmt"

// Card geometry of the 3200-byte text header: 40 card images of 80 columns.
const (
	textCards     = 40
	textCardWidth = 80
)

// TextCard is one 80-column card image from the text header.
type TextCard struct {
	Key  string // C01 .. C40
	Text string
}

// ebcdicToASCII maps the EBCDIC code points that appear in SEGY text headers.
// Unmapped code points render as spaces.
var ebcdicToASCII = map[byte]byte{
	0x40: ' ', 0x4B: '.', 0x4C: '<', 0x4D: '(', 0x4E: '+', 0x4F: '|',
	0x50: '&', 0x5A: '!', 0x5B: '$', 0x5C: '*', 0x5D: ')', 0x5E: ';',
	0x60: '-', 0x61: '/', 0x6B: ',', 0x6C: '%', 0x6D: '_', 0x6E: '>',
	0x6F: '?', 0x7A: ':', 0x7B: '#', 0x7C: '@', 0x7D: '\'', 0x7E: '=',
	0x7F: '"',
	0x81: 'a', 0x82: 'b', 0x83: 'c', 0x84: 'd', 0x85: 'e', 0x86: 'f',
	0x87: 'g', 0x88: 'h', 0x89: 'i',
	0x91: 'j', 0x92: 'k', 0x93: 'l', 0x94: 'm', 0x95: 'n', 0x96: 'o',
	0x97: 'p', 0x98: 'q', 0x99: 'r',
	0xA2: 's', 0xA3: 't', 0xA4: 'u', 0xA5: 'v', 0xA6: 'w', 0xA7: 'x',
	0xA8: 'y', 0xA9: 'z',
	0xC1: 'A', 0xC2: 'B', 0xC3: 'C', 0xC4: 'D', 0xC5: 'E', 0xC6: 'F',
	0xC7: 'G', 0xC8: 'H', 0xC9: 'I',
	0xD1: 'J', 0xD2: 'K', 0xD3: 'L', 0xD4: 'M', 0xD5: 'N', 0xD6: 'O',
	0xD7: 'P', 0xD8: 'Q', 0xD9: 'R',
	0xE2: 'S', 0xE3: 'T', 0xE4: 'U', 0xE5: 'V', 0xE6: 'W', 0xE7: 'X',
	0xE8: 'Y', 0xE9: 'Z',
	0xF0: '0', 0xF1: '1', 0xF2: '2', 0xF3: '3', 0xF4: '4', 0xF5: '5',
	0xF6: '6', 0xF7: '7', 0xF8: '8', 0xF9: '9',
}

// DecodeTextHeader splits the 3200-byte text header into 40 cards keyed
// C01..C40. Encoding detection is structural, not content-based: headers
// written in EBCDIC start their cards with 0xC3 ('C'); anything else is
// treated as ASCII.
func DecodeTextHeader(b []byte) ([]TextCard, error) {
	if len(b) < TextHeaderSize {
		return nil, fmt.Errorf("%w: got %d of %d text header bytes", ErrMalformedHeader, len(b), TextHeaderSize)
	}

	ebcdic := b[0] == 0xC3

	cards := make([]TextCard, 0, textCards)

	for i := range textCards {
		raw := b[i*textCardWidth : (i+1)*textCardWidth]
		line := make([]byte, textCardWidth)

		for j, c := range raw {
			if ebcdic {
				mapped, ok := ebcdicToASCII[c]
				if !ok {
					mapped = ' '
				}

				line[j] = mapped

				continue
			}

			if c < 0x20 || c > 0x7E {
				line[j] = ' '
			} else {
				line[j] = c
			}
		}

		cards = append(cards, TextCard{
			Key:  fmt.Sprintf("C%02d", i+1),
			Text: trimRight(string(line)),
		})
	}

	return cards, nil
}

func trimRight(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}

	return s[:end]
}
