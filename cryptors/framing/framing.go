// Package framing maps text to 16 bit blocks and back, and renders block
// sequences as space separated hexadecimal tokens.
//
// Text is packed two bytes per block, first byte high.  An odd final byte
// is padded with a zero low byte, and on the way back every zero low byte is
// dropped as padding.  A genuine zero byte at an odd offset is therefore
// lost; callers that need exact lengths must carry the byte count
// themselves.
package framing

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/bgallie/saes/cryptors"
)

// Codec converts between text and the bytes that are framed into blocks.
type Codec struct {
	name  string
	enc   encoding.Encoding
	valid func([]byte) bool
}

var (
	UTF8        = &Codec{name: "utf-8", enc: unicode.UTF8, valid: utf8.Valid}
	ISO8859_1   = &Codec{name: "iso-8859-1", enc: charmap.ISO8859_1}
	Windows1252 = &Codec{name: "windows-1252", enc: charmap.Windows1252}

	codecs = map[string]*Codec{
		"utf-8":        UTF8,
		"utf8":         UTF8,
		"iso-8859-1":   ISO8859_1,
		"latin1":       ISO8859_1,
		"windows-1252": Windows1252,
		"cp1252":       Windows1252,
	}
)

// Lookup returns the codec registered under name (case insensitive).
func Lookup(name string) (*Codec, error) {
	c, ok := codecs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("framing: unknown text encoding %q", name)
	}
	return c, nil
}

func (c *Codec) String() string {
	return c.name
}

// Encode returns the bytes of text in the codec's encoding.
func (c *Codec) Encode(text string) ([]byte, error) {
	b, err := c.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("framing: encoding text as %s: %w", c.name, err)
	}
	return b, nil
}

// Decode turns b back into text.  Bytes that are not valid in the codec's
// encoding come back as a hex dump instead of an error.
func (c *Codec) Decode(b []byte) string {
	if c.valid != nil && !c.valid(b) {
		return HexDump(b)
	}
	s, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return HexDump(b)
	}
	return string(s)
}

// TextToBlocks encodes text and packs it into blocks.
func (c *Codec) TextToBlocks(text string) ([]cryptors.Block, error) {
	b, err := c.Encode(text)
	if err != nil {
		return nil, err
	}
	return BytesToBlocks(b), nil
}

// BlocksToText unpacks blocks, drops zero padding bytes and decodes the rest.
func (c *Codec) BlocksToText(blocks []cryptors.Block) string {
	return c.Decode(BlocksToBytes(blocks))
}

// TextToBlocks frames UTF-8 text.
func TextToBlocks(text string) []cryptors.Block {
	return BytesToBlocks([]byte(text))
}

// BlocksToText reassembles UTF-8 text, falling back to a hex dump.
func BlocksToText(blocks []cryptors.Block) string {
	return UTF8.BlocksToText(blocks)
}

// BytesToBlocks packs b two bytes per block, zero padding an odd tail.
func BytesToBlocks(b []byte) []cryptors.Block {
	blocks := make([]cryptors.Block, 0, (len(b)+1)/2)
	for i := 0; i < len(b); i += 2 {
		blk := cryptors.Block(b[i]) << 8
		if i+1 < len(b) {
			blk |= cryptors.Block(b[i+1])
		}
		blocks = append(blocks, blk)
	}
	return blocks
}

// BlocksToBytes unpacks blocks, dropping every zero low byte.
func BlocksToBytes(blocks []cryptors.Block) []byte {
	b := make([]byte, 0, 2*len(blocks))
	for _, blk := range blocks {
		b = append(b, byte(blk>>8))
		if lo := byte(blk); lo != 0 {
			b = append(b, lo)
		}
	}
	return b
}

// HexDump renders b as space separated two digit upper case hex bytes.
func HexDump(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}
