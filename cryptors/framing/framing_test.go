package framing

import (
	"errors"
	"strconv"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/bgallie/saes/cryptors"
)

func TestTextToBlocks(t *testing.T) {
	tests := []struct {
		text   string
		blocks []cryptors.Block
	}{
		{"", []cryptors.Block{}},
		{"Hi", []cryptors.Block{0x4869}},
		{"H", []cryptors.Block{0x4800}},
		{"Hi!", []cryptors.Block{0x4869, 0x2100}},
		{"Hello, 世界", []cryptors.Block{0x4865, 0x6C6C, 0x6F2C, 0x20E4, 0xB896, 0xE795, 0x8C00}},
	}
	for _, test := range tests {
		got := TextToBlocks(test.text)
		qt.Check(t, qt.DeepEquals(got, test.blocks), qt.Commentf("%q", test.text))
		qt.Check(t, qt.Equals(BlocksToText(got), test.text))
	}
}

func TestBlocksToTextDropsPadding(t *testing.T) {
	qt.Assert(t, qt.Equals(BlocksToText([]cryptors.Block{0x4800}), "H"))
}

// A genuine zero byte in an odd position is indistinguishable from padding
// and disappears on the way back.
func TestBlocksToTextLosesInteriorZero(t *testing.T) {
	blocks := BytesToBlocks([]byte{'a', 0, 'b', 'c'})
	qt.Assert(t, qt.DeepEquals(blocks, []cryptors.Block{0x6100, 0x6263}))
	qt.Assert(t, qt.Equals(BlocksToText(blocks), "abc"))
}

func TestBlocksToTextHexFallback(t *testing.T) {
	qt.Assert(t, qt.Equals(BlocksToText([]cryptors.Block{0xFFFE}), "FF FE"))
	qt.Assert(t, qt.Equals(BlocksToText([]cryptors.Block{0xC328, 0x4100}), "C3 28 41"))
}

func TestCodecs(t *testing.T) {
	c, err := Lookup("Latin1")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(c, ISO8859_1))
	qt.Assert(t, qt.Equals(c.String(), "iso-8859-1"))

	blocks, err := c.TextToBlocks("é!")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(blocks, []cryptors.Block{0xE921}))
	qt.Assert(t, qt.Equals(c.BlocksToText(blocks), "é!"))

	// UTF-8 rejects the lone 0xE9 byte that Latin-1 accepts.
	qt.Assert(t, qt.Equals(UTF8.BlocksToText([]cryptors.Block{0xE921}), "E9 21"))

	_, err = c.TextToBlocks("世界")
	qt.Assert(t, qt.ErrorMatches(err, `framing: encoding text as iso-8859-1: .*`))

	w, err := Lookup("cp1252")
	qt.Assert(t, qt.IsNil(err))
	blocks, err = w.TextToBlocks("€")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(blocks, []cryptors.Block{0x8000}))

	_, err = Lookup("ebcdic")
	qt.Assert(t, qt.ErrorMatches(err, `framing: unknown text encoding "ebcdic"`))
}

func TestFormatBlocks(t *testing.T) {
	qt.Assert(t, qt.Equals(FormatBlocks([]cryptors.Block{1234, 0x1A2F}), "04D2 1A2F"))
	qt.Assert(t, qt.Equals(FormatBlocks(nil), ""))
	qt.Assert(t, qt.Equals(FormatBlock(0xBE), "00BE"))
}

func TestParseBlocks(t *testing.T) {
	blocks, err := ParseBlocks("04D2 1a2f\t0xFFFF\n0")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(blocks, []cryptors.Block{0x04D2, 0x1A2F, 0xFFFF, 0x0000}))

	_, err = ParseBlocks("   ")
	qt.Assert(t, qt.ErrorIs(err, ErrEmpty))

	_, err = ParseBlocks("04D2 XYZ1 1A2F")
	var pe *ParseError
	qt.Assert(t, qt.IsTrue(errors.As(err, &pe)))
	qt.Assert(t, qt.Equals(pe.Index, 1))
	qt.Assert(t, qt.Equals(pe.Token, "XYZ1"))
	qt.Assert(t, qt.ErrorIs(err, strconv.ErrSyntax))

	_, err = ParseBlocks("04D2 10000")
	qt.Assert(t, qt.IsTrue(errors.As(err, &pe)))
	qt.Assert(t, qt.Equals(pe.Index, 1))
	qt.Assert(t, qt.ErrorIs(err, strconv.ErrRange))
	qt.Assert(t, qt.ErrorMatches(err, `framing: token 1 "10000" is not a 16 bit hex value: value out of range`))
}

func FuzzTextRoundTrip(f *testing.F) {
	f.Add("Hi")
	f.Add("Hello, 世界")
	f.Fuzz(func(t *testing.T, s string) {
		b := []byte(s)
		blocks := BytesToBlocks(b)
		if len(blocks) != (len(b)+1)/2 {
			t.Fatalf("%d bytes framed into %d blocks", len(b), len(blocks))
		}
		got := BlocksToBytes(blocks)
		var want []byte
		for i, v := range b {
			if v != 0 || i%2 == 0 {
				want = append(want, v)
			}
		}
		if string(got) != string(want) {
			t.Fatalf("round trip of %q gave %q", b, got)
		}
	})
}
