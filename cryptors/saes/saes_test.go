package saes

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/bgallie/saes/cryptors"
)

func TestEncryptKnownAnswer(t *testing.T) {
	tests := []struct {
		plaintext  cryptors.Block
		key        cryptors.Key
		ciphertext cryptors.Block
	}{
		{0x6F6B, 0xA73B, 0x09BE},
		{0x4869, 0x2D55, 0x26C7},
		{0x0000, 0x0000, 0x07B4},
		{0xFFFF, 0xFFFF, 0x5455},
	}
	for _, test := range tests {
		got := Encrypt(test.plaintext, test.key)
		qt.Check(t, qt.Equals(got, test.ciphertext), qt.Commentf("P=%04X K=%04X", test.plaintext, test.key))
		qt.Check(t, qt.Equals(Decrypt(test.ciphertext, test.key), test.plaintext))
	}
}

func TestExpandKey(t *testing.T) {
	qt.Assert(t, qt.Equals(ExpandKey(0xA73B), RoundKeys{0xA73B, 0x1C27, 0x7651}))
	for _, key := range []cryptors.Key{0x0000, 0x1234, 0xA73B, 0xFFFF} {
		first := ExpandKey(key)
		qt.Check(t, qt.Equals(first[0], cryptors.Block(key)))
		qt.Check(t, qt.Equals(ExpandKey(key), first))
	}
}

func TestRoundTripAllBlocks(t *testing.T) {
	keys := []cryptors.Key{0x0000, 0x0001, 0x2D55, 0x8000, 0xA73B, 0xBEEF, 0xFFFF}
	for _, key := range keys {
		for p := 0; p < cryptors.KeySpace; p++ {
			blk := cryptors.Block(p)
			if got := Decrypt(Encrypt(blk, key), key); got != blk {
				t.Fatalf("decrypt(encrypt(%04X, %04X)) = %04X", blk, key, got)
			}
			if got := Encrypt(Decrypt(blk, key), key); got != blk {
				t.Fatalf("encrypt(decrypt(%04X, %04X)) = %04X", blk, key, got)
			}
		}
	}
}

func TestRoundTripAllKeys(t *testing.T) {
	blk := cryptors.Block(0x6F6B)
	for k := 0; k < cryptors.KeySpace; k++ {
		key := cryptors.Key(k)
		if got := Decrypt(Encrypt(blk, key), key); got != blk {
			t.Fatalf("key %04X: round trip gave %04X", key, got)
		}
	}
}

func TestPrimitives(t *testing.T) {
	qt.Check(t, qt.Equals(SubNibbles(0x1234, cryptors.Forward), cryptors.Block(0x4ABD)))
	qt.Check(t, qt.Equals(ShiftRow(0x1234), cryptors.Block(0x1243)))
	qt.Check(t, qt.Equals(MixColumns(0x1234, cryptors.Forward), cryptors.Block(0xD17C)))

	for n := byte(0); n < 16; n++ {
		qt.Check(t, qt.Equals(SubNibble(SubNibble(n, cryptors.Forward), cryptors.Inverse), n))
	}
	for s := 0; s < cryptors.KeySpace; s++ {
		state := cryptors.Block(s)
		if got := MixColumns(MixColumns(state, cryptors.Forward), cryptors.Inverse); got != state {
			t.Fatalf("mix columns did not invert for %04X: %04X", state, got)
		}
		if got := SubNibbles(SubNibbles(state, cryptors.Forward), cryptors.Inverse); got != state {
			t.Fatalf("sub nibbles did not invert for %04X: %04X", state, got)
		}
		if got := ShiftRow(ShiftRow(state)); got != state {
			t.Fatalf("shift row is not an involution for %04X", state)
		}
		if got := AddRoundKey(AddRoundKey(state, 0x5A5A), 0x5A5A); got != state {
			t.Fatalf("add round key is not an involution for %04X", state)
		}
	}
}

func TestCipherCrypter(t *testing.T) {
	var c cryptors.Crypter = New(0xA73B)
	qt.Assert(t, qt.Equals(cryptors.Encrypt(c, 0x6F6B), cryptors.Block(0x09BE)))
	qt.Assert(t, qt.Equals(cryptors.Decrypt(c, 0x09BE), cryptors.Block(0x6F6B)))
	qt.Assert(t, qt.Equals(New(0xA73B).String(), "saes.New(0xA73B)"))
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(uint16(0x6F6B), uint16(0xA73B))
	f.Add(uint16(0), uint16(0))
	f.Fuzz(func(t *testing.T, p, k uint16) {
		blk, key := cryptors.Block(p), cryptors.Key(k)
		if got := Decrypt(Encrypt(blk, key), key); got != blk {
			t.Fatalf("round trip of %04X under %04X gave %04X", blk, key, got)
		}
	})
}
