package modes

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/bitops"
	"github.com/bgallie/saes/cryptors/saes"
)

// NewIV returns a random initialization vector.
func NewIV() (cryptors.Block, error) {
	var b [cryptors.CypherBlockBytes]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("modes: generating IV: %w", err)
	}
	return cryptors.Block(binary.BigEndian.Uint16(b[:])), nil
}

// CBCEncrypt chains plaintext blocks under a single saes key:
// C[0] = E(P[0]^iv), C[i] = E(P[i]^C[i-1]).
func CBCEncrypt(plaintext []cryptors.Block, key cryptors.Key, iv cryptors.Block) []cryptors.Block {
	return EncryptCBC(saes.New(key), plaintext, iv)
}

// CBCDecrypt is the inverse of CBCEncrypt.
func CBCDecrypt(ciphertext []cryptors.Block, key cryptors.Key, iv cryptors.Block) []cryptors.Block {
	return DecryptCBC(saes.New(key), ciphertext, iv)
}

// EncryptCBC runs CBC over any Crypter.  Each block depends on the previous
// ciphertext block so a message is processed serially.
func EncryptCBC(ecm cryptors.Crypter, plaintext []cryptors.Block, iv cryptors.Block) []cryptors.Block {
	ciphertext := make([]cryptors.Block, len(plaintext))
	prev := iv
	for i, p := range plaintext {
		prev = ecm.Apply_F(p ^ prev)
		ciphertext[i] = prev
	}
	return ciphertext
}

func DecryptCBC(ecm cryptors.Crypter, ciphertext []cryptors.Block, iv cryptors.Block) []cryptors.Block {
	plaintext := make([]cryptors.Block, len(ciphertext))
	prev := iv
	for i, c := range ciphertext {
		plaintext[i] = ecm.Apply_G(c) ^ prev
		prev = c
	}
	return plaintext
}

// Tamper returns a copy of blocks with one bit of block idx flipped.  Bit 0
// is the least significant bit.
func Tamper(blocks []cryptors.Block, idx int, bit uint) ([]cryptors.Block, error) {
	if idx < 0 || idx >= len(blocks) {
		return nil, fmt.Errorf("modes: block index %d out of range [0, %d)", idx, len(blocks))
	}
	if bit >= cryptors.CypherBlockSize {
		return nil, fmt.Errorf("modes: bit %d out of range [0, %d)", bit, cryptors.CypherBlockSize)
	}
	out := append([]cryptors.Block(nil), blocks...)
	out[idx] = bitops.FlipBit(out[idx], bit)
	return out, nil
}

// Diff returns the indexes at which a and b differ.  Blocks past the end of
// the shorter slice count as different.
func Diff(a, b []cryptors.Block) []int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	var idx []int
	for i := 0; i < n; i++ {
		if i >= len(a) || i >= len(b) || a[i] != b[i] {
			idx = append(idx, i)
		}
	}
	return idx
}
