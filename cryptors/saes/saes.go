// Package saes implements simplified AES: a 16 bit block, 16 bit key
// substitution-permutation network of two and a half rounds.
//
// It is a teaching cipher.  Every key can be found by brute force in a
// fraction of a second.
package saes

import (
	"fmt"

	"github.com/bgallie/saes/cryptors"
)

// Encrypt enciphers one block: round 0 adds K0, round 1 is a full round and
// round 2 skips MixColumns.
func Encrypt(plaintext cryptors.Block, key cryptors.Key) cryptors.Block {
	rk := ExpandKey(key)

	state := AddRoundKey(plaintext, rk[0])

	state = SubNibbles(state, cryptors.Forward)
	state = ShiftRow(state)
	state = MixColumns(state, cryptors.Forward)
	state = AddRoundKey(state, rk[1])

	state = SubNibbles(state, cryptors.Forward)
	state = ShiftRow(state)
	return AddRoundKey(state, rk[2])
}

// Decrypt is the inverse of Encrypt.
func Decrypt(ciphertext cryptors.Block, key cryptors.Key) cryptors.Block {
	rk := ExpandKey(key)

	state := AddRoundKey(ciphertext, rk[2])
	state = ShiftRow(state)
	state = SubNibbles(state, cryptors.Inverse)

	state = AddRoundKey(state, rk[1])
	state = MixColumns(state, cryptors.Inverse)
	state = ShiftRow(state)
	state = SubNibbles(state, cryptors.Inverse)

	return AddRoundKey(state, rk[0])
}

// Cipher is a Crypter bound to a single key.
type Cipher struct {
	key cryptors.Key
}

func New(key cryptors.Key) *Cipher {
	return &Cipher{key: key}
}

func (c *Cipher) Key() cryptors.Key {
	return c.key
}

func (c *Cipher) Apply_F(blk cryptors.Block) cryptors.Block {
	return Encrypt(blk, c.key)
}

func (c *Cipher) Apply_G(blk cryptors.Block) cryptors.Block {
	return Decrypt(blk, c.key)
}

func (c *Cipher) String() string {
	return fmt.Sprintf("saes.New(0x%04X)", uint16(c.key))
}
