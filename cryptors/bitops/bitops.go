// bitops project bitops.go
package bitops

import "github.com/bgallie/saes/cryptors"

// Nibble returns nibble idx (0 is the most significant) of blk.
func Nibble(blk cryptors.Block, idx int) byte {
	return byte(blk>>(4*(3-idx))) & 0xF
}

// SetNibble replaces nibble idx of blk with the low four bits of n.
func SetNibble(blk cryptors.Block, idx int, n byte) cryptors.Block {
	shift := uint(4 * (3 - idx))
	return blk&^(0xF<<shift) | cryptors.Block(n&0xF)<<shift
}

// Nibbles splits blk into its four nibbles in row-major order.
func Nibbles(blk cryptors.Block) [4]byte {
	return [4]byte{Nibble(blk, 0), Nibble(blk, 1), Nibble(blk, 2), Nibble(blk, 3)}
}

// FromNibbles is the inverse of Nibbles.
func FromNibbles(n [4]byte) cryptors.Block {
	return cryptors.Block(n[0]&0xF)<<12 | cryptors.Block(n[1]&0xF)<<8 |
		cryptors.Block(n[2]&0xF)<<4 | cryptors.Block(n[3]&0xF)
}

// SwapNibbles exchanges the high and low nibble of an 8 bit word.
func SwapNibbles(w byte) byte {
	return w<<4 | w>>4
}

func SetBit(blk cryptors.Block, bit uint) cryptors.Block {
	return blk | 1<<(bit&15)
}

func ClrBit(blk cryptors.Block, bit uint) cryptors.Block {
	return blk &^ (1 << (bit & 15))
}

func GetBit(blk cryptors.Block, bit uint) bool {
	return blk&(1<<(bit&15)) != 0
}

func FlipBit(blk cryptors.Block, bit uint) cryptors.Block {
	return blk ^ 1<<(bit&15)
}
