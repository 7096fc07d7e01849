package saes

import (
	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/bitops"
	"github.com/bgallie/saes/cryptors/gf"
)

// SubNibble passes one nibble through the selected S-box.
func SubNibble(n byte, dir cryptors.Direction) byte {
	n &= 0xF
	return sBox[dir][n>>2][n&0x3]
}

// SubNibbles substitutes each of the four nibbles of state independently.
func SubNibbles(state cryptors.Block, dir cryptors.Direction) cryptors.Block {
	n := bitops.Nibbles(state)
	for i := range n {
		n[i] = SubNibble(n[i], dir)
	}
	return bitops.FromNibbles(n)
}

// ShiftRow swaps the two nibbles of the second row.  It is its own inverse.
func ShiftRow(state cryptors.Block) cryptors.Block {
	return state&0xFF00 | (state&0x000F)<<4 | (state&0x00F0)>>4
}

// MixColumns left-multiplies the 2x2 state by the selected mix matrix.
func MixColumns(state cryptors.Block, dir cryptors.Direction) cryptors.Block {
	m := &mixMatrix[dir]
	s := bitops.Nibbles(state)
	// s[0] s[1]
	// s[2] s[3]
	return bitops.FromNibbles([4]byte{
		gf.Mul[m[0][0]][s[0]] ^ gf.Mul[m[0][1]][s[2]],
		gf.Mul[m[0][0]][s[1]] ^ gf.Mul[m[0][1]][s[3]],
		gf.Mul[m[1][0]][s[0]] ^ gf.Mul[m[1][1]][s[2]],
		gf.Mul[m[1][0]][s[1]] ^ gf.Mul[m[1][1]][s[3]],
	})
}

// AddRoundKey XORs the round key into the state.
func AddRoundKey(state cryptors.Block, roundKey cryptors.Block) cryptors.Block {
	return state ^ roundKey
}
