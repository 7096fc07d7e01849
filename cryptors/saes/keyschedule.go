package saes

import (
	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/bitops"
)

// RoundKeys are the three round keys K0, K1 and K2 derived from one key.
type RoundKeys [3]cryptors.Block

func subWord(w byte) byte {
	return SubNibble(w>>4, cryptors.Forward)<<4 | SubNibble(w, cryptors.Forward)
}

func g(w byte, round int) byte {
	return rcon[round] ^ subWord(bitops.SwapNibbles(w))
}

// ExpandKey derives the round keys for key.
func ExpandKey(key cryptors.Key) RoundKeys {
	w0, w1 := byte(key>>8), byte(key)
	w2 := w0 ^ g(w1, 0)
	w3 := w2 ^ w1
	w4 := w2 ^ g(w3, 1)
	w5 := w4 ^ w3

	return RoundKeys{
		cryptors.Block(key),
		cryptors.Block(w2)<<8 | cryptors.Block(w3),
		cryptors.Block(w4)<<8 | cryptors.Block(w5),
	}
}
