// Package modes builds multiple encryption and cipher block chaining on top
// of the single block saes cipher.
package modes

import (
	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/saes"
)

// DoubleEncrypt returns E(E(p, k1), k2).
func DoubleEncrypt(p cryptors.Block, k1, k2 cryptors.Key) cryptors.Block {
	return saes.Encrypt(saes.Encrypt(p, k1), k2)
}

// DoubleDecrypt returns D(D(c, k2), k1).
func DoubleDecrypt(c cryptors.Block, k1, k2 cryptors.Key) cryptors.Block {
	return saes.Decrypt(saes.Decrypt(c, k2), k1)
}

// TripleEncrypt32 is two key EDE: E(D(E(p, k1), k2), k1).
func TripleEncrypt32(p cryptors.Block, k1, k2 cryptors.Key) cryptors.Block {
	return TripleEncrypt48(p, k1, k2, k1)
}

// TripleDecrypt32 returns D(E(D(c, k1), k2), k1).
func TripleDecrypt32(c cryptors.Block, k1, k2 cryptors.Key) cryptors.Block {
	return TripleDecrypt48(c, k1, k2, k1)
}

// TripleEncrypt48 is three key EDE: E(D(E(p, k1), k2), k3).
func TripleEncrypt48(p cryptors.Block, k1, k2, k3 cryptors.Key) cryptors.Block {
	return saes.Encrypt(saes.Decrypt(saes.Encrypt(p, k1), k2), k3)
}

// TripleDecrypt48 returns D(E(D(c, k3), k2), k1).
func TripleDecrypt48(c cryptors.Block, k1, k2, k3 cryptors.Key) cryptors.Block {
	return saes.Decrypt(saes.Encrypt(saes.Decrypt(c, k3), k2), k1)
}

// Double returns a Crypter performing double encryption with k1 then k2.
func Double(k1, k2 cryptors.Key) cryptors.Crypter {
	return cryptors.Chain{saes.New(k1), saes.New(k2)}
}

// Triple32 returns a two key EDE Crypter.
func Triple32(k1, k2 cryptors.Key) cryptors.Crypter {
	return Triple48(k1, k2, k1)
}

// Triple48 returns a three key EDE Crypter.
func Triple48(k1, k2, k3 cryptors.Key) cryptors.Crypter {
	return cryptors.Chain{saes.New(k1), cryptors.Inverted{Crypter: saes.New(k2)}, saes.New(k3)}
}

// Stages returns the individual crypters of a multiple encryption Crypter
// so that each stage can run in its own goroutine of a cipher machine.
func Stages(c cryptors.Crypter) []cryptors.Crypter {
	if chain, ok := c.(cryptors.Chain); ok {
		return chain
	}
	return []cryptors.Crypter{c}
}
