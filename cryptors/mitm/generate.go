package mitm

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/modes"
)

// Generate draws a random plaintext and key pair and returns the known pair
// an attacker would observe together with the keys that produced it.
func Generate() (KnownPair, KeyPair, error) {
	var b [3 * cryptors.CypherBlockBytes]byte
	if _, err := rand.Read(b[:]); err != nil {
		return KnownPair{}, KeyPair{}, fmt.Errorf("mitm: generating test pair: %w", err)
	}
	p := cryptors.Block(binary.BigEndian.Uint16(b[0:]))
	kp := KeyPair{
		K1: cryptors.Key(binary.BigEndian.Uint16(b[2:])),
		K2: cryptors.Key(binary.BigEndian.Uint16(b[4:])),
	}
	return KnownPair{Plaintext: p, Ciphertext: modes.DoubleEncrypt(p, kp.K1, kp.K2)}, kp, nil
}
