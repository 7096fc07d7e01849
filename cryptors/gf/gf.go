// Package gf implements multiplication in GF(2^4) with the reduction
// polynomial x^4 + x + 1.
package gf

// Modulus is x^4 + x + 1 with the x^4 term dropped.
const Modulus = 0x3

// Mul is the full multiplication table; Mul[a][b] == Multiply(a, b).
var Mul [16][16]byte

func init() {
	for a := 0; a < 16; a++ {
		for b := 0; b < 16; b++ {
			Mul[a][b] = Multiply(byte(a), byte(b))
		}
	}
}

// Multiply returns a*b in GF(2^4).  Only the low nibble of each argument is
// used.
func Multiply(a, b byte) byte {
	a &= 0xF
	b &= 0xF
	var result byte
	for i := 0; i < 4; i++ {
		if b&1 == 1 {
			result ^= a
		}
		highBit := a & 0x8
		a = (a << 1) & 0xF
		if highBit != 0 {
			a ^= Modulus
		}
		b >>= 1
	}
	return result
}

// Add returns a+b in GF(2^4).
func Add(a, b byte) byte {
	return (a ^ b) & 0xF
}
