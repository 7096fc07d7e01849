// cryptor
package cryptors

const (
	BitsPerByte      = 8
	BitsPerNibble    = 4
	CypherBlockSize  = 16
	CypherBlockBytes = CypherBlockSize / BitsPerByte
	NibblesPerBlock  = CypherBlockSize / BitsPerNibble
	KeySpace         = 1 << CypherBlockSize
)

// Block is a 16 bit cipher state.  It is read as a 2x2 matrix of nibbles in
// row-major order: nibble 0 is bits 15-12, nibble 3 is bits 3-0.
type Block uint16

// Key is a 16 bit cipher key.
type Key uint16

// Direction selects the forward or the inverse variant of a table or matrix.
type Direction int

const (
	Forward Direction = iota
	Inverse
)

func (d Direction) String() string {
	if d == Inverse {
		return "inverse"
	}
	return "forward"
}

// CypherBlock is the data processed by the crypter machines.  It consists
// of the number of payload bytes in the block and the block itself.  A
// CypherBlock with a Length of zero shuts a machine down.
type CypherBlock struct {
	Length      int8
	CypherBlock Block
}

// Crypter is a stage of a cipher machine.  Apply_F enciphers a block and
// Apply_G undoes Apply_F.
type Crypter interface {
	Apply_F(Block) Block
	Apply_G(Block) Block
}

func Encrypt(ecm Crypter, blk Block) Block {
	return ecm.Apply_F(blk)
}

func Decrypt(ecm Crypter, blk Block) Block {
	return ecm.Apply_G(blk)
}

// Chain runs its crypters in order on Apply_F and in reverse order on
// Apply_G.
type Chain []Crypter

func (c Chain) Apply_F(blk Block) Block {
	for _, ecm := range c {
		blk = ecm.Apply_F(blk)
	}
	return blk
}

func (c Chain) Apply_G(blk Block) Block {
	for idx := len(c) - 1; idx >= 0; idx-- {
		blk = c[idx].Apply_G(blk)
	}
	return blk
}

// Inverted swaps the roles of Apply_F and Apply_G so that a decrypting
// stage can sit inside an encrypting chain (the D in EDE).
type Inverted struct {
	Crypter
}

func (i Inverted) Apply_F(blk Block) Block {
	return i.Crypter.Apply_G(blk)
}

func (i Inverted) Apply_G(blk Block) Block {
	return i.Crypter.Apply_F(blk)
}

func EncryptMachine(ecm Crypter, left chan CypherBlock) chan CypherBlock {
	right := make(chan CypherBlock)
	go func(ecm Crypter, left chan CypherBlock, right chan CypherBlock) {
		for {
			inp := <-left
			if inp.Length <= 0 {
				right <- inp
				break
			}

			inp.CypherBlock = ecm.Apply_F(inp.CypherBlock)
			right <- inp
		}
	}(ecm, left, right)

	return right
}

func DecryptMachine(ecm Crypter, left chan CypherBlock) chan CypherBlock {
	right := make(chan CypherBlock)
	go func(ecm Crypter, left chan CypherBlock, right chan CypherBlock) {
		for {
			inp := <-left
			if inp.Length <= 0 {
				right <- inp
				break
			}

			inp.CypherBlock = ecm.Apply_G(inp.CypherBlock)
			right <- inp
		}
	}(ecm, left, right)

	return right
}

// CreateEncryptMachine links one goroutine per crypter so that blocks flow
// left to right through every stage.  Send a CypherBlock with a zero Length
// on left to stop the machine; it is echoed on right once every stage has
// exited.
func CreateEncryptMachine(ecms ...Crypter) (left chan CypherBlock, right chan CypherBlock) {
	if len(ecms) == 0 {
		panic("you must give at least one encryption device!")
	}

	left = make(chan CypherBlock)
	right = EncryptMachine(ecms[0], left)
	for idx := 1; idx < len(ecms); idx++ {
		right = EncryptMachine(ecms[idx], right)
	}

	return
}

func CreateDecryptMachine(ecms ...Crypter) (left chan CypherBlock, right chan CypherBlock) {
	if len(ecms) == 0 {
		panic("you must give at least one decryption device!")
	}

	idx := len(ecms) - 1
	left = make(chan CypherBlock)
	right = DecryptMachine(ecms[idx], left)
	for idx--; idx >= 0; idx-- {
		right = DecryptMachine(ecms[idx], right)
	}

	return
}
