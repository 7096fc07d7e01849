package modes

import (
	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/framing"
	"github.com/bgallie/saes/cryptors/saes"
)

// EncryptBlocks enciphers each block independently.  The stages of ecm run
// as a pipeline, one goroutine per stage.
func EncryptBlocks(ecm cryptors.Crypter, blocks []cryptors.Block) []cryptors.Block {
	left, right := cryptors.CreateEncryptMachine(Stages(ecm)...)
	return runMachine(left, right, blocks)
}

// DecryptBlocks is the inverse of EncryptBlocks.
func DecryptBlocks(ecm cryptors.Crypter, blocks []cryptors.Block) []cryptors.Block {
	left, right := cryptors.CreateDecryptMachine(Stages(ecm)...)
	return runMachine(left, right, blocks)
}

func runMachine(left, right chan cryptors.CypherBlock, blocks []cryptors.Block) []cryptors.Block {
	go func() {
		for _, b := range blocks {
			left <- cryptors.CypherBlock{Length: cryptors.CypherBlockBytes, CypherBlock: b}
		}
		// shutdown the machine by processing a CypherBlock with zero
		// value length field.
		left <- cryptors.CypherBlock{}
	}()

	out := make([]cryptors.Block, 0, len(blocks))
	for blk := range right {
		if blk.Length <= 0 {
			break
		}
		out = append(out, blk.CypherBlock)
	}
	return out
}

// EncryptText frames text as UTF-8 blocks and enciphers each one under key.
func EncryptText(text string, key cryptors.Key) []cryptors.Block {
	return EncryptBlocks(saes.New(key), framing.TextToBlocks(text))
}

// DecryptText reverses EncryptText.  Zero low bytes are dropped as padding
// and bytes that are not valid UTF-8 come back as a hex dump.
func DecryptText(blocks []cryptors.Block, key cryptors.Key) string {
	return framing.BlocksToText(DecryptBlocks(saes.New(key), blocks))
}
