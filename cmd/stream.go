/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/modes"
)

var errTruncated = errors.New("ciphertext is truncated")

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// openInput opens the named file on appFs.  An empty name or "-" reads
// the command's standard input.
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if len(name) == 0 || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return appFs.Open(name)
}

// createOutput creates the named file on appFs.  An empty name or "-"
// writes to the command's standard output.
func createOutput(cmd *cobra.Command, name string) (io.WriteCloser, error) {
	if len(name) == 0 || name == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	return appFs.Create(name)
}

// checkError ignores the end of file errors a pipe reports when its writer
// is done.
func checkError(e error) error {
	if e == io.EOF || e == io.ErrUnexpectedEOF {
		return nil
	}
	return e
}

/*
	cipherHelper runs the bytes read from rdr through a cipher machine built
	from ecm in CBC mode and returns a PipeReader holding the result.  The
	bytes are packed two to a block; an odd final byte travels in a block
	with a Length of one and is padded with a zero byte.  When decrypting,
	size limits the output to the length of the sealed payload; a negative
	size means no limit.
*/
func cipherHelper(rdr io.Reader, ecm cryptors.Crypter, iv cryptors.Block, dir cryptors.Direction, size int64) *io.PipeReader {
	var leftMost, rightMost chan cryptors.CypherBlock
	if dir == cryptors.Forward {
		leftMost, rightMost = cryptors.CreateEncryptMachine(modes.Stages(ecm)...)
	} else {
		leftMost, rightMost = cryptors.CreateDecryptMachine(modes.Stages(ecm)...)
	}
	rRdr, rWrtr := io.Pipe()

	go func() {
		var err error
		defer func() {
			rWrtr.CloseWithError(err)
		}()
		defer func() {
			// shutdown the cipher machine by processing a CypherBlock with
			// zero value length field.
			leftMost <- cryptors.CypherBlock{}
			<-rightMost
		}()

		prev := iv
		remaining := size
		var b [cryptors.CypherBlockBytes]byte
		for remaining != 0 {
			var cnt int
			cnt, err = io.ReadFull(rdr, b[:])
			switch {
			case cnt == 0 && err == io.EOF && dir == cryptors.Inverse && remaining > 0:
				err = errTruncated
				return
			case cnt == 0:
				err = checkError(err)
				return
			case err == io.ErrUnexpectedEOF && dir == cryptors.Inverse:
				err = errTruncated
				return
			case err == io.ErrUnexpectedEOF:
				b[cnt] = 0
			case err != nil:
				return
			}

			blk := cryptors.CypherBlock{
				Length:      int8(cnt),
				CypherBlock: cryptors.Block(binary.BigEndian.Uint16(b[:])),
			}
			if dir == cryptors.Forward {
				blk.CypherBlock ^= prev
				leftMost <- blk
				blk = <-rightMost
				prev = blk.CypherBlock
			} else {
				ct := blk.CypherBlock
				leftMost <- blk
				blk = <-rightMost
				blk.CypherBlock ^= prev
				prev = ct
			}

			binary.BigEndian.PutUint16(b[:], uint16(blk.CypherBlock))
			out := b[:]
			if remaining > 0 {
				if remaining < int64(len(out)) {
					out = out[:remaining]
				}
				remaining -= int64(len(out))
			}
			if _, err = rWrtr.Write(out); err != nil {
				return
			}
		}
		// Drain anything past the payload so upstream filters can finish.
		_, err = io.Copy(io.Discard, rdr)
	}()

	return rRdr
}
