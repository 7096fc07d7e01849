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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"

	"github.com/bgallie/saes/cryptors"
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open [flags] [file]",
	Short: "Decrypt a file sealed by the seal command",
	Long: `Decrypt a file (or standard input) sealed by the seal command.  The cipher,
IV and armor are read from the file; only the keys must be supplied.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return open(cmd, args)
	},
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:        "decode [flags] [file]",
	Short:      "Decrypt a file sealed by the seal command",
	Long:       `[DEPRECATED] Decrypt a file (or standard input) sealed by the seal command.`,
	Deprecated: "use \"open\" instead.",
	Args:       cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return open(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(decodeCmd)
	hexFlag(openCmd.Flags(), "key", "k", "16 bit key as 4 hex digits")
	hexFlag(openCmd.Flags(), "key2", "", "second key of a triple S-AES file")
	hexFlag(openCmd.Flags(), "key3", "", "third key of a three key triple S-AES file")
	openCmd.Flags().StringP("output", "o", "", `output file ("-" for stdout, default is the input file without ".saes")`)
	decodeCmd.Flags().AddFlagSet(openCmd.Flags())
}

// readHeader reads the PEM or line header of a sealed file and returns it
// with a reader positioned at the ciphertext.
func readHeader(bRdr *bufio.Reader) (*sealHeader, io.Reader, error) {
	b, err := bRdr.Peek(5)
	if err != nil {
		return nil, nil, fmt.Errorf("not a sealed file: %w", err)
	}
	if string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		hdr, err := headerFromPem(blck)
		if err != nil {
			return nil, nil, err
		}
		return hdr, pRdr, nil
	}
	line, err := bRdr.ReadString('\n')
	if err != nil {
		return nil, nil, fmt.Errorf("not a sealed file: %w", err)
	}
	hdr, err := parseHeaderLine(line)
	if err != nil {
		return nil, nil, err
	}
	if hdr.Armor == "ascii85" {
		return hdr, ascii85.FromASCII85(lines.CombineLines(bRdr)), nil
	}
	return hdr, bRdr, nil
}

func open(cmd *cobra.Command, args []string) error {
	var inputFileName string
	if len(args) > 0 {
		inputFileName = args[0]
	}
	fin, err := openInput(cmd, inputFileName)
	if err != nil {
		return err
	}
	defer fin.Close()

	hdr, aRdr, err := readHeader(bufio.NewReader(fin))
	if err != nil {
		return err
	}
	if hdr.ApiLevel != saesApiLevel {
		return fmt.Errorf("API Level mismatch. FileApiLevel: %d, SaesApiLevel: %d", hdr.ApiLevel, saesApiLevel)
	}
	names, err := hdr.keyNames()
	if err != nil {
		return err
	}
	keys := make([]cryptors.Key, len(names))
	for i, name := range names {
		if keys[i], err = resolveKey(cmd, name); err != nil {
			return err
		}
	}
	ecm, err := hdr.crypter(keys...)
	if err != nil {
		return err
	}
	logger.INFO.Printf("opening %d byte(s) sealed with %s", hdr.FileSize, hdr.Cipher)

	name, _ := cmd.Flags().GetString("output")
	if len(name) == 0 {
		if strings.HasSuffix(inputFileName, ".saes") {
			name = strings.TrimSuffix(inputFileName, ".saes")
		} else if inputFileName != "-" {
			name = hdr.outputName()
		}
	}
	fout, err := createOutput(cmd, name)
	if err != nil {
		return err
	}
	defer fout.Close()

	decRdr := cipherHelper(aRdr, ecm, hdr.IV, cryptors.Inverse, hdr.FileSize)
	defer decRdr.Close()
	var rdr io.Reader = decRdr
	if hdr.Compression {
		rdr = flate.FromFlate(decRdr)
	}
	_, err = io.Copy(fout, rdr)
	return checkError(err)
}
