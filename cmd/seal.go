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
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/modes"
	"github.com/bgallie/saes/cryptors/saes"
)

var outputFileName string

// sealCmd represents the seal command
var sealCmd = &cobra.Command{
	Use:   "seal [flags] [file]",
	Short: "Encrypt a file with S-AES in CBC mode",
	Long: `Encrypt a file (or standard input) with S-AES in CBC mode.  With --key2 the
two key triple S-AES is used, and with --key3 as well the three key variant.
The output is PEM armored unless --armor selects ascii85 or binary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return seal(cmd, args)
	},
}

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:        "encode [flags] [file]",
	Short:      "Encrypt a file with S-AES in CBC mode",
	Long:       `[DEPRECATED] Encrypt a file (or standard input) with S-AES in CBC mode.`,
	Deprecated: "use \"seal\" instead.",
	Args:       cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return seal(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(encodeCmd)
	hexFlag(sealCmd.Flags(), "key", "k", "16 bit key as 4 hex digits")
	hexFlag(sealCmd.Flags(), "key2", "", "second key; selects triple S-AES")
	hexFlag(sealCmd.Flags(), "key3", "", "third key; selects three key triple S-AES")
	hexFlag(sealCmd.Flags(), "iv", "", "initialization vector (default is random)")
	sealCmd.Flags().StringVarP(&outputFileName, "output", "o", "", `output file ("-" for stdout, default is the input file with ".saes" appended)`)
	sealCmd.Flags().StringP("armor", "a", "pem", "output armor: pem, ascii85 or binary")
	sealCmd.Flags().BoolP("compress", "c", false, "compress input file using flate")
	cobra.CheckErr(viper.BindPFlag("armor", sealCmd.Flags().Lookup("armor")))
	cobra.CheckErr(viper.BindPFlag("compress", sealCmd.Flags().Lookup("compress")))
	encodeCmd.Flags().AddFlagSet(sealCmd.Flags())
}

// sealCrypter builds the cipher selected by the key flags and returns its
// header name.
func sealCrypter(cmd *cobra.Command) (cryptors.Crypter, string, error) {
	key, err := resolveKey(cmd, "key")
	if err != nil {
		return nil, "", err
	}
	key2, ok2 := optionalKey(cmd, "key2")
	key3, ok3 := optionalKey(cmd, "key3")
	switch {
	case ok3 && !ok2:
		return nil, "", fmt.Errorf("--key3 needs --key2")
	case ok3:
		return modes.Triple48(key, key2, key3), cipherTriple48, nil
	case ok2:
		return modes.Triple32(key, key2), cipherTriple32, nil
	}
	return saes.New(key), cipherSingle, nil
}

func seal(cmd *cobra.Command, args []string) error {
	var inputFileName string
	if len(args) > 0 {
		inputFileName = args[0]
	}
	armor := strings.ToLower(viper.GetString("armor"))
	switch armor {
	case "pem", "ascii85", "binary":
	default:
		return fmt.Errorf("unknown armor %q: want pem, ascii85 or binary", armor)
	}
	ecm, cipherName, err := sealCrypter(cmd)
	if err != nil {
		return err
	}
	iv, ok := optionalKey(cmd, "iv")
	if !ok {
		blk, err := modes.NewIV()
		if err != nil {
			return err
		}
		iv = cryptors.Key(blk)
	}

	fin, err := openInput(cmd, inputFileName)
	if err != nil {
		return err
	}
	defer fin.Close()

	// Stage the (compressed) payload in a temporary file to learn its size
	// before the header is written.
	hdr := &sealHeader{
		ApiLevel:    saesApiLevel,
		Armor:       armor,
		Compression: viper.GetBool("compress"),
		Cipher:      cipherName,
		IV:          cryptors.Block(iv),
	}
	if inputFileName != "-" {
		hdr.FileName = inputFileName
	}
	tmpFile, err := afero.TempFile(appFs, "", "saes*")
	if err != nil {
		return err
	}
	defer appFs.Remove(tmpFile.Name())
	defer tmpFile.Close()
	var src io.Reader = fin
	if hdr.Compression {
		src = flate.ToFlate(fin)
	}
	if hdr.FileSize, err = io.Copy(tmpFile, src); checkError(err) != nil {
		return err
	}
	if _, err = tmpFile.Seek(0, io.SeekStart); err != nil {
		return err
	}
	logger.INFO.Printf("sealing %d byte(s) with %s", hdr.FileSize, cipherName)

	name := outputFileName
	if len(name) == 0 && len(inputFileName) > 0 && inputFileName != "-" {
		name = inputFileName + ".saes"
	}
	fout, err := createOutput(cmd, name)
	if err != nil {
		return err
	}
	defer fout.Close()

	encIn := cipherHelper(tmpFile, ecm, hdr.IV, cryptors.Forward, -1)
	defer encIn.Close()
	switch armor {
	case "pem":
		_, err = io.Copy(fout, pem.ToPem(bufio.NewReader(encIn), hdr.pemBlock()))
	case "ascii85":
		if _, err = io.WriteString(fout, hdr.line()); err != nil {
			return err
		}
		_, err = io.Copy(fout, lines.SplitToLines(ascii85.ToASCII85(encIn)))
	default:
		if _, err = io.WriteString(fout, hdr.line()); err != nil {
			return err
		}
		_, err = io.Copy(fout, encIn)
	}
	return checkError(err)
}
