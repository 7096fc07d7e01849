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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/framing"
	"github.com/bgallie/saes/cryptors/modes"
)

var (
	cbcBlocks bool
	tamperIdx int
	tamperBit uint
)

// cbcCmd groups the CBC commands
var cbcCmd = &cobra.Command{
	Use:   "cbc",
	Short: "S-AES in cipher block chaining mode",
	Long: `CBC chains every block to the ciphertext before it:
C[0] = E(P[0] xor IV), C[i] = E(P[i] xor C[i-1]).
Input is text unless --blocks is given, in which case it is hex tokens.`,
}

var cbcEncryptCmd = &cobra.Command{
	Use:   "encrypt [flags] text...",
	Short: "Encrypt text or hex blocks in CBC mode",
	Long: `Encrypt text or hex blocks in CBC mode.  Without --iv a random IV is drawn
and written to stderr; it is needed to decrypt.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plaintext, err := cbcInput(args)
		if err != nil {
			return err
		}
		key, err := resolveKey(cmd, "key")
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
			fmt.Fprintf(cmd.ErrOrStderr(), "IV: %s\n", framing.FormatBlock(blk))
		}
		ciphertext := modes.CBCEncrypt(plaintext, key, cryptors.Block(iv))
		fmt.Fprintln(cmd.OutOrStdout(), framing.FormatBlocks(ciphertext))
		return nil
	},
}

var cbcDecryptCmd = &cobra.Command{
	Use:   "decrypt [flags] block...",
	Short: "Decrypt hex blocks in CBC mode",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ciphertext, err := blocksFromArgs(args)
		if err != nil {
			return err
		}
		key, iv, err := cbcKeys(cmd)
		if err != nil {
			return err
		}
		return cbcOutput(cmd, modes.CBCDecrypt(ciphertext, key, iv))
	},
}

var cbcTamperCmd = &cobra.Command{
	Use:   "tamper [flags] block...",
	Short: "Flip one ciphertext bit and show how the damage spreads",
	Long: `Flip bit --bit of ciphertext block --block, decrypt both the original and
the tampered ciphertext, and report which plaintext blocks changed.  In CBC
mode the tampered block decrypts to garbage and the same bit flips in the
next block; every other block is untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ciphertext, err := blocksFromArgs(args)
		if err != nil {
			return err
		}
		key, iv, err := cbcKeys(cmd)
		if err != nil {
			return err
		}
		tampered, err := modes.Tamper(ciphertext, tamperIdx, tamperBit)
		if err != nil {
			return err
		}
		before := modes.CBCDecrypt(ciphertext, key, iv)
		after := modes.CBCDecrypt(tampered, key, iv)
		changed := modes.Diff(before, after)
		idx := make([]string, len(changed))
		for i, c := range changed {
			idx[i] = fmt.Sprint(c)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ciphertext: %s\n", framing.FormatBlocks(ciphertext))
		fmt.Fprintf(out, "tampered:   %s\n", framing.FormatBlocks(tampered))
		fmt.Fprintf(out, "plaintext:  %s\n", framing.FormatBlocks(before))
		fmt.Fprintf(out, "corrupted:  %s\n", framing.FormatBlocks(after))
		fmt.Fprintf(out, "changed blocks: %s\n", strings.Join(idx, " "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cbcCmd)
	cbcCmd.AddCommand(cbcEncryptCmd)
	cbcCmd.AddCommand(cbcDecryptCmd)
	cbcCmd.AddCommand(cbcTamperCmd)
	hexFlag(cbcCmd.PersistentFlags(), "key", "k", "16 bit key as 4 hex digits")
	hexFlag(cbcCmd.PersistentFlags(), "iv", "", "16 bit initialization vector as 4 hex digits")
	cbcCmd.PersistentFlags().BoolVarP(&cbcBlocks, "blocks", "b", false, "plaintext is hex blocks instead of text")
	cbcTamperCmd.Flags().IntVar(&tamperIdx, "block", 0, "index of the ciphertext block to tamper with")
	cbcTamperCmd.Flags().UintVar(&tamperBit, "bit", 0, "bit to flip, 0 is the least significant")
}

// cbcKeys returns the key and the IV, which decryption cannot do without.
func cbcKeys(cmd *cobra.Command) (cryptors.Key, cryptors.Block, error) {
	key, err := resolveKey(cmd, "key")
	if err != nil {
		return 0, 0, err
	}
	iv, ok := optionalKey(cmd, "iv")
	if !ok {
		return 0, 0, fmt.Errorf("you must supply --iv")
	}
	return key, cryptors.Block(iv), nil
}

func cbcInput(args []string) ([]cryptors.Block, error) {
	if cbcBlocks {
		return blocksFromArgs(args)
	}
	codec, err := textCodec()
	if err != nil {
		return nil, err
	}
	return codec.TextToBlocks(strings.Join(args, " "))
}

func cbcOutput(cmd *cobra.Command, plaintext []cryptors.Block) error {
	if cbcBlocks {
		fmt.Fprintln(cmd.OutOrStdout(), framing.FormatBlocks(plaintext))
		return nil
	}
	codec, err := textCodec()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), codec.BlocksToText(plaintext))
	return nil
}
