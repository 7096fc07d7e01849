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

	"github.com/bgallie/saes/cryptors/framing"
	"github.com/bgallie/saes/cryptors/modes"
	"github.com/bgallie/saes/cryptors/saes"
)

// textCmd groups the text commands
var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Encrypt and decrypt text two bytes at a time",
	Long: `Text is packed two bytes per block (odd lengths are padded with a zero byte)
and each block is encrypted on its own.  On decryption every zero low byte is
dropped as padding, and bytes that are not valid text are shown as hex.`,
}

var textEncryptCmd = &cobra.Command{
	Use:   "encrypt [flags] text...",
	Short: "Encrypt text into hex blocks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec, err := textCodec()
		if err != nil {
			return err
		}
		blocks, err := codec.TextToBlocks(strings.Join(args, " "))
		if err != nil {
			return err
		}
		key, err := resolveKey(cmd, "key")
		if err != nil {
			return err
		}
		logger.DEBUG.Printf("text encrypt: %d block(s) as %s", len(blocks), codec)
		fmt.Fprintln(cmd.OutOrStdout(), framing.FormatBlocks(modes.EncryptBlocks(saes.New(key), blocks)))
		return nil
	},
}

var textDecryptCmd = &cobra.Command{
	Use:   "decrypt [flags] block...",
	Short: "Decrypt hex blocks into text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec, err := textCodec()
		if err != nil {
			return err
		}
		blocks, err := blocksFromArgs(args)
		if err != nil {
			return err
		}
		key, err := resolveKey(cmd, "key")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), codec.BlocksToText(modes.DecryptBlocks(saes.New(key), blocks)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(textCmd)
	textCmd.AddCommand(textEncryptCmd)
	textCmd.AddCommand(textDecryptCmd)
	hexFlag(textEncryptCmd.Flags(), "key", "k", "16 bit key as 4 hex digits")
	hexFlag(textDecryptCmd.Flags(), "key", "k", "16 bit key as 4 hex digits")
}
