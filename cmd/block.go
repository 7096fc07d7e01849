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
	"github.com/bgallie/saes/cryptors/saes"
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [flags] block...",
	Short: "Encrypt 16 bit blocks with S-AES",
	Long: `Encrypt one or more 16 bit blocks, given as hex tokens, with a single S-AES key.
Each block is encrypted independently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBlocks(cmd, args, modes.EncryptBlocks)
	},
}

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [flags] block...",
	Short: "Decrypt 16 bit blocks with S-AES",
	Long:  `Decrypt one or more 16 bit blocks, given as hex tokens, with a single S-AES key.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBlocks(cmd, args, modes.DecryptBlocks)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	hexFlag(encryptCmd.Flags(), "key", "k", "16 bit key as 4 hex digits")
	hexFlag(decryptCmd.Flags(), "key", "k", "16 bit key as 4 hex digits")
}

func runBlocks(cmd *cobra.Command, args []string, fn func(cryptors.Crypter, []cryptors.Block) []cryptors.Block) error {
	blocks, err := blocksFromArgs(args)
	if err != nil {
		return err
	}
	key, err := resolveKey(cmd, "key")
	if err != nil {
		return err
	}
	logger.DEBUG.Printf("%s %d block(s) with key %04X", cmd.Name(), len(blocks), uint16(key))
	fmt.Fprintln(cmd.OutOrStdout(), framing.FormatBlocks(fn(saes.New(key), blocks)))
	return nil
}

// blocksFromArgs parses every argument as a list of hex tokens.
func blocksFromArgs(args []string) ([]cryptors.Block, error) {
	return framing.ParseBlocks(strings.Join(args, " "))
}
