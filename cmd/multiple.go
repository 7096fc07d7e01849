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

	"github.com/spf13/cobra"

	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/framing"
	"github.com/bgallie/saes/cryptors/modes"
)

// doubleCmd groups the double encryption commands
var doubleCmd = &cobra.Command{
	Use:   "double",
	Short: "Double S-AES with a 32 bit key (K1, K2)",
	Long:  `Double S-AES enciphers with K1 and then with K2: C = E(E(P, K1), K2).`,
}

// tripleCmd groups the triple encryption commands
var tripleCmd = &cobra.Command{
	Use:   "triple",
	Short: "Triple S-AES (EDE) with a 32 or 48 bit key",
	Long: `Triple S-AES runs encrypt-decrypt-encrypt: C = E(D(E(P, K1), K2), K3).
Without --key3 the 32 bit variant is used and K3 is K1.`,
}

func init() {
	rootCmd.AddCommand(doubleCmd)
	rootCmd.AddCommand(tripleCmd)
	for _, parent := range []*cobra.Command{doubleCmd, tripleCmd} {
		hexFlag(parent.PersistentFlags(), "key1", "", "first 16 bit key as 4 hex digits")
		hexFlag(parent.PersistentFlags(), "key2", "", "second 16 bit key as 4 hex digits")
	}
	hexFlag(tripleCmd.PersistentFlags(), "key3", "", "third 16 bit key; selects the 48 bit variant")

	doubleCmd.AddCommand(multipleCommand("encrypt", doubleCrypter, modes.EncryptBlocks))
	doubleCmd.AddCommand(multipleCommand("decrypt", doubleCrypter, modes.DecryptBlocks))
	tripleCmd.AddCommand(multipleCommand("encrypt", tripleCrypter, modes.EncryptBlocks))
	tripleCmd.AddCommand(multipleCommand("decrypt", tripleCrypter, modes.DecryptBlocks))
}

type crypterFunc func(cmd *cobra.Command) (cryptors.Crypter, error)

func multipleCommand(name string, build crypterFunc, fn func(cryptors.Crypter, []cryptors.Block) []cryptors.Block) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [flags] block...",
		Short: name + " 16 bit blocks given as hex tokens",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := blocksFromArgs(args)
			if err != nil {
				return err
			}
			ecm, err := build(cmd)
			if err != nil {
				return err
			}
			logger.DEBUG.Printf("%s %s: %d block(s) with %v", cmd.Parent().Name(), name, len(blocks), ecm)
			fmt.Fprintln(cmd.OutOrStdout(), framing.FormatBlocks(fn(ecm, blocks)))
			return nil
		},
	}
}

func doubleCrypter(cmd *cobra.Command) (cryptors.Crypter, error) {
	k1, err := resolveKey(cmd, "key1")
	if err != nil {
		return nil, err
	}
	k2, err := resolveKey(cmd, "key2")
	if err != nil {
		return nil, err
	}
	return modes.Double(k1, k2), nil
}

func tripleCrypter(cmd *cobra.Command) (cryptors.Crypter, error) {
	k1, err := resolveKey(cmd, "key1")
	if err != nil {
		return nil, err
	}
	k2, err := resolveKey(cmd, "key2")
	if err != nil {
		return nil, err
	}
	if k3, ok := optionalKey(cmd, "key3"); ok {
		return modes.Triple48(k1, k2, k3), nil
	}
	return modes.Triple32(k1, k2), nil
}
