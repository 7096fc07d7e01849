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

	"github.com/bgallie/saes/cryptors/framing"
	"github.com/bgallie/saes/cryptors/mitm"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random known pair for the attack",
	Long: `Draw a random plaintext and key pair, double encrypt the plaintext and print
everything needed to try the attack command against it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		known, keys, err := mitm.Generate()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "plaintext:  %s\n", framing.FormatBlock(known.Plaintext))
		fmt.Fprintf(out, "ciphertext: %s\n", framing.FormatBlock(known.Ciphertext))
		fmt.Fprintf(out, "keys:       %v\n", keys)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
