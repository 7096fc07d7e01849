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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/bgallie/saes/cryptors/framing"
	"github.com/bgallie/saes/cryptors/mitm"
)

const progressSteps = 1000

var (
	workers     int
	verifyPairs []string
	limit       int
)

// attackCmd represents the attack command
var attackCmd = &cobra.Command{
	Use:   "attack",
	Short: "Recover double S-AES keys with a meet-in-the-middle attack",
	Long: `Given a plaintext block and its double S-AES encryption, find every key pair
(K1, K2) with D(C, K2) == E(P, K1).  The true keys are always among the
candidates.  Each --verify P:C pair removes the candidates that do not also
map P to C.

The search can be interrupted with ^C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := hexArg(cmd.Flags(), "plaintext")
		c := hexArg(cmd.Flags(), "ciphertext")
		extra, err := parseKnownPairs(verifyPairs)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		opts := []mitm.Option{mitm.WithWorkers(viper.GetInt("workers"))}
		if bar := newAttackBar(); bar != nil {
			opts = append(opts, mitm.WithProgress(bar.update))
			defer bar.finish()
		}
		logger.INFO.Printf("attacking P=%s C=%s with %d workers", framing.FormatBlock(p), framing.FormatBlock(c), viper.GetInt("workers"))
		candidates, err := mitm.Attack(ctx, p, c, opts...)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return errors.New("attack interrupted")
			}
			return err
		}
		logger.INFO.Printf("%d candidate key pairs before verification", len(candidates))
		if len(extra) > 0 {
			candidates = mitm.Filter(candidates, extra...)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d candidate key pairs\n", len(candidates))
		for i, kp := range candidates {
			if limit > 0 && i >= limit {
				fmt.Fprintf(out, "... %d more\n", len(candidates)-limit)
				break
			}
			fmt.Fprintln(out, kp)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(attackCmd)
	hexFlag(attackCmd.Flags(), "plaintext", "p", "known plaintext block as 4 hex digits")
	hexFlag(attackCmd.Flags(), "ciphertext", "c", "its double encryption as 4 hex digits")
	cobra.CheckErr(attackCmd.MarkFlagRequired("plaintext"))
	cobra.CheckErr(attackCmd.MarkFlagRequired("ciphertext"))
	attackCmd.Flags().IntVarP(&workers, "workers", "w", 0, "goroutines per phase (default is the number of CPUs)")
	attackCmd.Flags().StringSliceVar(&verifyPairs, "verify", nil, "extra known pairs as P:C hex to narrow the candidates")
	attackCmd.Flags().IntVarP(&limit, "limit", "n", 20, "print at most this many candidates, 0 prints all")
	cobra.CheckErr(viper.BindPFlag("workers", attackCmd.Flags().Lookup("workers")))
}

// parseKnownPairs parses "P:C" strings into known plaintext pairs.
func parseKnownPairs(pairs []string) ([]mitm.KnownPair, error) {
	out := make([]mitm.KnownPair, 0, len(pairs))
	for _, s := range pairs {
		ps, cs, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("--verify %q: want P:C", s)
		}
		p, err := framing.ParseBlock(ps)
		if err != nil {
			return nil, fmt.Errorf("--verify %q: %w", s, err)
		}
		c, err := framing.ParseBlock(cs)
		if err != nil {
			return nil, fmt.Errorf("--verify %q: %w", s, err)
		}
		out = append(out, mitm.KnownPair{Plaintext: p, Ciphertext: c})
	}
	return out, nil
}

// attackBar draws both phases of the attack on one progress bar.
type attackBar struct {
	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	last int
}

// newAttackBar returns nil when stderr is not a terminal.
func newAttackBar() *attackBar {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return &attackBar{
		bar: progressbar.NewOptions(2*progressSteps,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("meet in the middle"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish()),
	}
}

func (a *attackBar) update(phase mitm.Phase, fraction float64) {
	n := int(fraction * progressSteps)
	if phase == mitm.MatchPhase {
		n += progressSteps
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if n > a.last {
		a.last = n
		_ = a.bar.Set(n)
	}
}

func (a *attackBar) finish() {
	a.mu.Lock()
	defer a.mu.Unlock()
	_ = a.bar.Finish()
	fmt.Fprintln(os.Stderr)
}
