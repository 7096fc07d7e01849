// Package mitm recovers double encryption key pairs from a known
// plaintext/ciphertext pair with a meet-in-the-middle search.
//
// Phase one enciphers the plaintext under every K1 and buckets K1 by the
// intermediate value.  Phase two deciphers the ciphertext under every K2
// and pairs K2 with every K1 in the matching bucket.  Both phases are split
// into shards that run on their own goroutines; phase two starts only after
// every phase one shard has been merged.
package mitm

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/modes"
	"github.com/bgallie/saes/cryptors/saes"
)

const (
	// checkInterval is how many keys a shard tries between looks at its
	// context.
	checkInterval = 0x100
	// progressInterval is how many keys a shard tries between progress
	// reports.
	progressInterval = 0x1000
)

// Phase identifies the half of the attack a progress report belongs to.
type Phase int

const (
	BuildPhase Phase = iota + 1
	MatchPhase
)

func (p Phase) String() string {
	switch p {
	case BuildPhase:
		return "build"
	case MatchPhase:
		return "match"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// KeyPair is a candidate (K1, K2) for double encryption.
type KeyPair struct {
	K1, K2 cryptors.Key
}

func (kp KeyPair) String() string {
	return fmt.Sprintf("K1=%04X K2=%04X", uint16(kp.K1), uint16(kp.K2))
}

// ProgressFunc receives the fraction of a phase completed so far.  It is
// called from several goroutines at once.
type ProgressFunc func(phase Phase, fraction float64)

type config struct {
	workers  int
	progress ProgressFunc
}

type Option func(*config)

// WithWorkers sets the number of shards per phase.  Values below one select
// runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *config) {
		c.progress = fn
	}
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers < 1 {
		c.workers = runtime.NumCPU()
	}
	if c.workers > cryptors.KeySpace {
		c.workers = cryptors.KeySpace
	}
	return c
}

// shards splits the key space into n contiguous half-open ranges.
func shards(n int) [][2]int {
	out := make([][2]int, n)
	for i := 0; i < n; i++ {
		out[i] = [2]int{i * cryptors.KeySpace / n, (i + 1) * cryptors.KeySpace / n}
	}
	return out
}

type progressCounter struct {
	phase Phase
	done  atomic.Int64
	fn    ProgressFunc
}

func (p *progressCounter) add(n int) {
	d := p.done.Add(int64(n))
	if p.fn != nil {
		p.fn(p.phase, float64(d)/cryptors.KeySpace)
	}
}

// BuildTable runs phase one: it maps E(plaintext, K1) to K1 for every K1.
func BuildTable(ctx context.Context, plaintext cryptors.Block, opts ...Option) (MultiMap, error) {
	cfg := newConfig(opts)
	return buildTable(ctx, plaintext, cfg)
}

func buildTable(ctx context.Context, plaintext cryptors.Block, cfg *config) (MultiMap, error) {
	ranges := shards(cfg.workers)
	locals := make([]MultiMap, len(ranges))
	pc := &progressCounter{phase: BuildPhase, fn: cfg.progress}
	g, gctx := errgroup.WithContext(ctx)

	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			local := make(MultiMap, r[1]-r[0])
			for k := r[0]; k < r[1]; k++ {
				if (k-r[0])%checkInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				key := cryptors.Key(k)
				local.Add(saes.Encrypt(plaintext, key), key)
				if (k-r[0]+1)%progressInterval == 0 {
					pc.add(progressInterval)
				}
			}
			if rem := (r[1] - r[0]) % progressInterval; rem != 0 {
				pc.add(rem)
			}
			locals[i] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := make(MultiMap, cryptors.KeySpace)
	for _, local := range locals {
		table.Merge(local)
	}
	return table, nil
}

// Match runs phase two against a completed table.  The table is only read.
func Match(ctx context.Context, table MultiMap, ciphertext cryptors.Block, opts ...Option) ([]KeyPair, error) {
	cfg := newConfig(opts)
	return match(ctx, table, ciphertext, cfg)
}

func match(ctx context.Context, table MultiMap, ciphertext cryptors.Block, cfg *config) ([]KeyPair, error) {
	ranges := shards(cfg.workers)
	locals := make([][]KeyPair, len(ranges))
	pc := &progressCounter{phase: MatchPhase, fn: cfg.progress}
	g, gctx := errgroup.WithContext(ctx)

	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			var local []KeyPair
			for k := r[0]; k < r[1]; k++ {
				if (k-r[0])%checkInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				k2 := cryptors.Key(k)
				for _, k1 := range table[saes.Decrypt(ciphertext, k2)] {
					local = append(local, KeyPair{K1: k1, K2: k2})
				}
				if (k-r[0]+1)%progressInterval == 0 {
					pc.add(progressInterval)
				}
			}
			if rem := (r[1] - r[0]) % progressInterval; rem != 0 {
				pc.add(rem)
			}
			locals[i] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var pairs []KeyPair
	for _, local := range locals {
		pairs = append(pairs, local...)
	}
	return pairs, nil
}

// Attack returns every (K1, K2) with D(ciphertext, K2) == E(plaintext, K1).
// The true pair is always among them, but so are many others; use Filter
// with further known pairs to narrow the set.  The order of the result is
// not significant.
//
// If ctx is cancelled the attack stops within a few hundred keys per shard
// and returns ctx.Err().
func Attack(ctx context.Context, plaintext, ciphertext cryptors.Block, opts ...Option) ([]KeyPair, error) {
	cfg := newConfig(opts)
	table, err := buildTable(ctx, plaintext, cfg)
	if err != nil {
		return nil, err
	}
	return match(ctx, table, ciphertext, cfg)
}

// KnownPair is a plaintext and its double encryption.
type KnownPair struct {
	Plaintext, Ciphertext cryptors.Block
}

// Filter keeps the candidates that also map every extra plaintext to its
// ciphertext.
func Filter(candidates []KeyPair, extra ...KnownPair) []KeyPair {
	var out []KeyPair
next:
	for _, kp := range candidates {
		for _, pair := range extra {
			if modes.DoubleEncrypt(pair.Plaintext, kp.K1, kp.K2) != pair.Ciphertext {
				continue next
			}
		}
		out = append(out, kp)
	}
	return out
}
