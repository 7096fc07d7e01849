package mitm

import (
	"context"
	"sync"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/modes"
	"github.com/bgallie/saes/cryptors/saes"
)

var sortPairs = cmpopts.SortSlices(func(a, b KeyPair) bool {
	if a.K1 != b.K1 {
		return a.K1 < b.K1
	}
	return a.K2 < b.K2
})

func contains(pairs []KeyPair, want KeyPair) bool {
	for _, kp := range pairs {
		if kp == want {
			return true
		}
	}
	return false
}

// naiveAttack is the single goroutine reference search.
func naiveAttack(p, c cryptors.Block) []KeyPair {
	table := make(map[cryptors.Block][]cryptors.Key)
	for k := 0; k < cryptors.KeySpace; k++ {
		mid := saes.Encrypt(p, cryptors.Key(k))
		table[mid] = append(table[mid], cryptors.Key(k))
	}
	var out []KeyPair
	for k := 0; k < cryptors.KeySpace; k++ {
		for _, k1 := range table[saes.Decrypt(c, cryptors.Key(k))] {
			out = append(out, KeyPair{K1: k1, K2: cryptors.Key(k)})
		}
	}
	return out
}

func TestAttackFindsKnownKeys(t *testing.T) {
	want := KeyPair{K1: 0x1A2B, K2: 0x3C4D}
	p := cryptors.Block(0x6F6B)
	c := modes.DoubleEncrypt(p, want.K1, want.K2)
	qt.Assert(t, qt.Equals(c, cryptors.Block(0x92B0)))

	got, err := Attack(context.Background(), p, c, WithWorkers(4))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(got, 65182))
	qt.Assert(t, qt.IsTrue(contains(got, want)))
	for _, kp := range got[:64] {
		qt.Assert(t, qt.Equals(saes.Encrypt(p, kp.K1), saes.Decrypt(c, kp.K2)))
	}
}

func TestAttackIndependentOfSharding(t *testing.T) {
	p, c := cryptors.Block(0x4869), cryptors.Block(0x26C7)
	want := naiveAttack(p, c)
	for _, workers := range []int{1, 3, 8, 0} {
		got, err := Attack(context.Background(), p, c, WithWorkers(workers))
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.CmpEquals(got, want, sortPairs), qt.Commentf("workers=%d", workers))
	}
}

func TestAttackGenerated(t *testing.T) {
	known, keys, err := Generate()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(modes.DoubleEncrypt(known.Plaintext, keys.K1, keys.K2), known.Ciphertext))

	got, err := Attack(context.Background(), known.Plaintext, known.Ciphertext)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(contains(got, keys)))
}

func TestAttackCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := Attack(ctx, 0x6F6B, 0x92B0, WithWorkers(2))
	qt.Assert(t, qt.ErrorIs(err, context.Canceled))
	qt.Assert(t, qt.HasLen(got, 0))

	_, err = Match(ctx, MultiMap{}, 0x92B0)
	qt.Assert(t, qt.ErrorIs(err, context.Canceled))
}

func TestAttackCancelledMidPhase(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var mu sync.Mutex
	phases := make(map[Phase]bool)
	progress := func(phase Phase, fraction float64) {
		mu.Lock()
		defer mu.Unlock()
		phases[phase] = true
		cancel()
	}
	got, err := Attack(ctx, 0x6F6B, 0x92B0, WithWorkers(2), WithProgress(progress))
	qt.Assert(t, qt.ErrorIs(err, context.Canceled))
	qt.Assert(t, qt.HasLen(got, 0))
	qt.Assert(t, qt.DeepEquals(phases, map[Phase]bool{BuildPhase: true}))
}

func TestAttackProgress(t *testing.T) {
	var mu sync.Mutex
	last := make(map[Phase]float64)
	progress := func(phase Phase, fraction float64) {
		mu.Lock()
		defer mu.Unlock()
		if fraction > last[phase] {
			last[phase] = fraction
		}
	}
	_, err := Attack(context.Background(), 0x6F6B, 0x92B0, WithWorkers(3), WithProgress(progress))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(last, map[Phase]float64{BuildPhase: 1, MatchPhase: 1}))
}

func TestBuildTable(t *testing.T) {
	table, err := BuildTable(context.Background(), 0x6F6B, WithWorkers(5))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(table.Len(), cryptors.KeySpace))
	found := false
	for _, k := range table[saes.Encrypt(0x6F6B, 0xA73B)] {
		found = found || k == 0xA73B
	}
	qt.Assert(t, qt.IsTrue(found))
}

func TestMultiMapMergeOrder(t *testing.T) {
	a := MultiMap{1: {10, 11}, 2: {20}}
	b := MultiMap{1: {12}, 3: {30}}

	ab := MultiMap{}
	ab.Merge(a)
	ab.Merge(b)
	ba := MultiMap{}
	ba.Merge(b)
	ba.Merge(a)

	sortKeys := cmpopts.SortSlices(func(x, y cryptors.Key) bool { return x < y })
	qt.Assert(t, qt.CmpEquals(ab, ba, sortKeys))
	qt.Assert(t, qt.Equals(ab.Len(), 5))
	if diff := cmp.Diff(MultiMap{1: {10, 11, 12}, 2: {20}, 3: {30}}, ab); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	keys := KeyPair{K1: 0x1A2B, K2: 0x3C4D}
	p := cryptors.Block(0x6F6B)
	candidates, err := Attack(context.Background(), p, modes.DoubleEncrypt(p, keys.K1, keys.K2))
	qt.Assert(t, qt.IsNil(err))

	extra := []KnownPair{}
	for _, q := range []cryptors.Block{0x0000, 0x4869, 0xFFFF} {
		extra = append(extra, KnownPair{Plaintext: q, Ciphertext: modes.DoubleEncrypt(q, keys.K1, keys.K2)})
	}
	narrowed := Filter(candidates, extra...)
	qt.Assert(t, qt.IsTrue(contains(narrowed, keys)))
	qt.Assert(t, qt.IsTrue(len(narrowed) < len(candidates)))
	qt.Assert(t, qt.HasLen(Filter(candidates), len(candidates)))
}

func TestShards(t *testing.T) {
	for _, n := range []int{1, 3, 7, 16} {
		r := shards(n)
		qt.Assert(t, qt.HasLen(r, n))
		qt.Assert(t, qt.Equals(r[0][0], 0))
		qt.Assert(t, qt.Equals(r[n-1][1], cryptors.KeySpace))
		for i := 1; i < n; i++ {
			qt.Assert(t, qt.Equals(r[i][0], r[i-1][1]))
		}
	}
	qt.Assert(t, qt.Equals(newConfig([]Option{WithWorkers(1 << 20)}).workers, cryptors.KeySpace))
	qt.Assert(t, qt.Equals(BuildPhase.String(), "build"))
	qt.Assert(t, qt.Equals(KeyPair{K1: 1, K2: 0xABCD}.String(), "K1=0001 K2=ABCD"))
}
