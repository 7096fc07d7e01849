package mitm

import "github.com/bgallie/saes/cryptors"

// MultiMap maps an intermediate value to every key that produced it.
type MultiMap map[cryptors.Block][]cryptors.Key

func (m MultiMap) Add(mid cryptors.Block, key cryptors.Key) {
	m[mid] = append(m[mid], key)
}

// Merge appends the key lists of o to those of m.  Merging is a multi-map
// union, so the merge order only changes the order of keys in a bucket.
func (m MultiMap) Merge(o MultiMap) {
	for mid, keys := range o {
		m[mid] = append(m[mid], keys...)
	}
}

// Len returns the total number of keys held.
func (m MultiMap) Len() int {
	n := 0
	for _, keys := range m {
		n += len(keys)
	}
	return n
}
