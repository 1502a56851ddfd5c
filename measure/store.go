// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measure

import (
	"sort"
	"sync"

	"github.com/aclements/go-moremath/stats"
)

// A Key identifies one benchmark configuration.
type Key struct {
	Program string
	Procs   int
	Size    int
}

// Less orders keys by program, then process count, then message
// size.
func (k Key) Less(o Key) bool {
	if k.Program != o.Program {
		return k.Program < o.Program
	}
	if k.Procs != o.Procs {
		return k.Procs < o.Procs
	}
	return k.Size < o.Size
}

// A Store accumulates Samples per Key.
//
// A Store is append-only: samples are kept in the order they were
// recorded and keys are never removed. Record is safe for concurrent
// use; the read methods must not be called while records may still be
// arriving.
//
// The zero Store is empty and ready to use.
type Store struct {
	mu sync.Mutex

	// data maps program -> procs -> size -> samples.
	data map[string]map[int]map[int][]Sample
	n    int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return new(Store)
}

// Record appends s to the samples for k, creating k if needed.
func (st *Store) Record(k Key, s Sample) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.data == nil {
		st.data = make(map[string]map[int]map[int][]Sample)
	}
	byProcs := st.data[k.Program]
	if byProcs == nil {
		byProcs = make(map[int]map[int][]Sample)
		st.data[k.Program] = byProcs
	}
	bySize := byProcs[k.Procs]
	if bySize == nil {
		bySize = make(map[int][]Sample)
		byProcs[k.Procs] = bySize
	}
	bySize[k.Size] = append(bySize[k.Size], s)
	st.n++
}

// Len returns the total number of samples recorded.
func (st *Store) Len() int {
	return st.n
}

// Samples returns the samples recorded for k in arrival order. The
// caller must not modify the returned slice.
func (st *Store) Samples(k Key) []Sample {
	return st.data[k.Program][k.Procs][k.Size]
}

// Programs returns the recorded program names in lexicographic order.
func (st *Store) Programs() []string {
	progs := make([]string, 0, len(st.data))
	for p := range st.data {
		progs = append(progs, p)
	}
	sort.Strings(progs)
	return progs
}

// Procs returns the process counts recorded for program in ascending
// order.
func (st *Store) Procs(program string) []int {
	byProcs := st.data[program]
	procs := make([]int, 0, len(byProcs))
	for n := range byProcs {
		procs = append(procs, n)
	}
	sort.Ints(procs)
	return procs
}

// Sizes returns the message sizes recorded for program under any
// process count, in ascending order.
func (st *Store) Sizes(program string) []int {
	set := make(map[int]bool)
	for _, bySize := range st.data[program] {
		for size := range bySize {
			set[size] = true
		}
	}
	return sortedInts(set)
}

// AllProcs returns the process counts recorded for any program, in
// ascending order.
func (st *Store) AllProcs() []int {
	set := make(map[int]bool)
	for _, byProcs := range st.data {
		for n := range byProcs {
			set[n] = true
		}
	}
	return sortedInts(set)
}

// Keys returns every recorded Key, sorted by Key.Less.
func (st *Store) Keys() []Key {
	var keys []Key
	for prog, byProcs := range st.data {
		for procs, bySize := range byProcs {
			for size := range bySize {
				keys = append(keys, Key{prog, procs, size})
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
	return keys
}

// Mean returns the mean of the Avg and the mean of the Max fields of
// the samples recorded for k. If there are no samples for k, ok is
// false.
func (st *Store) Mean(k Key) (avg, max float64, ok bool) {
	samples := st.Samples(k)
	if len(samples) == 0 {
		return 0, 0, false
	}
	avgs := make([]float64, len(samples))
	maxs := make([]float64, len(samples))
	for i, s := range samples {
		avgs[i], maxs[i] = s.Avg, s.Max
	}
	return stats.Mean(avgs), stats.Mean(maxs), true
}

func sortedInts(set map[int]bool) []int {
	xs := make([]int, 0, len(set))
	for x := range set {
		xs = append(xs, x)
	}
	sort.Ints(xs)
	return xs
}
