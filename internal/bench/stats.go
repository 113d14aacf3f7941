package bench

import (
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Stats keeps iteration durations in order.
type Stats struct {
	rbt   *redblacktree.Tree // ordered by duration, then insertion sequence
	seq   int
	total time.Duration
}

// Summary describes a set of durations.
type Summary struct {
	Count  int
	Total  time.Duration
	Min    time.Duration
	Median time.Duration
	P90    time.Duration
	Max    time.Duration
	Mean   time.Duration
}

func NewStats() *Stats {
	return &Stats{rbt: redblacktree.NewWith(cmp)}
}

func (s *Stats) Add(d time.Duration) {
	s.rbt.Put(sampleKey{d: d, seq: s.seq}, nil)
	s.seq++
	s.total += d
}

func (s *Stats) Summary() Summary {
	n := s.rbt.Size()
	if n == 0 {
		return Summary{}
	}
	sum := Summary{
		Count: n,
		Total: s.total,
		Min:   s.rbt.Left().Key.(sampleKey).d,
		Max:   s.rbt.Right().Key.(sampleKey).d,
		Mean:  s.total / time.Duration(n),
	}

	// nearest-rank percentiles
	medianRank := (n+1)/2 - 1
	p90Rank := (n*9+9)/10 - 1
	it := s.rbt.Iterator()
	for i := 0; it.Next(); i++ {
		d := it.Key().(sampleKey).d
		if i == medianRank {
			sum.Median = d
		}
		if i == p90Rank {
			sum.P90 = d
			break
		}
	}
	return sum
}

// sampleKey is used as a key in the red-black tree.
type sampleKey struct {
	d   time.Duration
	seq int
}

// cmp orders sampleKeys by duration; equal durations keep insertion order.
func cmp(a, b any) int {
	ka, kb := a.(sampleKey), b.(sampleKey)
	switch {
	case ka.d < kb.d:
		return -1
	case ka.d > kb.d:
		return 1
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}
