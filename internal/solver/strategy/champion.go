package strategy

import (
	"sync"
	"sync/atomic"
)

// candidate is a k-tuple of indices into the ranked preset array, outermost
// first, together with its cost.
type candidate struct {
	cost Cost
	idx  [MaxWorkshops]int
	k    int
}

// better is a total order: cost first, then the index tuple
// lexicographically. A sequential scan visits tuples in ascending index
// order, so among equal costs it keeps the same tuple a concurrent search
// converges on.
func (c *candidate) better(o *candidate) bool {
	if o.k == 0 {
		return c.k != 0
	}
	if c.cost != o.cost {
		return c.cost.Less(o.cost)
	}
	for i := 0; i < c.k; i++ {
		if c.idx[i] != o.idx[i] {
			return c.idx[i] < o.idx[i]
		}
	}
	return false
}

func (c *candidate) indices() []int {
	out := make([]int, c.k)
	copy(out, c.idx[:c.k])
	return out
}

// champion is the single shared best of a search. Writers serialise on mu;
// readers take the atomic snapshot without locking and must tolerate it
// being stale.
type champion struct {
	mu    sync.Mutex
	best  atomic.Pointer[candidate]
	found int
}

// peek returns the latest published best, or an empty candidate.
func (c *champion) peek() candidate {
	if p := c.best.Load(); p != nil {
		return *p
	}
	return candidate{cost: MaxCost}
}

// offer installs cand if it beats the current best and calls publish while
// still holding the lock, so publications are strictly ordered.
func (c *champion) offer(cand candidate, publish func(*candidate, int)) bool {
	if cur := c.best.Load(); cur != nil && !cand.better(cur) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cur := c.best.Load(); cur != nil && !cand.better(cur) {
		return false
	}
	c.found++
	c.best.Store(&cand)
	if publish != nil {
		publish(&cand, c.found)
	}
	return true
}

// improvements returns how many times the best changed.
func (c *champion) improvements() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.found
}
