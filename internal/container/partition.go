package container

import (
	"github.com/pixil98/go-stash/internal/item"
)

// Stack is one group of identical items held by a Store. The embedded Ref
// is live: changing its State, Owner or Faction changes the stored item.
// Template is read-only while the stack is live, and counts only change
// through Store methods, so the weight cache stays correct.
type Stack struct {
	item.Ref

	// InstanceId uniquely identifies the stack for its lifetime
	InstanceId string

	store   *Store
	kind    item.Kind
	count   int
	removed bool
}

// Count returns the number of units in the stack, or 0 once removed.
func (s *Stack) Count() int {
	if s.removed {
		return 0
	}
	return s.count
}

// Kind returns the partition the stack lives in.
func (s *Stack) Kind() item.Kind {
	return s.kind
}

// Removed reports whether the stack has been tombstoned.
func (s *Stack) Removed() bool {
	return s.removed
}

// Store returns the store that owns the stack.
func (s *Stack) Store() *Store {
	return s.store
}

// Weight returns unit weight times count.
func (s *Stack) Weight() float64 {
	return s.UnitWeight() * float64(s.Count())
}

// Partition is the insertion-ordered sequence of stacks of one kind.
// Removed stacks stay in place as tombstones until the store is cleared.
type Partition struct {
	kind   item.Kind
	stacks []*Stack
}

// Kind returns the kind held by the partition.
func (p *Partition) Kind() item.Kind {
	return p.kind
}

// Len returns the number of entries, tombstones included.
func (p *Partition) Len() int {
	return len(p.stacks)
}

// Live returns the number of stacks that have not been removed.
func (p *Partition) Live() int {
	n := 0
	for _, st := range p.stacks {
		if !st.removed {
			n++
		}
	}
	return n
}

// next returns the index of the first live stack at or after from, or -1.
func (p *Partition) next(from int) int {
	for i := from; i < len(p.stacks); i++ {
		if !p.stacks[i].removed {
			return i
		}
	}
	return -1
}

// find returns the index of the first live stack that ref may merge into, or -1.
func (p *Partition) find(ref *item.Ref, c item.Currency) int {
	for i, st := range p.stacks {
		if st.removed {
			continue
		}
		if item.Stacks(&st.Ref, ref, c) {
			return i
		}
	}
	return -1
}

func (p *Partition) append(st *Stack) int {
	p.stacks = append(p.stacks, st)
	return len(p.stacks) - 1
}

// clear tombstones every stack so handles taken before the clear can no
// longer change the store.
func (p *Partition) clear() {
	for _, st := range p.stacks {
		st.removed = true
	}
	p.stacks = nil
}
