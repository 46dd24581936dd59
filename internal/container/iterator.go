package container

import (
	"fmt"

	"github.com/pixil98/go-stash/internal/item"
)

// endKind is the kind position of the terminal sentinel.
const endKind = item.Kind(item.KindCount)

// Iterator is a forward cursor over the live stacks of a Store whose kind
// is selected by a mask. It walks kinds in canonical order and skips
// removed stacks.
//
// An iterator is invalidated by any mutation of its store (Add, Remove,
// Unstack, Fill, Clear, Restore). Using an invalidated iterator panics.
// Dereferencing or advancing the end iterator also panics.
//
//	for it := st.Begin(item.MaskWeapon); !it.Done(); it.Next() {
//		w := it.Stack()
//	}
type Iterator struct {
	store      *Store
	mask       item.Mask
	kind       item.Kind
	pos        int
	generation uint64
}

// Begin returns an iterator positioned at the first live stack of the
// lowest kind selected by mask, or the end iterator if there is none.
func (s *Store) Begin(mask item.Mask) Iterator {
	it := Iterator{
		store:      s,
		mask:       mask,
		kind:       0,
		pos:        0,
		generation: s.generation,
	}
	it.seek()
	return it
}

// End returns the terminal sentinel. All end iterators of a store are equal
// regardless of mask.
func (s *Store) End() Iterator {
	return Iterator{
		store:      s,
		kind:       endKind,
		generation: s.generation,
	}
}

// at returns an iterator over every kind positioned at an existing stack.
func (s *Store) at(kind item.Kind, pos int) Iterator {
	return Iterator{
		store:      s,
		mask:       item.MaskAll,
		kind:       kind,
		pos:        pos,
		generation: s.generation,
	}
}

// seek moves forward from the current position to the first live stack of
// a selected kind, falling through to the end sentinel.
func (it *Iterator) seek() {
	for it.kind < endKind {
		if it.mask.Has(it.kind) {
			if i := it.store.partitions[it.kind].next(it.pos); i >= 0 {
				it.pos = i
				return
			}
		}
		it.kind++
		it.pos = 0
	}
	it.pos = 0
}

func (it *Iterator) check(op string) {
	if it.store == nil {
		panic(fmt.Sprintf("container: %s on zero iterator", op))
	}
	if it.generation != it.store.generation {
		panic(fmt.Sprintf("container: %s on iterator invalidated by a store mutation", op))
	}
	if it.kind == endKind {
		panic(fmt.Sprintf("container: %s on end iterator", op))
	}
}

// Done reports whether the iterator is the end sentinel.
func (it Iterator) Done() bool {
	return it.kind == endKind
}

// Valid reports whether no mutation of the store has happened since the
// iterator was created.
func (it Iterator) Valid() bool {
	return it.store != nil && it.generation == it.store.generation
}

// Stack returns the live stack the iterator designates.
func (it Iterator) Stack() *Stack {
	it.check("dereference")
	return it.store.partitions[it.kind].stacks[it.pos]
}

// Kind returns the kind of the designated stack.
func (it Iterator) Kind() item.Kind {
	it.check("kind")
	return it.kind
}

// Mask returns the kinds the iterator walks.
func (it Iterator) Mask() item.Mask {
	return it.mask
}

// Next advances to the next live stack of a selected kind.
func (it *Iterator) Next() {
	it.check("increment")
	it.pos++
	it.seek()
}

// Store returns the store being iterated.
func (it Iterator) Store() *Store {
	return it.store
}

// Equal reports whether both iterators designate the same position of the
// same store. Masks are ignored.
func (it Iterator) Equal(other Iterator) bool {
	if it.store != other.store || it.kind != other.kind {
		return false
	}
	return it.kind == endKind || it.pos == other.pos
}
