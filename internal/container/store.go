package container

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
)

// Actor is the party performing a container operation.
type Actor interface {
	OwnerId() storage.Identifier
	FactionId() storage.Identifier
}

// Store is the inventory of a world entity: one Partition per item kind
// and a lazily computed total weight.
//
// A Store is not safe for concurrent use.
type Store struct {
	partitions [item.KindCount]Partition
	templates  item.Templates
	currency   item.Currency
	fillPolicy FillPolicy

	weight      float64
	weightValid bool
	generation  uint64
}

// NewStore creates an empty store. templates resolves the ids passed to
// AddId, Fill and Restore and may be nil when those are not used.
func NewStore(templates item.Templates, opts ...StoreOpt) *Store {
	s := &Store{
		templates:   templates,
		currency:    item.DefaultCurrency,
		fillPolicy:  FillSingles,
		weightValid: true,
	}
	for k := range s.partitions {
		s.partitions[k].kind = item.Kind(k)
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Partition returns the partition holding kind k.
func (s *Store) Partition(k item.Kind) *Partition {
	return &s.partitions[k]
}

// Stacks reports whether a and b may merge under this store's currency rules.
func (s *Store) Stacks(a, b *item.Ref) bool {
	return item.Stacks(a, b, s.currency)
}

// flagAsModified invalidates the weight cache and every outstanding iterator.
func (s *Store) flagAsModified() {
	s.weightValid = false
	s.generation++
}

// Add puts count units of ref into the store, merging into the first
// existing stack they stack with. If setOwner is set the items are tagged
// with actor's owner and faction first. ref itself is never modified and is
// not required to outlive the call.
//
// Returns an iterator to the stack that received the items. A count of 0
// returns the end iterator; a negative count fails with ErrInvalidArgument.
func (s *Store) Add(ref *item.Ref, count int, actor Actor, setOwner bool) (Iterator, error) {
	if count < 0 {
		return s.End(), fmt.Errorf("%w: count %d is negative", ErrInvalidArgument, count)
	}
	if count == 0 {
		return s.End(), nil
	}

	if setOwner && actor != nil {
		ref = ref.Clone()
		ref.Owner = actor.OwnerId()
		ref.Faction = actor.FactionId()
	}

	return s.addImp(ref, count)
}

// AddId resolves id through the store's templates and adds count new items
// owned by actor.
func (s *Store) AddId(id string, count int, actor Actor) (Iterator, error) {
	if s.templates == nil {
		return s.End(), fmt.Errorf("%w: %q: store has no templates", item.ErrTemplateNotFound, id)
	}
	ref, err := item.Resolve(s.templates, id)
	if err != nil {
		return s.End(), err
	}
	return s.Add(ref, count, actor, true)
}

func (s *Store) addImp(ref *item.Ref, count int) (Iterator, error) {
	ref, count, err := s.normalizeCurrency(ref, count)
	if err != nil {
		return s.End(), err
	}

	kind, err := item.Classify(ref)
	if err != nil {
		return s.End(), err
	}

	p := &s.partitions[kind]
	if i := p.find(ref, s.currency); i >= 0 {
		p.stacks[i].count += count
		s.flagAsModified()
		slog.Debug("stacked items", "id", ref.Id(), "count", count, "total", p.stacks[i].count)
		return s.at(kind, i), nil
	}

	return s.addNewStack(ref, kind, count), nil
}

// addNewStack appends a stack without looking for one to merge into.
func (s *Store) addNewStack(ref *item.Ref, kind item.Kind, count int) Iterator {
	st := &Stack{
		Ref:        *ref.Clone(),
		InstanceId: uuid.New().String(),
		store:      s,
		kind:       kind,
		count:      count,
	}
	i := s.partitions[kind].append(st)
	s.flagAsModified()
	slog.Debug("added stack", "id", ref.Id(), "kind", kind, "count", count)
	return s.at(kind, i)
}

// normalizeCurrency turns a currency denomination into the equivalent number
// of base currency units so that all coin stacks merge.
func (s *Store) normalizeCurrency(ref *item.Ref, count int) (*item.Ref, int, error) {
	if !s.currency.IsDenomination(ref.Id()) {
		return ref, count, nil
	}
	if s.templates == nil {
		return nil, 0, fmt.Errorf("%w: %q: store has no templates", item.ErrTemplateNotFound, s.currency.Base)
	}

	base, err := item.Resolve(s.templates, s.currency.Base.String())
	if err != nil {
		return nil, 0, fmt.Errorf("converting %q: %w", ref.Id(), err)
	}
	base.Owner = ref.Owner
	base.Faction = ref.Faction

	value := 1
	if ref.Base() != nil && ref.Base().Value > 0 {
		value = ref.Base().Value
	}
	return base, count * value, nil
}

// Remove takes up to count units of template id out of the store, visiting
// matching stacks in canonical order. It returns the number of units
// actually removed, which is less than count when the store holds fewer.
func (s *Store) Remove(id string, count int, actor Actor) int {
	if count <= 0 {
		return 0
	}

	target := storage.Identifier(id)
	removed := 0
	for k := range s.partitions {
		for _, st := range s.partitions[k].stacks {
			if removed == count {
				break
			}
			if st.removed || !st.Id().Equal(target) {
				continue
			}
			removed += s.take(st, count-removed)
		}
	}

	if removed > 0 {
		s.flagAsModified()
		logRemoval(id, count, removed, actor)
	}
	return removed
}

// RemoveStack takes up to count units out of one stack and returns the
// number of units actually removed.
func (s *Store) RemoveStack(st *Stack, count int, actor Actor) int {
	if count <= 0 || st == nil || st.removed {
		return 0
	}
	if st.store != s {
		slog.Warn("refusing to remove stack owned by another store", "id", st.Id(), "instance", st.InstanceId)
		return 0
	}

	removed := s.take(st, count)
	s.flagAsModified()
	logRemoval(st.Id().String(), count, removed, actor)
	return removed
}

// take tombstones st when want covers all of it, otherwise shrinks it.
// Callers flag the modification.
func (s *Store) take(st *Stack, want int) int {
	if want >= st.count {
		n := st.count
		st.removed = true
		return n
	}
	st.count -= want
	return want
}

func logRemoval(id string, requested, removed int, actor Actor) {
	args := []any{"id", id, "requested", requested, "removed", removed}
	if actor != nil {
		args = append(args, "actor", actor.OwnerId())
	}
	slog.Debug("removed items", args...)
}

// Unstack isolates one unit of st: st keeps a count of 1 and the remaining
// units move to a new stack with the same state in target, which may be s
// itself (nil also means s). The new stack never merges with an existing
// one. Returns an iterator into target, or target's end iterator when st
// held a single unit.
func (s *Store) Unstack(st *Stack, target *Store) (Iterator, error) {
	if target == nil {
		target = s
	}
	if st == nil || st.store != s {
		return target.End(), ErrForeignStack
	}
	if st.removed {
		return target.End(), ErrRemovedStack
	}
	if st.count <= 1 {
		return target.End(), nil
	}

	rest := st.count - 1
	st.count = 1
	s.flagAsModified()

	return target.addNewStack(&st.Ref, st.kind, rest), nil
}

// Clear empties every partition, dropping tombstones. Stacks held before
// the clear report as removed.
func (s *Store) Clear() {
	for k := range s.partitions {
		s.partitions[k].clear()
	}
	s.flagAsModified()
}

// Weight returns the total weight of all live stacks. The sum is cached
// until the next mutation.
func (s *Store) Weight() float64 {
	if !s.weightValid {
		var w float64
		for st := range s.All(item.MaskAll) {
			w += st.Weight()
		}
		s.weight = w
		s.weightValid = true
	}
	return s.weight
}

// Count returns the number of units of template id in the store.
func (s *Store) Count(id string) int {
	target := storage.Identifier(id)
	n := 0
	for st := range s.All(item.MaskAll) {
		if st.Id().Equal(target) {
			n += st.count
		}
	}
	return n
}

// Search returns the first live stack of template id, or nil.
func (s *Store) Search(id string) *Stack {
	target := storage.Identifier(id)
	for st := range s.All(item.MaskAll) {
		if st.Id().Equal(target) {
			return st
		}
	}
	return nil
}

// Lookup returns the live stack with the given instance id, or nil.
func (s *Store) Lookup(instanceId string) *Stack {
	for st := range s.All(item.MaskAll) {
		if st.InstanceId == instanceId {
			return st
		}
	}
	return nil
}

// Len returns the number of live stacks.
func (s *Store) Len() int {
	n := 0
	for k := range s.partitions {
		n += s.partitions[k].Live()
	}
	return n
}

// All yields the live stacks selected by mask in iteration order. The store
// must not be mutated while ranging.
func (s *Store) All(mask item.Mask) iter.Seq[*Stack] {
	return func(yield func(*Stack) bool) {
		for it := s.Begin(mask); !it.Done(); it.Next() {
			if !yield(it.Stack()) {
				return
			}
		}
	}
}
