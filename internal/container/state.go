package container

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
)

// StackState is the saved form of one live stack.
type StackState struct {
	Id      storage.Identifier `json:"id"`
	Count   int                `json:"count"`
	State   item.State         `json:"state"`
	Owner   storage.Identifier `json:"owner,omitempty"`
	Faction storage.Identifier `json:"faction,omitempty"`
}

// Snapshot returns the state of every live stack in iteration order.
func (s *Store) Snapshot() []StackState {
	states := make([]StackState, 0, s.Len())
	for st := range s.All(item.MaskAll) {
		states = append(states, StackState{
			Id:      st.Id(),
			Count:   st.count,
			State:   st.State.Clone(),
			Owner:   st.Owner,
			Faction: st.Faction,
		})
	}
	return states
}

// Restore replaces the contents of the store with states, one stack per
// state, so a snapshot round trips without merging. States that can no
// longer be resolved are reported and skipped.
func (s *Store) Restore(states []StackState) error {
	s.Clear()
	if len(states) == 0 {
		return nil
	}
	if s.templates == nil {
		return fmt.Errorf("%w: store has no templates", item.ErrTemplateNotFound)
	}

	el := errors.NewErrorList()
	for _, ss := range states {
		ref, err := item.Resolve(s.templates, ss.Id.String())
		if err != nil {
			el.Add(err)
			continue
		}
		ref.State = ss.State.Clone()
		ref.Owner = ss.Owner
		ref.Faction = ss.Faction

		if ss.Count <= 0 {
			el.Add(fmt.Errorf("restoring %q: %w: count %d", ss.Id, ErrInvalidArgument, ss.Count))
			continue
		}
		kind, err := item.Classify(ref)
		if err != nil {
			el.Add(fmt.Errorf("restoring %q: %w", ss.Id, err))
			continue
		}
		s.addNewStack(ref, kind, ss.Count)
	}
	return el.Err()
}
