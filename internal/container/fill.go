package container

import (
	"fmt"
	"math"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
)

// FillPolicy decides what a negative count in a fill list means.
type FillPolicy int

const (
	// FillSingles adds a negative count as that many single-unit stacks so
	// each unit keeps its own provenance (restocked merchant goods).
	FillSingles FillPolicy = iota
	// FillShared ignores the sign and adds one shared stack.
	FillShared
)

func (p FillPolicy) String() string {
	switch p {
	case FillSingles:
		return "singles"
	case FillShared:
		return "shared"
	default:
		return fmt.Sprintf("FillPolicy(%d)", int(p))
	}
}

func (p *FillPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "singles", "":
		*p = FillSingles
	case "shared":
		*p = FillShared
	default:
		return fmt.Errorf("unknown fill policy: %s", text)
	}
	return nil
}

func (p FillPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// FillEntry is one line of a fill list. A negative count is interpreted by
// the store's FillPolicy.
type FillEntry struct {
	Id    string `json:"id"`
	Count int    `json:"count"`
}

// Fill adds every entry of list, tagged with owner and faction, resolving
// ids through templates. Entries that fail to resolve or classify are
// skipped and reported together; the rest are still added.
func (s *Store) Fill(list []FillEntry, owner, faction storage.Identifier, templates item.Templates) error {
	if templates == nil {
		templates = s.templates
	}
	if templates == nil {
		return fmt.Errorf("%w: store has no templates", item.ErrTemplateNotFound)
	}

	el := errors.NewErrorList()
	for i, e := range list {
		if err := s.fillEntry(e, owner, faction, templates); err != nil {
			el.Add(fmt.Errorf("entry %d: %w", i, err))
		}
	}
	return el.Err()
}

func (s *Store) fillEntry(e FillEntry, owner, faction storage.Identifier, templates item.Templates) error {
	if e.Count == 0 {
		return nil
	}
	if e.Count == math.MinInt {
		return fmt.Errorf("%w: count %d", ErrInvalidArgument, e.Count)
	}

	ref, err := item.Resolve(templates, e.Id)
	if err != nil {
		return err
	}
	ref.Owner = owner
	ref.Faction = faction

	count := e.Count
	singles := count < 0 && s.fillPolicy == FillSingles
	if count < 0 {
		count = -count
	}

	// Coins merge whatever the policy, so there is nothing to keep apart.
	if !singles || s.currency.IsBase(ref.Id()) || s.currency.IsDenomination(ref.Id()) {
		_, err := s.addImp(ref, count)
		return err
	}

	kind, err := item.Classify(ref)
	if err != nil {
		return err
	}
	for range count {
		s.addNewStack(ref, kind, 1)
	}
	return nil
}
