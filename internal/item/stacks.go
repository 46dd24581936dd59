package item

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-stash/internal/storage"
)

// Classify returns the kind of the referenced item. It fails with
// ErrInvalidItemType when the template is unresolved or is not a kind that
// can be carried.
func Classify(r *Ref) (Kind, error) {
	tmpl := r.Base()
	if tmpl == nil {
		return 0, fmt.Errorf("%w: template %q is not resolved", ErrInvalidItemType, r.Id())
	}
	k, ok := tmpl.Type().Kind()
	if !ok {
		return 0, fmt.Errorf("%w: %q is a %s", ErrInvalidItemType, r.Id(), tmpl.Type())
	}
	return k, nil
}

// Currency names the template that is always stackable and the
// denomination templates that convert into it when added to a container.
type Currency struct {
	Base          storage.Identifier
	Denominations []storage.Identifier
}

// DefaultCurrency is plain gold.
var DefaultCurrency = Currency{
	Base:          "gold_001",
	Denominations: []storage.Identifier{"gold_005", "gold_010", "gold_025", "gold_100"},
}

// IsBase reports whether id is the base currency.
func (c Currency) IsBase(id storage.Identifier) bool {
	return c.Base != "" && c.Base.Equal(id)
}

// IsDenomination reports whether id converts into the base currency.
func (c Currency) IsDenomination(id storage.Identifier) bool {
	return slices.ContainsFunc(c.Denominations, id.Equal)
}

// Stacks reports whether two references may be merged into one stack.
// Merging never discards state: any difference in owner, faction, soul,
// script state, or (where the kind tracks them) enchantment charge and
// condition keeps the items apart. The base currency always stacks.
func Stacks(a, b *Ref, c Currency) bool {
	if !a.Id().Equal(b.Id()) {
		return false
	}
	if c.IsBase(a.Id()) {
		return true
	}

	if !a.Owner.Equal(b.Owner) || !a.Faction.Equal(b.Faction) {
		return false
	}
	if a.State.Soul != b.State.Soul {
		return false
	}
	if !a.State.Locals.Equal(b.State.Locals) {
		return false
	}

	k, err := Classify(a)
	if err != nil {
		return false
	}
	if k.Enchantable() && a.Charge() != b.Charge() {
		return false
	}
	if k.Degrades() && a.Condition() != b.Condition() {
		return false
	}

	return true
}
