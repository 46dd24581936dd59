package item

import (
	"fmt"

	"github.com/pixil98/go-stash/internal/storage"
)

// Full marks a condition or charge that is still at the template maximum.
const Full = -1

// State is the per-instance override record of an item. Two items of the
// same template only merge when their states match.
type State struct {
	// Condition is the remaining health, uses or burn time
	Condition int `json:"condition"`

	// Charge is the remaining enchantment charge
	Charge int `json:"charge"`

	// Soul is the id of the creature bound into a soul gem
	Soul string `json:"soul,omitempty"`

	// Locals holds persistent script variables
	Locals storage.ExtensionState `json:"locals,omitempty"`
}

// NewState returns the state of a freshly created item.
func NewState() State {
	return State{Condition: Full, Charge: Full}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	s.Locals = s.Locals.Clone()
	return s
}

// Ref is a handle to an item: a template plus the mutable fields that
// distinguish one instance from another.
type Ref struct {
	Template storage.SmartIdentifier[*Template]
	State    State
	Owner    storage.Identifier
	Faction  storage.Identifier
}

// NewRef returns a transient reference to a new item of the given template.
func NewRef(id string, tmpl *Template) *Ref {
	return &Ref{
		Template: storage.NewResolvedSmartIdentifier(id, tmpl),
		State:    NewState(),
	}
}

// Resolve looks id up in templates and returns a transient reference to it.
func Resolve(templates Templates, id string) (*Ref, error) {
	tmpl := templates.Get(id)
	if tmpl == nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return NewRef(id, tmpl), nil
}

// Id returns the template id.
func (r *Ref) Id() storage.Identifier {
	return storage.Identifier(r.Template.Id())
}

// Base returns the resolved template, or nil.
func (r *Ref) Base() *Template {
	return r.Template.Get()
}

// Condition returns the remaining condition, uses or burn time.
func (r *Ref) Condition() int {
	if r.State.Condition == Full && r.Base() != nil {
		return r.Base().MaxCondition()
	}
	return r.State.Condition
}

// Charge returns the remaining enchantment charge.
func (r *Ref) Charge() int {
	if r.State.Charge == Full && r.Base() != nil {
		return r.Base().Capacity
	}
	return r.State.Charge
}

// UnitWeight returns the weight of a single unit, or 0 when unresolved.
func (r *Ref) UnitWeight() float64 {
	if r.Base() == nil {
		return 0
	}
	return r.Base().Weight
}

// Clone returns a copy of r that shares no mutable state with it.
func (r *Ref) Clone() *Ref {
	c := *r
	c.State = r.State.Clone()
	return &c
}
