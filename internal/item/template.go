package item

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// Type is the record type of a world object template. The twelve item
// types can be carried in a container; the rest can not.
type Type string

const (
	TypePotion        Type = "potion"
	TypeApparatus     Type = "apparatus"
	TypeArmor         Type = "armor"
	TypeBook          Type = "book"
	TypeClothing      Type = "clothing"
	TypeIngredient    Type = "ingredient"
	TypeLight         Type = "light"
	TypeLockpick      Type = "lockpick"
	TypeMiscellaneous Type = "miscellaneous"
	TypeProbe         Type = "probe"
	TypeRepair        Type = "repair"
	TypeWeapon        Type = "weapon"

	TypeActivator Type = "activator"
	TypeContainer Type = "container"
	TypeCreature  Type = "creature"
	TypeDoor      Type = "door"
	TypeNPC       Type = "npc"
	TypeStatic    Type = "static"
)

var typeKinds = map[Type]Kind{
	TypePotion:        KindPotion,
	TypeApparatus:     KindApparatus,
	TypeArmor:         KindArmor,
	TypeBook:          KindBook,
	TypeClothing:      KindClothing,
	TypeIngredient:    KindIngredient,
	TypeLight:         KindLight,
	TypeLockpick:      KindLockpick,
	TypeMiscellaneous: KindMiscellaneous,
	TypeProbe:         KindProbe,
	TypeRepair:        KindRepair,
	TypeWeapon:        KindWeapon,
}

// Kind returns the item kind for t. ok is false for types that can not be
// placed in a container.
func (t Type) Kind() (k Kind, ok bool) {
	k, ok = typeKinds[Type(strings.ToLower(string(t)))]
	return k, ok
}

// Known reports whether t names any world object type.
func (t Type) Known() bool {
	if _, ok := t.Kind(); ok {
		return true
	}
	switch Type(strings.ToLower(string(t))) {
	case TypeActivator, TypeContainer, TypeCreature, TypeDoor, TypeNPC, TypeStatic:
		return true
	default:
		return false
	}
}

// Template holds the immutable base stats of a world object, loaded from
// asset files. Template ids follow the convention <name>_<variant>
// (e.g., "gold_001", "iron_longsword").
type Template struct {
	// Name is shown in inventory listings (e.g., "Iron Longsword")
	Name string `json:"name"`

	// TypeStr is the object type from the asset file
	TypeStr Type `json:"type"`

	// Weight is the weight of a single unit
	Weight float64 `json:"weight"`

	// Value is the base price of a single unit. For currency denominations
	// it is the number of base coins the template is worth.
	Value int `json:"value"`

	// Health is the maximum condition of armor and weapons
	Health int `json:"health,omitempty"`

	// Uses is the number of uses of lockpicks, probes and repair tools
	Uses int `json:"uses,omitempty"`

	// Duration is the burn time of a light in seconds
	Duration int `json:"duration,omitempty"`

	// Enchantment is the enchantment carried by the item, if any
	Enchantment string `json:"enchantment,omitempty"`

	// Capacity is the maximum enchantment charge
	Capacity int `json:"capacity,omitempty"`

	// Script is attached to every instance of the template
	Script string `json:"script,omitempty"`
}

// Type returns the object type.
func (t *Template) Type() Type {
	return Type(strings.ToLower(string(t.TypeStr)))
}

// MaxCondition returns the condition, uses or burn time of a new item, or 0
// for kinds that do not degrade.
func (t *Template) MaxCondition() int {
	k, ok := t.Type().Kind()
	if !ok {
		return 0
	}
	switch k {
	case KindArmor, KindWeapon:
		return t.Health
	case KindLockpick, KindProbe, KindRepair:
		return t.Uses
	case KindLight:
		return t.Duration
	default:
		return 0
	}
}

// Validate satisfies storage.ValidatingSpec
func (t *Template) Validate() error {
	el := errors.NewErrorList()

	if t.Name == "" {
		el.Add(fmt.Errorf("template name is required"))
	}
	if t.TypeStr == "" {
		el.Add(fmt.Errorf("template type is required"))
	} else if !t.Type().Known() {
		el.Add(fmt.Errorf("template type %q is invalid", t.TypeStr))
	}
	if t.Weight < 0 {
		el.Add(fmt.Errorf("template weight must not be negative"))
	}
	if t.Value < 0 {
		el.Add(fmt.Errorf("template value must not be negative"))
	}

	k, isItem := t.Type().Kind()
	if isItem && t.Enchantment != "" && !k.Enchantable() {
		el.Add(fmt.Errorf("%s templates can not carry an enchantment", k))
	}
	if t.Capacity < 0 {
		el.Add(fmt.Errorf("template capacity must not be negative"))
	}
	if t.Health < 0 || t.Uses < 0 || t.Duration < 0 {
		el.Add(fmt.Errorf("template condition must not be negative"))
	}

	return el.Err()
}

// Templates resolves template ids to templates. Get returns nil for unknown ids.
type Templates interface {
	Get(id string) *Template
}
