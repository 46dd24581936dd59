package item

import (
	"fmt"
	"strings"
)

// Kind is one of the twelve item kinds a container can hold. The numeric
// order of the constants is the canonical order used for partition layout
// and iteration.
type Kind int

const (
	KindPotion Kind = iota
	KindApparatus
	KindArmor
	KindBook
	KindClothing
	KindIngredient
	KindLight
	KindLockpick
	KindMiscellaneous
	KindProbe
	KindRepair
	KindWeapon

	// KindCount is the number of item kinds.
	KindCount int = iota
)

var kindNames = [KindCount]string{
	"potion",
	"apparatus",
	"armor",
	"book",
	"clothing",
	"ingredient",
	"light",
	"lockpick",
	"miscellaneous",
	"probe",
	"repair",
	"weapon",
}

// Kinds returns every kind in canonical order.
func Kinds() []Kind {
	kinds := make([]Kind, KindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the twelve kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < KindCount
}

// Mask returns the single-bit mask selecting k.
func (k Kind) Mask() Mask {
	if !k.Valid() {
		return 0
	}
	return 1 << uint(k)
}

// Enchantable reports whether items of this kind carry an enchantment charge.
func (k Kind) Enchantable() bool {
	switch k {
	case KindArmor, KindBook, KindClothing, KindWeapon:
		return true
	default:
		return false
	}
}

// Degrades reports whether items of this kind track remaining condition,
// uses or burn time.
func (k Kind) Degrades() bool {
	switch k {
	case KindArmor, KindWeapon, KindLockpick, KindProbe, KindRepair, KindLight:
		return true
	default:
		return false
	}
}

// Mask is a bitset of kinds.
type Mask uint16

const (
	MaskPotion        Mask = 1 << iota // 0x0001
	MaskApparatus                      // 0x0002
	MaskArmor                          // 0x0004
	MaskBook                           // 0x0008
	MaskClothing                       // 0x0010
	MaskIngredient                     // 0x0020
	MaskLight                          // 0x0040
	MaskLockpick                       // 0x0080
	MaskMiscellaneous                  // 0x0100
	MaskProbe                          // 0x0200
	MaskRepair                         // 0x0400
	MaskWeapon                         // 0x0800

	// MaskAll selects every kind.
	MaskAll Mask = 1<<KindCount - 1
)

// Has reports whether k is selected.
func (m Mask) Has(k Kind) bool {
	return m&k.Mask() != 0
}

// Kinds returns the selected kinds in canonical order.
func (m Mask) Kinds() []Kind {
	var kinds []Kind
	for k := range KindCount {
		if m.Has(Kind(k)) {
			kinds = append(kinds, Kind(k))
		}
	}
	return kinds
}

func (m Mask) String() string {
	if m&MaskAll == MaskAll {
		return "all"
	}
	names := make([]string, 0, KindCount)
	for _, k := range m.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, "|")
}

// ParseMask parses a "|" or "," separated list of kind names. "all" selects
// every kind.
func ParseMask(s string) (Mask, error) {
	var m Mask
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "all" {
			m |= MaskAll
			continue
		}
		k, ok := kindByName(name)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidItemType, name)
		}
		m |= k.Mask()
	}
	return m, nil
}

func kindByName(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}
