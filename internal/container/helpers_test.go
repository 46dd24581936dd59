package container

import (
	"strings"
	"testing"

	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
)

type testTemplates map[string]*item.Template

func (tt testTemplates) Get(id string) *item.Template {
	return tt[strings.ToLower(id)]
}

var templates = testTemplates{
	"gold_001":         {Name: "Gold", TypeStr: item.TypeMiscellaneous, Value: 1},
	"gold_005":         {Name: "Gold", TypeStr: item.TypeMiscellaneous, Value: 5},
	"gold_100":         {Name: "Gold", TypeStr: item.TypeMiscellaneous, Value: 100},
	"p_restore_health": {Name: "Restore Health", TypeStr: item.TypePotion, Weight: 0.5, Value: 40},
	"apparatus_mortar": {Name: "Mortar and Pestle", TypeStr: item.TypeApparatus, Weight: 2},
	"iron_cuirass":     {Name: "Iron Cuirass", TypeStr: item.TypeArmor, Weight: 30, Health: 200},
	"bk_guide":         {Name: "Guide to Vivec", TypeStr: item.TypeBook, Weight: 3},
	"common_shirt":     {Name: "Common Shirt", TypeStr: item.TypeClothing, Weight: 1},
	"ingred_saltrice":  {Name: "Saltrice", TypeStr: item.TypeIngredient, Weight: 0.25},
	"light_torch":      {Name: "Torch", TypeStr: item.TypeLight, Weight: 2, Duration: 300},
	"pick_apprentice":  {Name: "Apprentice's Lockpick", TypeStr: item.TypeLockpick, Weight: 0.25, Uses: 25},
	"misc_rope":        {Name: "Rope", TypeStr: item.TypeMiscellaneous, Weight: 1},
	"probe_apprentice": {Name: "Apprentice's Probe", TypeStr: item.TypeProbe, Weight: 0.25, Uses: 25},
	"hammer_repair":    {Name: "Apprentice's Armorer's Hammer", TypeStr: item.TypeRepair, Weight: 4, Uses: 10},
	"iron_longsword":   {Name: "Iron Longsword", TypeStr: item.TypeWeapon, Weight: 20, Health: 400},
	"silver_longsword": {Name: "Silver Flame Sword", TypeStr: item.TypeWeapon, Weight: 16, Health: 300, Enchantment: "fire", Capacity: 50},
	"door_wood":        {Name: "Wooden Door", TypeStr: item.TypeDoor},
}

type testActor struct {
	owner   storage.Identifier
	faction storage.Identifier
}

func (a testActor) OwnerId() storage.Identifier   { return a.owner }
func (a testActor) FactionId() storage.Identifier { return a.faction }

var player = testActor{owner: "player"}

func newRef(t *testing.T, id string) *item.Ref {
	t.Helper()
	r, err := item.Resolve(templates, id)
	if err != nil {
		t.Fatalf("resolving %q: %v", id, err)
	}
	return r
}

func mustAdd(t *testing.T, s *Store, r *item.Ref, count int) *Stack {
	t.Helper()
	it, err := s.Add(r, count, player, false)
	if err != nil {
		t.Fatalf("adding %q: %v", r.Id(), err)
	}
	return it.Stack()
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// liveStacks collects the stacks of a store by walking every partition
// directly, independent of the iterator.
func liveStacks(s *Store) []*Stack {
	var out []*Stack
	for k := range s.partitions {
		for _, st := range s.partitions[k].stacks {
			if !st.removed {
				out = append(out, st)
			}
		}
	}
	return out
}
