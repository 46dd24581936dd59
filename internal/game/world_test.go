package game

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-stash/internal/container"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
	"github.com/pixil98/go-testutil"
)

// memStore implements storage.Storer for testing
type memStore[T storage.ValidatingSpec] struct {
	records map[string]T
	saves   int
}

func newMemStore[T storage.ValidatingSpec](records map[string]T) *memStore[T] {
	m := &memStore[T]{records: make(map[string]T)}
	for k, v := range records {
		m.records[strings.ToLower(k)] = v
	}
	return m
}

func (m *memStore[T]) Get(id string) T {
	return m.records[strings.ToLower(id)]
}

func (m *memStore[T]) GetAll() map[string]T {
	return maps.Clone(m.records)
}

func (m *memStore[T]) Save(id string, v T) error {
	m.records[strings.ToLower(id)] = v
	m.saves++
	return nil
}

type fakePublisher struct {
	msgs map[storage.Identifier][][]byte
}

func (p *fakePublisher) PublishToMerchant(id storage.Identifier, data []byte) error {
	if p.msgs == nil {
		p.msgs = make(map[storage.Identifier][][]byte)
	}
	p.msgs[id] = append(p.msgs[id], data)
	return nil
}

func newDictionary() *Dictionary {
	return &Dictionary{
		Templates: newMemStore(map[string]*item.Template{
			"gold_001":         {Name: "Gold", TypeStr: item.TypeMiscellaneous, Value: 1},
			"gold_010":         {Name: "Gold", TypeStr: item.TypeMiscellaneous, Value: 10},
			"light_torch":      {Name: "Torch", TypeStr: item.TypeLight, Weight: 2, Value: 5, Duration: 300},
			"p_restore_health": {Name: "Restore Health", TypeStr: item.TypePotion, Weight: 0.5, Value: 40},
			"iron_longsword":   {Name: "Iron Longsword", TypeStr: item.TypeWeapon, Weight: 20, Value: 50, Health: 400},
		}),
		Merchants: newMemStore(map[string]*Merchant{
			"arrille": {
				Name:    "Arrille",
				Faction: "hlaalu",
				Restock: "1h",
				Stock: []container.FillEntry{
					{Id: "gold_001", Count: 500},
					{Id: "light_torch", Count: -3},
					{Id: "p_restore_health", Count: 4},
				},
			},
			"creeper": {
				Name: "Creeper",
				Stock: []container.FillEntry{
					{Id: "gold_010", Count: 100},
				},
			},
		}),
		Characters: newMemStore(map[string]*Character{
			"fargoth": {
				Name: "Fargoth",
				Inventory: []container.StackState{
					{Id: "gold_001", Count: 100, State: item.NewState()},
					{Id: "iron_longsword", Count: 1, State: item.NewState()},
				},
			},
		}),
	}
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func newWorld(t *testing.T) (*World, *Dictionary, *fakePublisher, *clock) {
	t.Helper()
	dict := newDictionary()
	pub := &fakePublisher{}
	clk := &clock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}

	w, err := NewWorld(dict, pub, WithClock(clk.now))
	if err != nil {
		t.Fatalf("creating world: %v", err)
	}
	return w, dict, pub, clk
}

func TestNewWorld_StocksMerchants(t *testing.T) {
	w, _, pub, _ := newWorld(t)

	arrille, err := w.Merchant("Arrille")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inv := arrille.Inventory
	testutil.AssertEqual(t, "gold", inv.Count("gold_001"), 500)
	testutil.AssertEqual(t, "torch stacks", inv.Partition(item.KindLight).Live(), 3)
	testutil.AssertEqual(t, "potions", inv.Count("p_restore_health"), 4)
	testutil.AssertEqual(t, "stacks", inv.Len(), 5)

	potion := inv.Search("p_restore_health")
	testutil.AssertEqual(t, "owner", potion.Owner.String(), "arrille")
	testutil.AssertEqual(t, "faction", potion.Faction.String(), "hlaalu")

	creeper, err := w.Merchant("creeper")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "converted gold", creeper.Inventory.Count("gold_001"), 1000)

	_, err = w.Merchant("nobody")
	if !errors.Is(err, ErrMerchantNotFound) {
		t.Errorf("expected merchant not found, got %v", err)
	}
	testutil.AssertEqual(t, "no notices before first tick", len(pub.msgs), 0)
}

func TestWorld_Tick(t *testing.T) {
	w, _, pub, clk := newWorld(t)
	arrille, _ := w.Merchant("arrille")
	arrille.Inventory.Remove("p_restore_health", 3, nil)

	if err := w.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "not due yet", arrille.Inventory.Count("p_restore_health"), 1)
	testutil.AssertEqual(t, "no notices", len(pub.msgs), 0)

	clk.t = clk.t.Add(2 * time.Hour)
	if err := w.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "restocked", arrille.Inventory.Count("p_restore_health"), 4)
	testutil.AssertEqual(t, "stacks", arrille.Inventory.Len(), 5)

	testutil.AssertEqual(t, "arrille notices", len(pub.msgs["arrille"]), 1)
	testutil.AssertEqual(t, "creeper never restocks", len(pub.msgs["creeper"]), 0)

	var notice RestockNotice
	if err := json.Unmarshal(pub.msgs["arrille"][0], &notice); err != nil {
		t.Fatalf("decoding notice: %v", err)
	}
	testutil.AssertEqual(t, "notice merchant", notice.Merchant, "arrille")
	testutil.AssertEqual(t, "notice stacks", notice.Stacks, 5)
	testutil.AssertEqual(t, "notice weight", notice.Weight, 8.0)
}

func TestWorld_Buy(t *testing.T) {
	w, _, _, _ := newWorld(t)
	fargoth, err := w.LoadCharacter("fargoth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arrille, _ := w.Merchant("arrille")
	potions := arrille.Inventory.Search("p_restore_health")

	n, err := w.Buy("fargoth", "arrille", potions.InstanceId, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "bought", n, 2)
	testutil.AssertEqual(t, "buyer gold", fargoth.Inventory.Count("gold_001"), 20)
	testutil.AssertEqual(t, "seller gold", arrille.Inventory.Count("gold_001"), 580)
	testutil.AssertEqual(t, "seller potions", potions.Count(), 2)

	bought := fargoth.Inventory.Search("p_restore_health")
	testutil.AssertEqual(t, "bought count", bought.Count(), 2)
	testutil.AssertEqual(t, "new owner", bought.Owner.String(), "fargoth")
	testutil.AssertEqual(t, "faction cleared", bought.Faction.String(), "")

	_, err = w.Buy("fargoth", "arrille", potions.InstanceId, 5)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected insufficient funds, got %v", err)
	}
	testutil.AssertEqual(t, "nothing moved", potions.Count(), 2)
	testutil.AssertEqual(t, "gold kept", fargoth.Inventory.Count("gold_001"), 20)
}

func TestWorld_Buy_Errors(t *testing.T) {
	w, _, _, _ := newWorld(t)
	arrille, _ := w.Merchant("arrille")
	gold := arrille.Inventory.Search("gold_001")
	torch := arrille.Inventory.Search("light_torch")

	_, err := w.Buy("fargoth", "arrille", torch.InstanceId, 1)
	if !errors.Is(err, ErrCharacterNotFound) {
		t.Errorf("expected character not found, got %v", err)
	}

	if _, err := w.LoadCharacter("fargoth"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]struct {
		merchant   storage.Identifier
		instanceId string
		count      int
		expErr     error
	}{
		"unknown merchant": {
			merchant:   "nobody",
			instanceId: torch.InstanceId,
			count:      1,
			expErr:     ErrMerchantNotFound,
		},
		"unknown item": {
			merchant:   "arrille",
			instanceId: "no-such-instance",
			count:      1,
			expErr:     ErrItemNotFound,
		},
		"currency": {
			merchant:   "arrille",
			instanceId: gold.InstanceId,
			count:      1,
			expErr:     container.ErrInvalidArgument,
		},
		"zero count": {
			merchant:   "arrille",
			instanceId: torch.InstanceId,
			count:      0,
			expErr:     container.ErrInvalidArgument,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := w.Buy("fargoth", tt.merchant, tt.instanceId, tt.count)
			if !errors.Is(err, tt.expErr) {
				t.Errorf("expected error %v, got %v", tt.expErr, err)
			}
		})
	}
}

func TestWorld_Sell(t *testing.T) {
	w, _, _, _ := newWorld(t)
	fargoth, err := w.LoadCharacter("fargoth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arrille, _ := w.Merchant("arrille")
	sword := fargoth.Inventory.Search("iron_longsword")

	n, err := w.Sell("fargoth", "arrille", sword.InstanceId, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "sold", n, 1)
	testutil.AssertEqual(t, "sword gone", fargoth.Inventory.Count("iron_longsword"), 0)
	testutil.AssertEqual(t, "seller paid", fargoth.Inventory.Count("gold_001"), 150)
	testutil.AssertEqual(t, "buyer paid", arrille.Inventory.Count("gold_001"), 450)

	stocked := arrille.Inventory.Search("iron_longsword")
	testutil.AssertEqual(t, "new owner", stocked.Owner.String(), "arrille")
	testutil.AssertEqual(t, "new faction", stocked.Faction.String(), "hlaalu")
}

func TestWorld_Characters(t *testing.T) {
	w, dict, _, _ := newWorld(t)

	_, err := w.LoadCharacter("vivec")
	if !errors.Is(err, ErrCharacterNotFound) {
		t.Errorf("expected character not found, got %v", err)
	}
	err = w.SaveCharacter("fargoth")
	if !errors.Is(err, ErrCharacterNotFound) {
		t.Errorf("expected character not found before load, got %v", err)
	}

	first, err := w.LoadCharacter("Fargoth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := w.LoadCharacter("fargoth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "loaded once", first == second, true)
	testutil.AssertEqual(t, "actor", first.Actor().OwnerId().String(), "fargoth")

	if _, err := first.Inventory.AddId("light_torch", 2, first.Actor()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.SaveCharacter("fargoth"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chars := dict.Characters.(*memStore[*Character])
	testutil.AssertEqual(t, "saves", chars.saves, 1)

	saved := chars.Get("fargoth")
	testutil.AssertEqual(t, "saved stacks", len(saved.Inventory), 3)
	var torch container.StackState
	for _, ss := range saved.Inventory {
		if ss.Id.Equal("light_torch") {
			torch = ss
		}
	}
	testutil.AssertEqual(t, "saved count", torch.Count, 2)
	testutil.AssertEqual(t, "saved owner", torch.Owner.String(), "fargoth")
}
