package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pixil98/go-stash/internal/container"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
)

// World is the single source of truth for all mutable game state.
// All access must go through its methods to ensure thread-safety.
type World struct {
	mu        sync.Mutex
	dict      *Dictionary
	publisher Publisher
	storeOpts []container.StoreOpt
	currency  item.Currency
	now       func() time.Time

	merchants  map[string]*MerchantInstance
	characters map[string]*CharacterInstance
}

type WorldOpt func(*World)

// WithStoreOpts applies opts to every inventory the world creates.
func WithStoreOpts(opts ...container.StoreOpt) WorldOpt {
	return func(w *World) {
		w.storeOpts = append(w.storeOpts, opts...)
	}
}

// WithCurrency sets the currency goods are priced in and applies its
// stacking rules to every inventory.
func WithCurrency(c item.Currency) WorldOpt {
	return func(w *World) {
		w.currency = c
		w.storeOpts = append(w.storeOpts, container.WithCurrency(c))
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) WorldOpt {
	return func(w *World) {
		w.now = now
	}
}

// RestockNotice is published on a merchant's subject after each restock.
type RestockNotice struct {
	Merchant string  `json:"merchant"`
	Stacks   int     `json:"stacks"`
	Weight   float64 `json:"weight"`
}

// NewWorld creates a merchant instance for every merchant definition and
// fills its stock. pub may be nil.
func NewWorld(dict *Dictionary, pub Publisher, opts ...WorldOpt) (*World, error) {
	w := &World{
		dict:       dict,
		publisher:  pub,
		currency:   item.DefaultCurrency,
		now:        time.Now,
		merchants:  make(map[string]*MerchantInstance),
		characters: make(map[string]*CharacterInstance),
	}
	for _, opt := range opts {
		opt(w)
	}

	now := w.now()
	for id, m := range dict.Merchants.GetAll() {
		mi, err := NewMerchantInstance(storage.NewResolvedSmartIdentifier(id, m), dict.Templates, w.storeOpts...)
		if err != nil {
			return nil, err
		}
		if _, err := mi.Restock(true, now); err != nil {
			return nil, err
		}
		w.merchants[strings.ToLower(id)] = mi
	}

	return w, nil
}

// Merchant returns the merchant instance for id.
func (w *World) Merchant(id storage.Identifier) (*MerchantInstance, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.merchant(id)
}

func (w *World) merchant(id storage.Identifier) (*MerchantInstance, error) {
	mi, ok := w.merchants[strings.ToLower(id.String())]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMerchantNotFound, id)
	}
	return mi, nil
}

// LoadCharacter returns the loaded instance of a character, loading it from
// the character store on first use.
func (w *World) LoadCharacter(id storage.Identifier) (*CharacterInstance, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := strings.ToLower(id.String())
	if ci, ok := w.characters[key]; ok {
		return ci, nil
	}

	def := w.dict.Characters.Get(key)
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrCharacterNotFound, id)
	}

	ci, err := NewCharacterInstance(storage.NewResolvedSmartIdentifier(key, def), w.dict.Templates, w.storeOpts...)
	if err != nil {
		return nil, err
	}
	w.characters[key] = ci

	slog.Info("character loaded", "character", key, "stacks", ci.Inventory.Len())
	return ci, nil
}

// SaveCharacter persists a loaded character.
func (w *World) SaveCharacter(id storage.Identifier) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ci, err := w.character(id)
	if err != nil {
		return err
	}
	return ci.Save(w.dict.Characters)
}

func (w *World) character(id storage.Identifier) (*CharacterInstance, error) {
	ci, ok := w.characters[strings.ToLower(id.String())]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not loaded", ErrCharacterNotFound, id)
	}
	return ci, nil
}

// trader is one side of a trade.
type trader struct {
	actor Actor
	inv   *container.Store
}

// Buy moves up to count units of a merchant's stack to a loaded character,
// who pays the template value of each unit. Returns the number of units
// bought.
func (w *World) Buy(charId, merchantId storage.Identifier, instanceId string, count int) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ci, err := w.character(charId)
	if err != nil {
		return 0, err
	}
	mi, err := w.merchant(merchantId)
	if err != nil {
		return 0, err
	}

	return w.trade(
		trader{actor: mi.Actor(), inv: mi.Inventory},
		trader{actor: ci.Actor(), inv: ci.Inventory},
		instanceId, count,
	)
}

// Sell moves up to count units of a character's stack to a merchant, who
// pays the template value of each unit. Returns the number of units sold.
func (w *World) Sell(charId, merchantId storage.Identifier, instanceId string, count int) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ci, err := w.character(charId)
	if err != nil {
		return 0, err
	}
	mi, err := w.merchant(merchantId)
	if err != nil {
		return 0, err
	}

	return w.trade(
		trader{actor: ci.Actor(), inv: ci.Inventory},
		trader{actor: mi.Actor(), inv: mi.Inventory},
		instanceId, count,
	)
}

func (w *World) trade(seller, buyer trader, instanceId string, count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: count %d", container.ErrInvalidArgument, count)
	}

	st := seller.inv.Lookup(instanceId)
	if st == nil {
		return 0, fmt.Errorf("%w: %q", ErrItemNotFound, instanceId)
	}
	if w.currency.IsBase(st.Id()) {
		return 0, fmt.Errorf("%w: currency can not be traded", container.ErrInvalidArgument)
	}

	n := min(count, st.Count())
	price := 0
	if base := st.Base(); base != nil {
		price = base.Value * n
	}
	coin := w.currency.Base.String()
	if price > 0 && buyer.inv.Count(coin) < price {
		return 0, fmt.Errorf("%w: %d needed, %d held", ErrInsufficientFunds, price, buyer.inv.Count(coin))
	}

	ref := st.Ref.Clone()
	moved := seller.inv.RemoveStack(st, n, buyer.actor)
	if _, err := buyer.inv.Add(ref, moved, buyer.actor, true); err != nil {
		return 0, fmt.Errorf("moving %q: %w", ref.Id(), err)
	}

	if price > 0 {
		paid := buyer.inv.Remove(coin, price, seller.actor)
		if _, err := seller.inv.AddId(coin, paid, seller.actor); err != nil {
			return moved, fmt.Errorf("paying %d %s: %w", paid, coin, err)
		}
	}

	slog.Info("trade complete",
		"item", ref.Id(),
		"count", moved,
		"price", price,
		"seller", seller.actor.Id,
		"buyer", buyer.actor.Id)

	return moved, nil
}

// Tick restocks every merchant whose restock time has been reached and
// publishes a notice for each one.
func (w *World) Tick(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	for _, id := range slices.Sorted(maps.Keys(w.merchants)) {
		mi := w.merchants[id]
		restocked, err := mi.Restock(false, now)
		if err != nil {
			return err
		}
		if restocked {
			w.publishRestock(ctx, mi)
		}
	}

	return nil
}

func (w *World) publishRestock(ctx context.Context, mi *MerchantInstance) {
	if w.publisher == nil {
		return
	}

	data, err := json.Marshal(RestockNotice{
		Merchant: mi.Merchant.Id(),
		Stacks:   mi.Inventory.Len(),
		Weight:   mi.Inventory.Weight(),
	})
	if err != nil {
		slog.WarnContext(ctx, "encoding restock notice", "merchant", mi.Merchant.Id(), "error", err)
		return
	}

	err = w.publisher.PublishToMerchant(storage.Identifier(mi.Merchant.Id()), data)
	if err != nil {
		slog.WarnContext(ctx, "publishing restock notice", "merchant", mi.Merchant.Id(), "error", err)
	}
}
