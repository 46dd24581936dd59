package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-stash/internal/container"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
)

// Merchant defines a trader whose stock is rebuilt from a fill list.
type Merchant struct {
	// Name is the merchant's display name
	Name string `json:"name"`

	// Faction is stamped on the merchant's stock
	Faction storage.Identifier `json:"faction,omitempty"`

	// Restock is how often the stock is rebuilt (e.g., "10m", "24h").
	// Empty means the stock is only filled once.
	Restock string `json:"restock,omitempty"`

	// Stock lists the goods to fill with. A negative count stocks that many
	// individually owned units.
	Stock []container.FillEntry `json:"stock"`
}

// Validate satisfies storage.ValidatingSpec
func (m *Merchant) Validate() error {
	el := errors.NewErrorList()

	if m.Name == "" {
		el.Add(fmt.Errorf("merchant name is required"))
	}

	if m.Restock != "" {
		d, err := time.ParseDuration(m.Restock)
		if err != nil {
			el.Add(fmt.Errorf("invalid restock %q: %w", m.Restock, err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("restock must be positive"))
		}
	}

	for i, e := range m.Stock {
		if e.Id == "" {
			el.Add(fmt.Errorf("stock %d: id is required", i))
		}
		if e.Count == 0 {
			el.Add(fmt.Errorf("stock %d: count must not be zero", i))
		}
	}

	return el.Err()
}

// Resolve checks that every stocked template exists.
func (m *Merchant) Resolve(templates item.Templates) error {
	el := errors.NewErrorList()
	for i, e := range m.Stock {
		if templates.Get(e.Id) == nil {
			el.Add(fmt.Errorf("stock %d: %w: %q", i, item.ErrTemplateNotFound, e.Id))
		}
	}
	return el.Err()
}

// MerchantInstance is a merchant with a live inventory.
type MerchantInstance struct {
	Merchant  storage.SmartIdentifier[*Merchant]
	Inventory *container.Store

	nextRestock     time.Time     // when stock should next be rebuilt (runtime only)
	restockDuration time.Duration // parsed restock
	stocked         bool
}

func NewMerchantInstance(merchant storage.SmartIdentifier[*Merchant], templates item.Templates, opts ...container.StoreOpt) (*MerchantInstance, error) {
	def := merchant.Get()
	if def == nil {
		return nil, fmt.Errorf("unable to create instance from unresolved merchant %q", merchant.Id())
	}

	mi := &MerchantInstance{
		Merchant:  merchant,
		Inventory: container.NewStore(templates, opts...),
	}
	if def.Restock != "" {
		d, err := time.ParseDuration(def.Restock)
		if err != nil {
			return nil, fmt.Errorf("merchant %q: invalid restock %q: %w", merchant.Id(), def.Restock, err)
		}
		mi.restockDuration = d
	}
	return mi, nil
}

// Actor returns the identity the merchant stamps on its stock.
func (m *MerchantInstance) Actor() Actor {
	return Actor{
		Id:      storage.Identifier(m.Merchant.Id()),
		Faction: m.Merchant.Get().Faction,
	}
}

// Restock empties the inventory and refills it from the stock list when the
// restock time has been reached. The first call always fills. If force is
// true the time check is skipped. Reports whether a restock happened.
func (m *MerchantInstance) Restock(force bool, now time.Time) (bool, error) {
	if !force && m.stocked {
		if m.restockDuration == 0 || now.Before(m.nextRestock) {
			return false, nil
		}
	}

	def := m.Merchant.Get()
	m.Inventory.Clear()
	err := m.Inventory.Fill(def.Stock, storage.Identifier(m.Merchant.Id()), def.Faction, nil)

	m.stocked = true
	if m.restockDuration > 0 {
		m.nextRestock = now.Add(m.restockDuration)
	}

	slog.Info("merchant restocked", "merchant", m.Merchant.Id(), "stacks", m.Inventory.Len(), "weight", m.Inventory.Weight())

	if err != nil {
		return true, fmt.Errorf("restocking merchant %q: %w", m.Merchant.Id(), err)
	}
	return true, nil
}
