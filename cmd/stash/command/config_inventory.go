package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-stash/internal/container"
	"github.com/pixil98/go-stash/internal/game"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
)

type InventoryConfig struct {
	// Currency is the always-stackable coin template. Empty keeps gold.
	Currency      string               `json:"currency"`
	Denominations []string             `json:"denominations,omitempty"`
	FillPolicy    container.FillPolicy `json:"fill_policy"`
}

func (c *InventoryConfig) validate() error {
	el := errors.NewErrorList()

	if c.Currency == "" && len(c.Denominations) > 0 {
		el.Add(fmt.Errorf("denominations require a currency"))
	}
	for i, d := range c.Denominations {
		if d == "" {
			el.Add(fmt.Errorf("denomination %d: id is required", i))
		}
		if storage.Identifier(d).Equal(storage.Identifier(c.Currency)) {
			el.Add(fmt.Errorf("denomination %d: %q is the currency itself", i, d))
		}
	}

	return el.Err()
}

func (c *InventoryConfig) currency() item.Currency {
	if c.Currency == "" {
		return item.DefaultCurrency
	}

	cur := item.Currency{Base: storage.Identifier(c.Currency)}
	for _, d := range c.Denominations {
		cur.Denominations = append(cur.Denominations, storage.Identifier(d))
	}
	return cur
}

func (c *InventoryConfig) BuildWorldOpts() []game.WorldOpt {
	return []game.WorldOpt{
		game.WithCurrency(c.currency()),
		game.WithStoreOpts(container.WithFillPolicy(c.FillPolicy)),
	}
}
