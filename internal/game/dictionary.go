package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
)

// Dictionary holds all game definition stores. It provides a single
// reference that can be passed to resolution methods so they all
// share the same signature.
type Dictionary struct {
	Templates  storage.Storer[*item.Template]
	Merchants  storage.Storer[*Merchant]
	Characters storage.Storer[*Character]
}

// Resolve checks the template references of merchants. Characters are
// resolved when they are loaded instead.
func (d *Dictionary) Resolve() error {
	el := errors.NewErrorList()
	for id, m := range d.Merchants.GetAll() {
		if err := m.Resolve(d.Templates); err != nil {
			el.Add(fmt.Errorf("merchant %s: %w", id, err))
		}
	}
	return el.Err()
}
