package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-stash/internal/container"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
)

// Character represents a player character in the game.
type Character struct {
	// Name is the character's display name
	Name string `json:"name"`

	// Faction is stamped on items the character acquires
	Faction storage.Identifier `json:"faction,omitempty"`

	// Inventory is the saved form of the character's container
	Inventory []container.StackState `json:"inventory,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (c *Character) Validate() error {
	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("character name is required"))
	}
	for i, ss := range c.Inventory {
		if ss.Id == "" {
			el.Add(fmt.Errorf("inventory %d: id is required", i))
		}
		if ss.Count <= 0 {
			el.Add(fmt.Errorf("inventory %d: count must be positive", i))
		}
	}

	return el.Err()
}

// CharacterInstance is a loaded character with a live inventory.
type CharacterInstance struct {
	Character storage.SmartIdentifier[*Character]
	Inventory *container.Store
}

// NewCharacterInstance rebuilds the character's inventory from its saved
// stacks.
func NewCharacterInstance(char storage.SmartIdentifier[*Character], templates item.Templates, opts ...container.StoreOpt) (*CharacterInstance, error) {
	def := char.Get()
	if def == nil {
		return nil, fmt.Errorf("unable to create instance from unresolved character %q", char.Id())
	}

	inv := container.NewStore(templates, opts...)
	if err := inv.Restore(def.Inventory); err != nil {
		return nil, fmt.Errorf("character %q: restoring inventory: %w", char.Id(), err)
	}

	return &CharacterInstance{
		Character: char,
		Inventory: inv,
	}, nil
}

// Actor returns the identity the character stamps on acquired items.
func (c *CharacterInstance) Actor() Actor {
	return Actor{
		Id:      storage.Identifier(c.Character.Id()),
		Faction: c.Character.Get().Faction,
	}
}

// Save persists the character with a snapshot of its current inventory.
func (c *CharacterInstance) Save(chars storage.Storer[*Character]) error {
	def := c.Character.Get()
	def.Inventory = c.Inventory.Snapshot()
	return chars.Save(c.Character.Id(), def)
}
