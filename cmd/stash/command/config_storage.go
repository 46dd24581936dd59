package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-stash/internal/game"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
)

type StorageConfig struct {
	Templates  AssetConfig[*item.Template]  `json:"templates"`
	Merchants  AssetConfig[*game.Merchant]  `json:"merchants"`
	Characters AssetConfig[*game.Character] `json:"characters"`
}

func (c *StorageConfig) BuildDictionary() (*game.Dictionary, error) {
	templates, err := c.Templates.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating template store: %w", err)
	}
	merchants, err := c.Merchants.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating merchant store: %w", err)
	}
	chars, err := c.Characters.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating character store: %w", err)
	}

	dict := &game.Dictionary{
		Templates:  templates,
		Merchants:  merchants,
		Characters: chars,
	}

	if err := dict.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return dict, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Templates.Validate("templates"))
	el.Add(c.Merchants.Validate("merchants"))
	el.Add(c.Characters.Validate("characters"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
