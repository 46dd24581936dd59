package container

import "github.com/pixil98/go-stash/internal/item"

type StoreOpt func(*Store)

// WithCurrency replaces the default gold currency rules.
func WithCurrency(c item.Currency) StoreOpt {
	return func(s *Store) {
		s.currency = c
	}
}

// WithFillPolicy sets how Fill treats negative counts.
func WithFillPolicy(p FillPolicy) StoreOpt {
	return func(s *Store) {
		s.fillPolicy = p
	}
}
