package game

import (
	"github.com/pixil98/go-stash/internal/storage"
)

// Actor is the identity an entity stamps on items it takes ownership of.
type Actor struct {
	Id      storage.Identifier
	Faction storage.Identifier
}

func (a Actor) OwnerId() storage.Identifier {
	return a.Id
}

func (a Actor) FactionId() storage.Identifier {
	return a.Faction
}
