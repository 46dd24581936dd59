package game

import "github.com/pixil98/go-stash/internal/storage"

// Publisher provides methods for publishing messages to game channels.
type Publisher interface {
	PublishToMerchant(merchantId storage.Identifier, data []byte) error
}
