package messaging

import (
	"fmt"

	"github.com/pixil98/go-stash/internal/storage"
)

// NatsPublisher publishes world notices to per-entity NATS subjects.
type NatsPublisher struct {
	server *NatsServer
}

// NewNatsPublisher wraps a NatsServer for notice delivery.
func NewNatsPublisher(server *NatsServer) *NatsPublisher {
	return &NatsPublisher{server: server}
}

// MerchantSubject returns the subject restock notices for a merchant are
// published on.
func MerchantSubject(merchantId storage.Identifier) string {
	return fmt.Sprintf("merchant-%s", merchantId)
}

func (p *NatsPublisher) PublishToMerchant(merchantId storage.Identifier, data []byte) error {
	return p.server.Publish(MerchantSubject(merchantId), data)
}
