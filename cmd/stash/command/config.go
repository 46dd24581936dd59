package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string          `json:"tick_interval"`
	Storage      StorageConfig   `json:"storage"`
	Inventory    InventoryConfig `json:"inventory"`
	Nats         NatsConfig      `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	_, err := c.tickInterval()
	el.Add(err)
	el.Add(c.Storage.validate())
	el.Add(c.Inventory.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

func (c *Config) tickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("parsing tick_interval: %w", err)
	}
	if d < time.Second {
		return 0, fmt.Errorf("tick_interval must be at least 1 second")
	}
	return d, nil
}
