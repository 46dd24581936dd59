package command

import (
	"fmt"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-stash/internal/driver"
	"github.com/pixil98/go-stash/internal/game"
	"github.com/pixil98/go-stash/internal/messaging"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	tick, err := cfg.tickInterval()
	if err != nil {
		return nil, err
	}

	// Create the message bus
	ns, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Load assets
	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}

	// Stock the world
	world, err := game.NewWorld(dict, messaging.NewNatsPublisher(ns), cfg.Inventory.BuildWorldOpts()...)
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}

	// Setup the world driver
	d := driver.NewWorldDriver([]driver.Manager{world}, driver.WithTickLength(tick))

	return service.WorkerList{
		"nats":   ns,
		"driver": d,
	}, nil
}
