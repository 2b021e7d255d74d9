package monitor

import (
	"context"

	"github.com/pkg/errors"

	"vsphere-events-cli/pkg/models"
)

// ErrNoCollector is returned when the server answers collector creation
// without a usable reference.
var ErrNoCollector = errors.New("event manager returned an empty collector reference")

// CollectorManager creates event history collectors.
type CollectorManager struct {
	events EventManager
}

func NewCollectorManager(events EventManager) *CollectorManager {
	return &CollectorManager{events: events}
}

// CreateCollector allocates a new collector scoped by filter. Remote faults
// are returned as is; nothing is retried and every call allocates a new
// server-side collector.
func (m *CollectorManager) CreateCollector(ctx context.Context, eventManager models.ManagedObjectReference, filter models.EventFilterSpec) (models.ManagedObjectReference, error) {
	collector, err := m.events.CreateCollectorForEvents(ctx, eventManager, filter)
	if err != nil {
		return models.ManagedObjectReference{}, err
	}
	if collector.Value == "" {
		return models.ManagedObjectReference{}, ErrNoCollector
	}
	return collector, nil
}
