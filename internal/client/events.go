package client

import (
	"context"

	"vsphere-events-cli/pkg/models"
)

// CreateCollectorForEvents allocates a new EventHistoryCollector on the
// server, scoped by filter. Each call creates a new collector that lives
// until the session ends.
func (c *VimClient) CreateCollectorForEvents(ctx context.Context, eventManager models.ManagedObjectReference, filter models.EventFilterSpec) (models.ManagedObjectReference, error) {
	var collector models.ManagedObjectReference

	payload := models.CreateCollectorForEventsRequest{Filter: filter}
	if _, err := c.invoke(ctx, "CreateCollectorForEvents", eventManager, payload, &collector); err != nil {
		return models.ManagedObjectReference{}, err
	}

	return collector, nil
}
