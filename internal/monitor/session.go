// Package monitor creates an event history collector on a connected
// vSphere session and reports the events of its latest page.
package monitor

import (
	"context"

	"vsphere-events-cli/pkg/models"
)

// EventManager allocates server-side event history collectors.
type EventManager interface {
	CreateCollectorForEvents(ctx context.Context, eventManager models.ManagedObjectReference, filter models.EventFilterSpec) (models.ManagedObjectReference, error)
}

// PropertyCollector reads object properties in token-linked pages.
type PropertyCollector interface {
	RetrievePropertiesEx(ctx context.Context, propCollector models.ManagedObjectReference, specs []models.PropertyFilterSpec, opts models.RetrieveOptions) (*models.RetrieveResult, error)
	ContinueRetrievePropertiesEx(ctx context.Context, propCollector models.ManagedObjectReference, token string) (*models.RetrieveResult, error)
	// PropertyFault converts a missingSet entry into the matching remote fault.
	PropertyFault(missing models.MissingProperty) error
}

// Session is an already connected and authenticated view of the service.
// Content must return the service content retrieved at connect time.
type Session interface {
	Content() *models.ServiceContent
	EventManager
	PropertyCollector
}
