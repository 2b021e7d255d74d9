package models

import "time"

// EventFilterSpec scopes an event history collector. The zero value
// matches every event.
type EventFilterSpec struct {
	TypeName string `json:"_typeName,omitempty"`
}

// NewEventFilterSpec returns the default filter (all events).
func NewEventFilterSpec() EventFilterSpec {
	return EventFilterSpec{TypeName: "EventFilterSpec"}
}

// CreateCollectorForEventsRequest is the body for POST /EventManager/{id}/CreateCollectorForEvents
type CreateCollectorForEventsRequest struct {
	Filter EventFilterSpec `json:"filter"`
}

// ArrayOfEvent is the value of the collector's latestPage property.
type ArrayOfEvent struct {
	TypeName string  `json:"_typeName"`
	Events   []Event `json:"_value"`
}

// Event is one recorded occurrence. Kind is the concrete event type, e.g.
// "VmPoweredOnEvent" or "UserLoginSessionEvent".
type Event struct {
	Kind                 string    `json:"_typeName"`
	Key                  int32     `json:"key"`
	ChainID              int32     `json:"chainId"`
	CreatedTime          time.Time `json:"createdTime"`
	UserName             string    `json:"userName"`
	FullFormattedMessage string    `json:"fullFormattedMessage,omitempty"`
}
