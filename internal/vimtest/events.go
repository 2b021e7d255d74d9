package vimtest

import (
	"fmt"
	"time"

	"vsphere-events-cli/pkg/models"
)

// Events builds one event per kind with increasing keys.
func Events(kinds ...string) []models.Event {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	events := make([]models.Event, 0, len(kinds))
	for i, kind := range kinds {
		events = append(events, models.Event{
			Kind:                 kind,
			Key:                  int32(100 + i),
			ChainID:              int32(100 + i),
			CreatedTime:          base.Add(time.Duration(i) * time.Second),
			UserName:             "VSPHERE.LOCAL\\Administrator",
			FullFormattedMessage: fmt.Sprintf("%s on vm-%d", kind, i),
		})
	}
	return events
}

// LatestPage returns the ObjectContent a collector reports for its
// latestPage property holding events of the given kinds.
func LatestPage(collector models.ManagedObjectReference, kinds ...string) models.ObjectContent {
	val, err := json.Marshal(models.ArrayOfEvent{
		TypeName: "ArrayOfEvent",
		Events:   Events(kinds...),
	})
	if err != nil {
		panic(err)
	}
	return models.ObjectContent{
		TypeName: "ObjectContent",
		Obj:      collector,
		PropSet: []models.DynamicProperty{{
			TypeName: "DynamicProperty",
			Name:     models.PropertyLatestPage,
			Val:      val,
		}},
	}
}
