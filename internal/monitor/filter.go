package monitor

import "vsphere-events-cli/pkg/models"

// BuildLatestPageFilterSpec selects the latestPage property of a single
// collector, without traversing into referenced objects.
func BuildLatestPageFilterSpec(collector models.ManagedObjectReference) models.PropertyFilterSpec {
	return models.PropertyFilterSpec{
		TypeName: "PropertyFilterSpec",
		PropSet: []models.PropertySpec{{
			TypeName: "PropertySpec",
			Type:     collector.Type,
			All:      false,
			PathSet:  []string{models.PropertyLatestPage},
		}},
		ObjectSet: []models.ObjectSpec{{
			TypeName: "ObjectSpec",
			Obj:      collector,
			Skip:     false,
		}},
	}
}
