package models

// ManagedObjectReference identifies a server-side managed object
// (EventManager, PropertyCollector, EventHistoryCollector, ...).
type ManagedObjectReference struct {
	TypeName string `json:"_typeName,omitempty"`
	Type     string `json:"type"`
	Value    string `json:"value"`
}

// NewReference builds a typed reference suitable for request bodies.
func NewReference(moType, value string) ManagedObjectReference {
	return ManagedObjectReference{
		TypeName: "ManagedObjectReference",
		Type:     moType,
		Value:    value,
	}
}

// IsZero reports whether the reference points at nothing.
func (r ManagedObjectReference) IsZero() bool {
	return r.Type == "" && r.Value == ""
}

func (r ManagedObjectReference) String() string {
	return r.Type + ":" + r.Value
}
