package models

import "encoding/json"

// PropertyLatestPage is the EventHistoryCollector property holding the most
// recent page of buffered events.
const PropertyLatestPage = "latestPage"

// PropertySpec names the properties to read for one managed object type.
type PropertySpec struct {
	TypeName string   `json:"_typeName,omitempty"`
	Type     string   `json:"type"`
	All      bool     `json:"all"`
	PathSet  []string `json:"pathSet"`
}

// ObjectSpec names the starting object of a property filter. Skip=false
// means the object itself is reported; no selectSet is used so references
// are never followed.
type ObjectSpec struct {
	TypeName string                 `json:"_typeName,omitempty"`
	Obj      ManagedObjectReference `json:"obj"`
	Skip     bool                   `json:"skip"`
}

type PropertyFilterSpec struct {
	TypeName  string         `json:"_typeName,omitempty"`
	PropSet   []PropertySpec `json:"propSet"`
	ObjectSet []ObjectSpec   `json:"objectSet"`
}

// RetrieveOptions is sent empty unless a page size is wanted; the server
// picks its own batch size in that case.
type RetrieveOptions struct {
	TypeName   string `json:"_typeName,omitempty"`
	MaxObjects int32  `json:"maxObjects,omitempty"`
}

// RetrievePropertiesExRequest is the body for POST /PropertyCollector/{id}/RetrievePropertiesEx
type RetrievePropertiesExRequest struct {
	SpecSet []PropertyFilterSpec `json:"specSet"`
	Options RetrieveOptions      `json:"options"`
}

// ContinueRetrievePropertiesExRequest is the body for POST /PropertyCollector/{id}/ContinueRetrievePropertiesEx
type ContinueRetrievePropertiesExRequest struct {
	Token string `json:"token"`
}

// RetrieveResult is one page of a property retrieval. A non-empty Token
// means more pages are available.
type RetrieveResult struct {
	TypeName string          `json:"_typeName,omitempty"`
	Token    string          `json:"token,omitempty"`
	Objects  []ObjectContent `json:"objects"`
}

type ObjectContent struct {
	TypeName   string                 `json:"_typeName,omitempty"`
	Obj        ManagedObjectReference `json:"obj"`
	PropSet    []DynamicProperty      `json:"propSet,omitempty"`
	MissingSet []MissingProperty      `json:"missingSet,omitempty"`
}

// Property returns the named property of the object, if it was reported.
func (oc ObjectContent) Property(name string) (DynamicProperty, bool) {
	for _, p := range oc.PropSet {
		if p.Name == name {
			return p, true
		}
	}
	return DynamicProperty{}, false
}

// DynamicProperty carries a property value whose concrete type is given by
// the _typeName inside Val; decoding is left to the caller.
type DynamicProperty struct {
	TypeName string          `json:"_typeName,omitempty"`
	Name     string          `json:"name"`
	Val      json.RawMessage `json:"val"`
}

type MissingProperty struct {
	Path  string `json:"path"`
	Fault Fault  `json:"fault"`
}
