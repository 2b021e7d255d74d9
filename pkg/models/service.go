package models

// ServiceContent is returned by GET /ServiceInstance/ServiceInstance/content.
// Only the references this tool talks to are decoded.
type ServiceContent struct {
	TypeName          string                  `json:"_typeName,omitempty"`
	About             AboutInfo               `json:"about"`
	RootFolder        ManagedObjectReference  `json:"rootFolder"`
	PropertyCollector ManagedObjectReference  `json:"propertyCollector"`
	SessionManager    *ManagedObjectReference `json:"sessionManager,omitempty"`
	EventManager      *ManagedObjectReference `json:"eventManager,omitempty"`
}

type AboutInfo struct {
	Name         string `json:"name"`
	FullName     string `json:"fullName"`
	Vendor       string `json:"vendor"`
	Version      string `json:"version"`
	Build        string `json:"build"`
	OSType       string `json:"osType,omitempty"`
	APIType      string `json:"apiType"`
	APIVersion   string `json:"apiVersion"`
	InstanceUUID string `json:"instanceUuid,omitempty"`
}

// --- Session Models ---

// LoginRequest is the body for POST /SessionManager/{id}/Login
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
	Locale   string `json:"locale,omitempty"`
}

type UserSession struct {
	Key       string `json:"key"`
	UserName  string `json:"userName"`
	FullName  string `json:"fullName"`
	LoginTime string `json:"loginTime"`
}
