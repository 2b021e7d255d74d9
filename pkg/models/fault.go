package models

import "strings"

// Fault is the body of a non-2xx VI/JSON response.
type Fault struct {
	Kind         string               `json:"_typeName"`
	FaultMessage []LocalizableMessage `json:"faultMessage,omitempty"`
	Msg          string               `json:"msg,omitempty"`
}

type LocalizableMessage struct {
	Key     string `json:"key"`
	Message string `json:"message,omitempty"`
}

// Text flattens the fault into a single human readable message.
func (f Fault) Text() string {
	if f.Msg != "" {
		return f.Msg
	}
	var parts []string
	for _, m := range f.FaultMessage {
		if m.Message != "" {
			parts = append(parts, m.Message)
		} else if m.Key != "" {
			parts = append(parts, m.Key)
		}
	}
	return strings.Join(parts, "; ")
}
