package client

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"vsphere-events-cli/pkg/models"
)

// Fault kinds synthesized on the client side.
const (
	KindTransport = "TransportFault"
	KindDecode    = "DecodeFault"
)

// faultInvalidState is the server's _typeName for InvalidStateFault.
const faultInvalidState = "InvalidState"

// RemoteServiceFault is any failed remote call: a server fault, a transport
// error or an undecodable response.
type RemoteServiceFault struct {
	Method     string
	Kind       string
	StatusCode int
	Message    string
	Err        error
}

func (f *RemoteServiceFault) Error() string {
	msg := fmt.Sprintf("%s failed: %s", f.Method, f.Kind)
	if f.Message != "" {
		msg += ": " + f.Message
	}
	return msg
}

func (f *RemoteServiceFault) Unwrap() error {
	return f.Err
}

// InvalidStateFault means the target object is not in a state that allows
// the requested operation.
type InvalidStateFault struct {
	Method  string
	Message string
}

func (f *InvalidStateFault) Error() string {
	if f.Message == "" {
		return fmt.Sprintf("%s failed: invalid state", f.Method)
	}
	return fmt.Sprintf("%s failed: invalid state: %s", f.Method, f.Message)
}

func decodeFault(method string, resp *resty.Response) error {
	var fault models.Fault
	if err := json.Unmarshal(resp.Body(), &fault); err != nil || fault.Kind == "" {
		return &RemoteServiceFault{
			Method:     method,
			Kind:       http.StatusText(resp.StatusCode()),
			StatusCode: resp.StatusCode(),
			Message:    resp.String(),
		}
	}

	err := NewFault(method, fault)
	if f, ok := err.(*RemoteServiceFault); ok {
		f.StatusCode = resp.StatusCode()
	}
	return err
}

// NewFault maps a server fault reported for method to its error type.
func NewFault(method string, fault models.Fault) error {
	if fault.Kind == faultInvalidState {
		return &InvalidStateFault{Method: method, Message: fault.Text()}
	}
	return &RemoteServiceFault{
		Method:  method,
		Kind:    fault.Kind,
		Message: fault.Text(),
	}
}
