// Package vimtest provides an in-process fake of the vSphere VI/JSON API
// endpoints used by this tool, plus helpers to build event pages.
package vimtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"vsphere-events-cli/pkg/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	Release   = "8.0.1.0"
	SessionID = "5f0e5f3a-fake-session"
	Username  = "administrator@vsphere.local"
	Password  = "secret"
)

// Server serves a canned ServiceContent, a login, one event manager and a
// property collector that replays Pages in order. Page i links to page i+1
// through its Token.
type Server struct {
	*httptest.Server

	Content   models.ServiceContent
	Collector models.ManagedObjectReference
	Pages     []models.RetrieveResult
	// Faults makes the named method answer HTTP 500 with the given fault.
	Faults map[string]models.Fault
	// Raw makes the named method answer HTTP 200 with the given body as is.
	Raw map[string]string

	mu     sync.Mutex
	calls  map[string]int
	bodies map[string][]byte
	active bool
}

func NewServer() *Server {
	s := &Server{
		Content: models.ServiceContent{
			TypeName: "ServiceContent",
			About: models.AboutInfo{
				Name:       "VMware vCenter Server",
				FullName:   "VMware vCenter Server 8.0.1 build-21560480",
				Vendor:     "VMware, Inc.",
				Version:    "8.0.1",
				Build:      "21560480",
				APIType:    "VirtualCenter",
				APIVersion: "8.0.1.0",
			},
			RootFolder:        models.NewReference("Folder", "group-d1"),
			PropertyCollector: models.NewReference("PropertyCollector", "propertyCollector"),
			SessionManager:    refPtr(models.NewReference("SessionManager", "SessionManager")),
			EventManager:      refPtr(models.NewReference("EventManager", "EventManager")),
		},
		Collector: models.NewReference("EventHistoryCollector", "session[52b1]5e8d-collector-1"),
		Faults:    map[string]models.Fault{},
		Raw:       map[string]string{},
		calls:     map[string]int{},
		bodies:    map[string][]byte{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func refPtr(r models.ManagedObjectReference) *models.ManagedObjectReference {
	return &r
}

// Calls returns how many times method was invoked.
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// LastBody returns the last request body received for method.
func (s *Server) LastBody(method string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[method]
}

// LoggedIn reports whether a session is currently open.
func (s *Server) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	prefix := "/sdk/vim25/" + Release + "/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if len(parts) != 3 {
		http.NotFound(w, r)
		return
	}
	method := parts[2]
	if r.Method == http.MethodGet && method == "content" {
		method = "RetrieveServiceContent"
	}

	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.calls[method]++
	s.bodies[method] = body
	fault, faulted := s.Faults[method]
	raw, canned := s.Raw[method]
	active := s.active
	s.mu.Unlock()

	if faulted {
		writeJSON(w, http.StatusInternalServerError, fault)
		return
	}

	switch method {
	case "RetrieveServiceContent":
		writeJSON(w, http.StatusOK, s.Content)
		return
	case "Login":
		s.login(w, body)
		return
	}

	if !active || r.Header.Get("vmware-api-session-id") != SessionID {
		writeJSON(w, http.StatusUnauthorized, models.Fault{Kind: "NotAuthenticated"})
		return
	}

	if canned {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, raw)
		return
	}

	switch method {
	case "Logout":
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	case "CreateCollectorForEvents":
		writeJSON(w, http.StatusOK, s.Collector)
	case "RetrievePropertiesEx":
		if len(s.Pages) == 0 {
			w.WriteHeader(http.StatusOK)
			return
		}
		writeJSON(w, http.StatusOK, s.Pages[0])
	case "ContinueRetrievePropertiesEx":
		s.next(w, body)
	default:
		writeJSON(w, http.StatusInternalServerError, models.Fault{Kind: "MethodNotFound"})
	}
}

func (s *Server) login(w http.ResponseWriter, body []byte) {
	var req models.LoginRequest
	if err := json.Unmarshal(body, &req); err != nil || req.UserName != Username || req.Password != Password {
		writeJSON(w, http.StatusInternalServerError, models.Fault{
			Kind:         "InvalidLogin",
			FaultMessage: []models.LocalizableMessage{{Key: "com.vmware.vim.vpxd.vpxdSession.invalidLogin", Message: "Cannot complete login due to an incorrect user name or password."}},
		})
		return
	}

	s.mu.Lock()
	s.active = true
	s.mu.Unlock()

	w.Header().Set("vmware-api-session-id", SessionID)
	writeJSON(w, http.StatusOK, models.UserSession{Key: "52b1", UserName: req.UserName, FullName: "Administrator"})
}

func (s *Server) next(w http.ResponseWriter, body []byte) {
	var req models.ContinueRetrievePropertiesExRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Fault{Kind: "InvalidRequest"})
		return
	}
	for i, page := range s.Pages {
		if page.Token == req.Token && i+1 < len(s.Pages) {
			writeJSON(w, http.StatusOK, s.Pages[i+1])
			return
		}
	}
	writeJSON(w, http.StatusInternalServerError, models.Fault{Kind: "InvalidArgument", Msg: "unknown token " + req.Token})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
