package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"vsphere-events-cli/internal/metrics"
	"vsphere-events-cli/pkg/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SessionHeader carries the session id on every authenticated request.
const SessionHeader = "vmware-api-session-id"

// DefaultRelease is the VI/JSON API release used when none is configured.
const DefaultRelease = "8.0.1.0"

type VimClient struct {
	HTTP   *resty.Client
	Config ClientConfig

	content *models.ServiceContent
	log     *logrus.Entry
	metrics *metrics.Recorder
}

type ClientConfig struct {
	URL      string // e.g. https://vcenter.example.com or https://vcenter.example.com/sdk
	Username string
	Password string
	Insecure bool   // skip TLS verification (self-signed vCenter certificates)
	Release  string // VI/JSON release segment, DefaultRelease if empty

	Logger  *logrus.Entry
	Metrics *metrics.Recorder
}

func New(cfg ClientConfig) *VimClient {
	if cfg.Release == "" {
		cfg.Release = DefaultRelease
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	r := resty.New()
	r.SetBaseURL(BaseURL(cfg.URL, cfg.Release))
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")
	r.SetJSONMarshaler(json.Marshal)
	r.SetJSONUnmarshaler(json.Unmarshal)

	if cfg.Insecure {
		r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &VimClient{
		HTTP:    r,
		Config:  cfg,
		log:     logger,
		metrics: cfg.Metrics,
	}
}

// BaseURL turns a user supplied server URL into the VI/JSON base path.
// A trailing /sdk (the SOAP endpoint users are used to typing) is dropped.
func BaseURL(raw, release string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	base = strings.TrimSuffix(base, "/sdk")
	return fmt.Sprintf("%s/sdk/vim25/%s", base, release)
}

// Content returns the service content fetched by Connect, nil before that.
func (c *VimClient) Content() *models.ServiceContent {
	return c.content
}

// SetSession reuses an existing session id, e.g. one saved by login.
func (c *VimClient) SetSession(sessionID string) {
	c.HTTP.SetHeader(SessionHeader, sessionID)
}

// Session returns the session id currently attached to requests.
func (c *VimClient) Session() string {
	return c.HTTP.Header.Get(SessionHeader)
}

// Connect fetches the service content; it needs no session.
func (c *VimClient) Connect(ctx context.Context) error {
	content, err := c.RetrieveServiceContent(ctx)
	if err != nil {
		return err
	}
	c.content = content
	return nil
}

// Login authenticates with the configured credentials, attaches the session
// to all future requests for this client instance and returns the session
// id for persistence.
func (c *VimClient) Login(ctx context.Context) (string, error) {
	sm, err := c.sessionManager()
	if err != nil {
		return "", err
	}

	payload := models.LoginRequest{
		UserName: c.Config.Username,
		Password: c.Config.Password,
	}

	var session models.UserSession
	resp, err := c.invoke(ctx, "Login", sm, payload, &session)
	if err != nil {
		return "", err
	}

	sessionID := resp.Header().Get(SessionHeader)
	if sessionID == "" {
		return "", errors.New("login successful but no session ID returned")
	}

	c.SetSession(sessionID)
	c.log.WithField("user", session.UserName).Debug("Logged in")
	return sessionID, nil
}

// Logout terminates the current session.
func (c *VimClient) Logout(ctx context.Context) error {
	sm, err := c.sessionManager()
	if err != nil {
		return err
	}
	if _, err := c.invoke(ctx, "Logout", sm, nil, nil); err != nil {
		return err
	}
	c.HTTP.Header.Del(SessionHeader)
	return nil
}

func (c *VimClient) sessionManager() (models.ManagedObjectReference, error) {
	if c.content == nil {
		return models.ManagedObjectReference{}, errors.New("not connected: service content not retrieved")
	}
	if c.content.SessionManager == nil {
		return models.ManagedObjectReference{}, errors.New("service content has no session manager")
	}
	return *c.content.SessionManager, nil
}

// invoke POSTs a managed object method: /{moType}/{moId}/{method}.
func (c *VimClient) invoke(ctx context.Context, method string, this models.ManagedObjectReference, body, result interface{}) (*resty.Response, error) {
	path := fmt.Sprintf("/%s/%s/%s", this.Type, url.PathEscape(this.Value), method)
	req := c.HTTP.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Post(path)
	return resp, c.finish(method, start, resp, err, result)
}

func (c *VimClient) get(ctx context.Context, method, path string, result interface{}) (*resty.Response, error) {
	start := time.Now()
	resp, err := c.HTTP.R().SetContext(ctx).Get(path)
	return resp, c.finish(method, start, resp, err, result)
}

// finish turns a raw response into either a decoded result or a fault,
// logging and counting the call on the way.
func (c *VimClient) finish(method string, start time.Time, resp *resty.Response, err error, result interface{}) error {
	fields := logrus.Fields{
		"method":   method,
		"duration": time.Since(start),
	}

	if err != nil {
		c.metrics.ObserveCall(method, metrics.OutcomeTransport)
		c.log.WithFields(fields).WithError(err).Debug("Remote call failed")
		return &RemoteServiceFault{
			Method:  method,
			Kind:    KindTransport,
			Message: err.Error(),
			Err:     errors.Wrapf(err, "%s request", method),
		}
	}

	fields["status"] = resp.StatusCode()
	if resp.IsError() {
		fault := decodeFault(method, resp)
		outcome := metrics.OutcomeFault
		if _, ok := fault.(*InvalidStateFault); ok {
			outcome = metrics.OutcomeInvalidState
		}
		c.metrics.ObserveCall(method, outcome)
		c.log.WithFields(fields).WithError(fault).Debug("Remote call faulted")
		return fault
	}

	c.metrics.ObserveCall(method, metrics.OutcomeOK)
	c.log.WithFields(fields).Debug("Remote call")

	if result == nil || isEmptyBody(resp.Body()) {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return &RemoteServiceFault{
			Method:     method,
			Kind:       KindDecode,
			StatusCode: resp.StatusCode(),
			Message:    err.Error(),
			Err:        errors.Wrapf(err, "decode %s response", method),
		}
	}
	return nil
}

func isEmptyBody(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return trimmed == "" || trimmed == "null"
}
