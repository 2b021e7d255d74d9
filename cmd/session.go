package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"vsphere-events-cli/internal/client"
	"vsphere-events-cli/internal/config"
	"vsphere-events-cli/internal/metrics"
)

// openSession returns a connected client. With credentials it logs in and
// the returned release func logs out again; otherwise it reuses the session
// saved by login and release is nil.
func openSession(ctx context.Context, log *logrus.Entry, rec *metrics.Recorder) (*client.VimClient, func(context.Context) error, error) {
	s := config.Load()
	if s.URL == "" {
		return nil, nil, errors.New("no server URL: pass --url or run 'vsphere-events-cli login' first")
	}

	api := client.New(client.ClientConfig{
		URL:      s.URL,
		Username: s.Username,
		Password: s.Password,
		Insecure: s.Insecure,
		Release:  s.APIRelease,
		Logger:   log,
		Metrics:  rec,
	})

	if err := api.Connect(ctx); err != nil {
		return nil, nil, err
	}

	switch {
	case s.HasCredentials():
		if _, err := api.Login(ctx); err != nil {
			return nil, nil, err
		}
		return api, api.Logout, nil
	case s.SessionID != "":
		api.SetSession(s.SessionID)
		return api, nil, nil
	}
	return nil, nil, errors.New("not logged in: pass --username/--password or run 'vsphere-events-cli login' first")
}
