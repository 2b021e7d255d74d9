package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vsphere-events-cli/internal/client"
	"vsphere-events-cli/internal/vimtest"
	"vsphere-events-cli/pkg/models"
)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--config", cfg))
	err := rootCmd.Execute()
	return out.String(), err
}

func newEventServer(kinds ...string) *vimtest.Server {
	srv := vimtest.NewServer()
	srv.Pages = []models.RetrieveResult{{
		Objects: []models.ObjectContent{vimtest.LatestPage(srv.Collector, kinds...)},
	}}
	return srv
}

func TestMonitorCommand(t *testing.T) {
	srv := newEventServer("VmStartingEvent", "VmPoweredOnEvent", "UserLoginSessionEvent")
	defer srv.Close()
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, cfg, "monitor",
		"--url", srv.URL+"/sdk",
		"--username", vimtest.Username,
		"--password", vimtest.Password,
	)
	require.NoError(t, err)

	assert.Equal(t, "Events In the latestPage are: \n"+
		"Event: VmStartingEvent\n"+
		"Event: VmPoweredOnEvent\n"+
		"Event: UserLoginSessionEvent\n", out)
	assert.Equal(t, 1, srv.Calls("CreateCollectorForEvents"))
	assert.Equal(t, 1, srv.Calls("RetrievePropertiesEx"))
	assert.Zero(t, srv.Calls("ContinueRetrievePropertiesEx"))
	assert.Equal(t, 1, srv.Calls("Logout"))
	assert.False(t, srv.LoggedIn())
}

func TestMonitorCommand_Alias(t *testing.T) {
	srv := newEventServer()
	defer srv.Close()
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, cfg, "event-history-collector-monitor",
		"--url", srv.URL,
		"--username", vimtest.Username,
		"--password", vimtest.Password,
	)
	require.NoError(t, err)
	assert.Equal(t, "Events In the latestPage are: \n", out)
}

func TestMonitorCommand_FaultStillLogsOut(t *testing.T) {
	srv := newEventServer("VmStartingEvent")
	defer srv.Close()
	srv.Faults["CreateCollectorForEvents"] = models.Fault{Kind: "InvalidState"}
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, cfg, "monitor",
		"--url", srv.URL,
		"--username", vimtest.Username,
		"--password", vimtest.Password,
	)
	var fault *client.InvalidStateFault
	require.True(t, errors.As(err, &fault))
	assert.Empty(t, out)
	assert.Equal(t, 1, srv.Calls("Logout"))
}

func TestMonitorCommand_MetricsFile(t *testing.T) {
	srv := newEventServer("VmStartingEvent")
	defer srv.Close()
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "vsphere_events.prom")

	_, err := execute(t, filepath.Join(dir, "config.yaml"), "monitor",
		"--url", srv.URL,
		"--username", vimtest.Username,
		"--password", vimtest.Password,
		"--metrics-file", metricsFile,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `vsphere_events_events_reported_total{kind="VmStartingEvent"} 1`)
	assert.Contains(t, string(data), `vsphere_events_remote_calls_total{method="Logout",outcome="ok"} 1`)
}

func TestMonitorCommand_NotLoggedIn(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	_, err := execute(t, cfg, "monitor")
	assert.ErrorContains(t, err, "no server URL")
}

func TestLoginMonitorLogout(t *testing.T) {
	srv := newEventServer("VmPoweredOnEvent")
	defer srv.Close()
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	_, err := execute(t, cfg, "login",
		"--url", srv.URL,
		"--username", vimtest.Username,
		"--password", vimtest.Password,
	)
	require.NoError(t, err)
	assert.FileExists(t, cfg)

	out, err := execute(t, cfg, "monitor", "--json")
	require.NoError(t, err)
	var events []models.Event
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "VmPoweredOnEvent", events[0].Kind)
	assert.True(t, srv.LoggedIn(), "saved session must stay open")

	_, err = execute(t, cfg, "logout")
	require.NoError(t, err)
	assert.False(t, srv.LoggedIn())

	_, err = execute(t, cfg, "monitor")
	assert.ErrorContains(t, err, "not logged in")
}

func TestAboutCommand(t *testing.T) {
	srv := vimtest.NewServer()
	defer srv.Close()
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, cfg, "about", "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "VMware vCenter Server 8.0.1")
	assert.Contains(t, out, "VirtualCenter 8.0.1.0")
}

func TestAboutCommand_NoURL(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	_, err := execute(t, cfg, "about")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no server URL")

	var traced interface{ StackTrace() pkgerrors.StackTrace }
	assert.True(t, errors.As(err, &traced), "error should carry a stack trace")
}
