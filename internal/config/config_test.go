package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSession_RoundTrip(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	path := filepath.Join(t.TempDir(), "config.yaml")

	InitConfig(path)
	require.NoError(t, SaveSession("https://vc.example.com", "session-1"))
	assert.FileExists(t, path)

	viper.Reset()
	InitConfig(path)
	s := Load()
	assert.Equal(t, "https://vc.example.com", s.URL)
	assert.Equal(t, "session-1", s.SessionID)
	assert.False(t, s.HasCredentials())

	require.NoError(t, ClearSession())
	viper.Reset()
	InitConfig(path)
	assert.Empty(t, Load().SessionID)
	assert.Equal(t, "https://vc.example.com", Load().URL)
}

func TestLoad_Env(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("VSPHERE_EVENTS_URL", "https://env.example.com")
	t.Setenv("VSPHERE_EVENTS_USERNAME", "administrator@vsphere.local")
	t.Setenv("VSPHERE_EVENTS_PASSWORD", "secret")
	t.Setenv("VSPHERE_EVENTS_MAX_PAGES", "7")
	t.Setenv("VSPHERE_EVENTS_INSECURE", "true")

	InitConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	s := Load()

	assert.Equal(t, "https://env.example.com", s.URL)
	assert.True(t, s.HasCredentials())
	assert.Equal(t, 7, s.MaxPages)
	assert.True(t, s.Insecure)
}
