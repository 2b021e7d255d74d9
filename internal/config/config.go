package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. VSPHERE_EVENTS_URL.
	EnvPrefix = "VSPHERE_EVENTS"

	fileName = ".vsphere-events-cli"
)

// Config keys.
const (
	KeyURL        = "url"
	KeyUsername   = "username"
	KeyPassword   = "password"
	KeySessionID  = "session_id"
	KeyInsecure   = "insecure"
	KeyAPIRelease = "api_release"
	KeyMaxPages   = "max_pages"
)

// Settings is the resolved configuration (flags > env > file > defaults).
type Settings struct {
	URL        string
	Username   string
	Password   string
	SessionID  string
	Insecure   bool
	APIRelease string
	MaxPages   int
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			logrus.WithError(err).Warn("Cannot locate home directory, using defaults")
		} else {
			// Search config in home directory with name ".vsphere-events-cli" (without extension).
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(fileName)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			logrus.WithError(err).Warn("Ignoring unreadable config file")
		}
		return
	}
	logrus.WithField("file", viper.ConfigFileUsed()).Debug("Loaded config")
}

// Load resolves the current settings from viper.
func Load() Settings {
	return Settings{
		URL:        viper.GetString(KeyURL),
		Username:   viper.GetString(KeyUsername),
		Password:   viper.GetString(KeyPassword),
		SessionID:  viper.GetString(KeySessionID),
		Insecure:   viper.GetBool(KeyInsecure),
		APIRelease: viper.GetString(KeyAPIRelease),
		MaxPages:   viper.GetInt(KeyMaxPages),
	}
}

// HasCredentials reports whether a fresh login can be performed.
func (s Settings) HasCredentials() bool {
	return s.Username != "" && s.Password != ""
}

// SaveSession persists the server URL and session id so later commands can
// reuse the session without credentials.
func SaveSession(url, sessionID string) error {
	return write(map[string]interface{}{
		KeyURL:       url,
		KeySessionID: sessionID,
	})
}

// ClearSession forgets the stored session id.
func ClearSession() error {
	return write(map[string]interface{}{KeySessionID: ""})
}

// write merges values into the config file. Only keys already in the file
// plus values are written, so flags and env overrides (passwords included)
// never end up on disk.
func write(values map[string]interface{}) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "locate config file")
		}
		path = filepath.Join(home, fileName+".yaml")
	}

	file := viper.New()
	file.SetConfigFile(path)
	if err := file.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "read config %s", path)
	}

	for k, v := range values {
		file.Set(k, v)
		viper.Set(k, v)
	}
	return errors.Wrapf(file.WriteConfigAs(path), "write config %s", path)
}
