package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"vsphere-events-cli/internal/config"
)

var cfgFile string
var jsonOutput bool
var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vsphere-events-cli",
	Short: "A CLI for reading vSphere event history",
	Long: `Create event history collectors on a vCenter or ESXi host and print
the events they record, via the vSphere VI/JSON API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		logrus.SetOutput(cmd.ErrOrStderr())

		bindFlags(cmd)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vsphere-events-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

// bindFlags binds the running command's flags to viper keys ("max-pages"
// becomes "max_pages"). Binding per run keeps commands that share a flag
// name from stealing each other's values.
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		switch f.Name {
		case "config", "json", "log-level", "help":
			return
		}
		_ = viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
}

// addConnectionFlags registers the flags every command talking to a server needs.
func addConnectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", "", "URL of the vCenter/ESXi web service (e.g. https://vc.example.com/sdk)")
	cmd.Flags().StringP("username", "u", "", "Username for the authentication")
	cmd.Flags().StringP("password", "p", "", "Password for the authentication")
	cmd.Flags().Bool("insecure", false, "Skip TLS certificate verification")
	cmd.Flags().String("api-release", "", "VI/JSON API release (default 8.0.1.0)")
}
