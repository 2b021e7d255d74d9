package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"vsphere-events-cli/internal/client"
	"vsphere-events-cli/internal/config"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show product and API information of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Load()
		if s.URL == "" {
			return errors.New("no server URL: pass --url or run 'vsphere-events-cli login' first")
		}

		api := client.New(client.ClientConfig{
			URL:      s.URL,
			Insecure: s.Insecure,
			Release:  s.APIRelease,
			Logger:   logrus.NewEntry(logrus.StandardLogger()),
		})

		about, err := api.About(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(about)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "NAME\t%s\n", about.FullName)
		fmt.Fprintf(w, "VENDOR\t%s\n", about.Vendor)
		fmt.Fprintf(w, "VERSION\t%s (build %s)\n", about.Version, about.Build)
		fmt.Fprintf(w, "API\t%s %s\n", about.APIType, about.APIVersion)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(aboutCmd)

	aboutCmd.Flags().String("url", "", "URL of the vCenter/ESXi web service")
	aboutCmd.Flags().Bool("insecure", false, "Skip TLS certificate verification")
	aboutCmd.Flags().String("api-release", "", "VI/JSON API release (default 8.0.1.0)")
}
