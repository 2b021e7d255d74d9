package cmd

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"vsphere-events-cli/internal/config"
	"vsphere-events-cli/internal/metrics"
	"vsphere-events-cli/internal/monitor"
)

var (
	monitorWide        bool
	monitorMetricsFile string
)

var monitorCmd = &cobra.Command{
	Use:     "monitor",
	Aliases: []string{"event-history-collector-monitor"},
	Short:   "Create an event history collector and print its latest page",
	Long: `Creates an EventHistoryCollector with the default (match all) filter and
reads its latestPage property once, printing one line per event.`,
	Example: `  vsphere-events-cli monitor --url https://vc.example.com/sdk --username administrator@vsphere.local --password pass
  vsphere-events-cli monitor --wide
  vsphere-events-cli monitor --json --metrics-file /var/lib/node_exporter/vsphere_events.prom`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logrus.WithField("run", uuid.NewString())
		rec := metrics.New()

		api, release, err := openSession(ctx, log, rec)
		if err != nil {
			return err
		}

		format := monitor.FormatPlain
		if monitorWide {
			format = monitor.FormatWide
		}
		if jsonOutput {
			format = monitor.FormatJSON
		}

		m := monitor.New(api, monitor.Options{
			MaxPages: config.Load().MaxPages,
			Format:   format,
			Out:      cmd.OutOrStdout(),
			Logger:   log,
			Metrics:  rec,
		})

		var result *multierror.Error
		if err := m.Run(ctx); err != nil {
			log.WithField("state", m.State().String()).Debug("Monitor stopped")
			result = multierror.Append(result, err)
		}
		if release != nil {
			if err := release(ctx); err != nil {
				result = multierror.Append(result, errors.Wrap(err, "logout"))
			}
		}
		if monitorMetricsFile != "" {
			if err := rec.WriteTextfile(monitorMetricsFile); err != nil {
				result = multierror.Append(result, errors.Wrap(err, "write metrics"))
			}
		}
		return result.ErrorOrNil()
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	addConnectionFlags(monitorCmd)
	monitorCmd.Flags().Int("max-pages", monitor.DefaultMaxPages, "Maximum number of result pages to follow")
	monitorCmd.Flags().BoolVar(&monitorWide, "wide", false, "Print a table with time, user and message")
	monitorCmd.Flags().StringVar(&monitorMetricsFile, "metrics-file", "", "Write run metrics to this file (Prometheus textfile format)")
}
