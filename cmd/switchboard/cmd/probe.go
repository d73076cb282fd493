package cmd

import (
	"github.com/spf13/cobra"

	"github.com/installd/switchboard/internal/config"
	"github.com/installd/switchboard/pkg/manager"
)

// probeCmd triggers probing on the management service. The PROBE_SYNC
// configuration value selects the endpoint variant and is re-read on
// every invocation.
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Trigger hardware and repository probing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := manager.NewClient(serviceClient(),
			manager.WithSyncMode(config.ProbeSyncMode))
		return client.Probe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
