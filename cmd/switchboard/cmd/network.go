package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/installd/switchboard/pkg/network"
)

// devicesCmd lists the network devices known to the management service.
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List network devices",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := network.NewClient(serviceClient())
		devices, err := client.Devices(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(devices)
	},
}

// connectionsCmd lists the configured network connections.
var connectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "List network connections",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := network.NewClient(serviceClient())
		connections, err := client.Connections(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(connections)
	},
}

// applyCmd triggers applying the configured network state.
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the configured network state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := network.NewClient(serviceClient())
		return client.Apply(cmd.Context())
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(connectionsCmd)
	rootCmd.AddCommand(applyCmd)
}
