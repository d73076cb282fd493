package cmd

import (
	"github.com/spf13/cobra"

	"github.com/installd/switchboard/internal/server"
	"github.com/installd/switchboard/pkg/events"
	"github.com/installd/switchboard/pkg/logging"
)

var (
	serveHost string
	servePort int
)

// serveCmd runs the event gateway.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the event gateway",
	Long: `Run the event gateway: an HTTP server that accepts state-change
notifications and streams them to any number of consumers over
Server-Sent Events. The gateway runs until interrupted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := logging.Default()

		cfg := server.DefaultConfig()
		cfg.Host = serveHost
		cfg.Port = servePort

		hub := events.NewHub(logger)
		gateway := server.New(hub, cfg, logger)

		return gateway.ListenAndServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", server.DefaultConfig().Host, "interface to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", server.DefaultConfig().Port, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}
