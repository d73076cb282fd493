package cmd

import (
	"github.com/spf13/cobra"

	"github.com/installd/switchboard/pkg/logging"
	"github.com/installd/switchboard/pkg/network"
	"github.com/installd/switchboard/pkg/profile"
)

// profileCmd applies a declarative setup profile.
var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Apply a setup profile",
	Long: `Load a YAML setup profile, create or update every network connection it
declares, and apply the resulting network state.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(args[0])
		if err != nil {
			return err
		}

		applier := profile.NewApplier(
			network.NewClient(serviceClient()),
			profile.WithLogger(logging.Default()),
		)
		return applier.Apply(cmd.Context(), p)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
