package cmd

import (
	"github.com/spf13/cobra"

	"github.com/artifact-hub/relcheck/internal/logging"
	"github.com/artifact-hub/relcheck/internal/registry"
	"github.com/artifact-hub/relcheck/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the package registry and the versions file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := registry.Load(packagesFile); err != nil {
				return err
			}
			if _, err := store.Read(storePath()); err != nil {
				return err
			}
			logging.Success("Configuration is valid")
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
