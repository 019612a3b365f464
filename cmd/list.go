package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artifact-hub/relcheck/internal/store"
	"github.com/artifact-hub/relcheck/internal/ui/console"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show currently pinned versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := store.Read(storePath())
			if err != nil {
				return err
			}
			fmt.Print(console.RenderPinned(v))
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
