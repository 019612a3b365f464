package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/artifact-hub/relcheck/internal/checker"
	"github.com/artifact-hub/relcheck/internal/hosting"
	"github.com/artifact-hub/relcheck/internal/logging"
	"github.com/artifact-hub/relcheck/internal/registry"
	"github.com/artifact-hub/relcheck/internal/ui/console"
)

var (
	filePath     string
	packagesFile string
	checkOnly    bool
	yes          bool
	verbose      bool
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "relcheck",
	Short:         "Check latest stable versions for artifact-hub packages",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.Load(packagesFile)
		if err != nil {
			return err
		}
		opts := checker.Options{File: storePath(), CheckOnly: checkOnly}
		if !checkOnly && !yes {
			opts.Confirm = console.ConfirmWrite
		}
		return checker.Run(reg, hosting.NewClient(), opts)
	},
}

func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringVar(&filePath, "file", "", "path to versions.json (default: next to the executable)")
	rootCmd.PersistentFlags().StringVar(&packagesFile, "packages", "", "YAML file overriding the built-in package registry")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show detailed steps")
	rootCmd.Flags().BoolVar(&checkOnly, "check-only", false, "only check for updates, do not write the versions file")
	rootCmd.Flags().BoolVarP(&yes, "yes", "y", false, "write updates without prompting")
	rootCmd.Version = version
	cobra.OnInitialize(func() {
		logging.Init()
		logging.SetVerbose(verbose)
	})
}

func storePath() string {
	if filePath != "" {
		return filePath
	}
	exe, err := os.Executable()
	if err != nil {
		return "versions.json"
	}
	return filepath.Join(filepath.Dir(exe), "versions.json")
}
