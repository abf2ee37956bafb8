package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thoreinstein.com/reposcan/pkg/discovery"
)

var scanSave bool

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Find git repositories below a directory",
	Long: `Scan a directory tree for git repositories and print each repository
root, one per line, sorted by path.

The root defaults to discovery.root from the configuration (~/src).
With --save, repositories that are not yet known are added to the
project list.

Examples:
  reposcan scan
  reposcan scan ~/work
  reposcan scan --save ~/src`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := appConfig.Discovery.Root
		if len(args) == 1 {
			root = args[0]
		}
		return runScanCommand(cmd, root)
	},
}

func init() {
	scanCmd.Flags().BoolVarP(&scanSave, "save", "s", false, "add discovered repositories to the project list")
	rootCmd.AddCommand(scanCmd)
}

func runScanCommand(cmd *cobra.Command, root string) error {
	var result *discovery.Result
	if scanSave {
		engine := newEngine()
		res, added, err := engine.Refresh(cmd.Context(), root)
		if err != nil {
			return errors.Wrap(err, "scan failed")
		}
		result = res
		if added > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Added %d new project(s) to %s\n", added, engine.Store.Path)
		}
	} else {
		res, err := discovery.NewScanner(logger).Scan(cmd.Context(), root)
		if err != nil {
			return errors.Wrap(err, "scan failed")
		}
		result = res
	}

	out := cmd.OutOrStdout()
	for _, r := range result.Roots {
		fmt.Fprintln(out, r)
	}

	for _, d := range result.Denied {
		logger.Debug("permission denied", "dir", d)
	}

	return nil
}
