package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"thoreinstein.com/reposcan/pkg/bootstrap"
	"thoreinstein.com/reposcan/pkg/config"
	"thoreinstein.com/reposcan/pkg/discovery"
	rserrors "thoreinstein.com/reposcan/pkg/errors"
)

var cfgFile string
var verbose bool
var appConfig *config.Config
var logger = slog.Default()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reposcan",
	Short: "Reposcan - find git repositories and keep a list of known projects",
	Long: `Reposcan walks a directory tree to find git repository roots and keeps
a small list of known projects together with when each was last opened.

Symbolic links are never followed, directories you cannot read are skipped,
and nothing inside a repository that has already been found is scanned.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, rserrors.FormatUserError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "C", "", "config file (default is $HOME/.config/reposcan/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cmd *cobra.Command) error {
	logger = bootstrap.NewLogger(cmd.ErrOrStderr(), verbose)
	slog.SetDefault(logger)

	cfg, err := bootstrap.InitConfig(cfgFile, logger)
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

// newEngine returns a discovery engine for the loaded configuration.
func newEngine() *discovery.Engine {
	return discovery.NewEngine(&appConfig.Projects, logger)
}

// resetConfig clears the cached configuration.
// This is primarily used in tests to ensure each test starts with a fresh config.
func resetConfig() {
	appConfig = nil
	cfgFile = ""
	verbose = false
	logger = slog.Default()
	viper.Reset()
}
