// ABOUTME: Root cobra command: global flags, logger setup, config loading
// ABOUTME: Grounded on junjiewwang-perf-analysis's cmd/cli/cmd/root.go structure, logrus in place of its hand-rolled logger

package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/prateek/rheap/internal/config"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "rheap",
	Short: "rheap analyzes heap snapshot retention",
	Long: `rheap parses a heap snapshot, builds its dominator tree, and
reports which objects retain the most memory.

It computes who-keeps-what the way a garbage collector would: via
dominance in the object reference graph, not naive reference counting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level, err := logrus.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = logrus.InfoLevel
		}
		if verbose {
			level = logrus.DebugLevel
		}
		log.SetLevel(level)
		if cfg.Log.Format == "json" {
			log.SetFormatter(&logrus.JSONFormatter{})
		} else {
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to rheap.yaml (defaults to ./rheap.yaml, ./configs/rheap.yaml, /etc/rheap/rheap.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(analyzeCmd)
}
