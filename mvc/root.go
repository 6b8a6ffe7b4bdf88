// Package mvc is the blogspace command line: the HTTP server plus database
// maintenance commands.
package mvc

import (
	"fmt"

	"blogspace/app/logging"
	"blogspace/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is reported by the version command.
var Version = "1.0.0"

type options struct {
	configPath string
	verbose    bool
}

// load reads the configuration and builds the logger for a command.
func (o *options) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	level, development := cfg.Log.Level, cfg.Log.Development
	if o.verbose {
		level, development = "debug", true
	}
	logger, err := logging.New(level, development)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// NewRootCommand builds the blogspace command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "blogspace",
		Short: "BlogSpace blog service and database tools",
		Long: `BlogSpace serves a small blogging API backed by a key-value store.

Users, posts and comments are kept as whole JSON collections under the keys
"users", "posts" and "comments_<postId>".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ./blogspace.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging in development format")

	root.AddCommand(
		newServeCommand(opts),
		newInitCommand(opts),
		newCleanCommand(opts),
		newBackupCommand(opts),
		newRestoreCommand(opts),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blogspace version %s\n", Version)
		},
	}
}
