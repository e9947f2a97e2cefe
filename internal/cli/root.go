package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// options holds the global flags shared by every subcommand.
type options struct {
	configPath string
	apiKey     string
	host       string
	protocol   string
	apiVersion string
	timeout    time.Duration
	output     string
	debug      bool
}

// NewRootCommand builds the gcapi command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "gcapi",
		Short: "Command line client for the GCA API",
		Long: `gcapi talks to the GCA API: user experience, statistics, short links and
moderation warns.

Configuration is read from GCAPI_* environment variables (a .env file in the
working directory is loaded first), then from --config, then from flags.

Get started:
  gcapi experience <user>          Show a user's experience
  gcapi stats <name> <value>       Add to (or --overwrite) a statistic
  gcapi shortlink <url>            Create a short link
  gcapi warns <user>               List a user's warns
  gcapi warn <user> --by --reason  Warn a user
  gcapi mock-server                Serve an in-memory API for local testing`,
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputJSON && opts.output != outputYAML {
				return fmt.Errorf("unsupported output format %q (use json or yaml)", opts.output)
			}
			initLogger(cmd.ErrOrStderr(), opts.debug)
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVar(&opts.apiKey, "api-key", "", "API key (overrides GCAPI_API_KEY)")
	flags.StringVar(&opts.host, "host", "", "API host, e.g. api.g-ca.fr")
	flags.StringVar(&opts.protocol, "protocol", "", "http or https")
	flags.StringVar(&opts.apiVersion, "api-version", "", "API version used in the /v{version} prefix")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout, e.g. 5s")
	flags.StringVarP(&opts.output, "output", "o", outputJSON, "Output format: json or yaml")
	flags.BoolVar(&opts.debug, "debug", false, "Log HTTP traffic to stderr")

	rootCmd.AddCommand(
		newExperienceCmd(opts),
		newStatsCmd(opts),
		newShortLinkCmd(opts),
		newWarnsCmd(opts),
		newWarnCmd(opts),
		newMockServerCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// SetVersion sets the version info
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}
