package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	gcapi "github.com/gca-community/gcapi-go"
)

// runWithClient builds a client from the resolved configuration, runs call
// and prints the response.
func (o *options) runWithClient(cmd *cobra.Command, call func(*gcapi.Client) (*gcapi.Response, error)) error {
	client, err := o.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := call(client)
	if err != nil {
		return err
	}
	return printResponse(cmd.OutOrStdout(), resp, o.output)
}

func newExperienceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "experience <user>",
		Short: "Show a user's experience",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runWithClient(cmd, func(c *gcapi.Client) (*gcapi.Response, error) {
				return c.GetUserExperienceWithContext(cmd.Context(), args[0])
			})
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "stats <name> <value>",
		Short: "Update a statistic",
		Long: `Update a statistic. The value is added to the stored one unless
--overwrite is given.

Examples:
  gcapi stats kills 5
  gcapi stats players 12 --overwrite`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseStatValue(args[1])
			if err != nil {
				return err
			}
			return opts.runWithClient(cmd, func(c *gcapi.Client) (*gcapi.Response, error) {
				return c.UpdateStatsWithContext(cmd.Context(), args[0], value, gcapi.UpdateStatsOptions{Overwrite: overwrite})
			})
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace the stored value instead of adding to it")
	return cmd
}

// parseStatValue keeps integers integral on the wire.
func parseStatValue(raw string) (any, error) {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("value %q is not a number", raw)
	}
	return f, nil
}

func newShortLinkCmd(opts *options) *cobra.Command {
	var (
		code      string
		expiresAt string
	)

	cmd := &cobra.Command{
		Use:   "shortlink <url>",
		Short: "Create a short link",
		Long: `Create a short link for a URL.

Examples:
  gcapi shortlink https://g-ca.fr/event
  gcapi shortlink https://g-ca.fr/event --code event --expires-at 2030-01-01T00:00:00Z`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			linkOpts := gcapi.ShortLinkOptions{Code: code}
			if expiresAt != "" {
				t, err := time.Parse(time.RFC3339, expiresAt)
				if err != nil {
					return fmt.Errorf("invalid --expires-at: %w", err)
				}
				linkOpts.ExpiresAt = t
			}
			return opts.runWithClient(cmd, func(c *gcapi.Client) (*gcapi.Response, error) {
				return c.CreateShortLinkWithContext(cmd.Context(), args[0], linkOpts)
			})
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "Requested short code")
	cmd.Flags().StringVar(&expiresAt, "expires-at", "", "Expiry as an RFC 3339 timestamp")
	return cmd
}

func newWarnsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "warns <user>",
		Short: "List a user's warns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runWithClient(cmd, func(c *gcapi.Client) (*gcapi.Response, error) {
				return c.GetUserWarnsWithContext(cmd.Context(), args[0])
			})
		},
	}
}

func newWarnCmd(opts *options) *cobra.Command {
	var (
		bannedBy string
		reason   string
	)

	cmd := &cobra.Command{
		Use:   "warn <user>",
		Short: "Warn a user",
		Long: `Record a warn against a user.

Example:
  gcapi warn 1234 --by 42 --reason "spam in #general"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runWithClient(cmd, func(c *gcapi.Client) (*gcapi.Response, error) {
				return c.CreateUserWarnWithContext(cmd.Context(), args[0], bannedBy, reason)
			})
		},
	}
	cmd.Flags().StringVar(&bannedBy, "by", "", "ID of the moderator issuing the warn")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for the warn")
	return cmd
}
