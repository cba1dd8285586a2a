package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dkeye/pairline/internal/turn"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var urls []string

	cmd := &cobra.Command{
		Use:   "generate [secret] [ttl]",
		Short: "Print an ephemeral credential as JSON",
		Long: `Print an ephemeral credential as JSON.

The secret falls back to $TURN_SHARED_SECRET, the ttl (seconds) to 3600.

Examples:
  turncred generate s3cret
  turncred generate s3cret 600 --url turn:turn.example.org:3478`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var secret string
			if len(args) > 0 {
				secret = args[0]
			}
			secret = secretFrom(secret)
			if secret == "" {
				return fmt.Errorf("no shared secret: pass one or set %s", secretEnv)
			}

			ttl := turn.DefaultTTL
			if len(args) > 1 {
				v, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil || v <= 0 {
					return fmt.Errorf("invalid ttl %q", args[1])
				}
				ttl = v
			}

			issuer := turn.NewIssuer(turn.Options{
				URLs:         urls,
				Ephemeral:    true,
				SharedSecret: secret,
				TTL:          ttl,
			})
			cred, err := issuer.Issue()
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cred)
		},
	}
	cmd.Flags().StringSliceVar(&urls, "url", nil, "relay URL to include (repeatable)")
	return cmd
}
