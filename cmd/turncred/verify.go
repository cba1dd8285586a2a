package main

import (
	"fmt"
	"time"

	"github.com/dkeye/pairline/internal/turn"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "verify <username> <credential>",
		Short: "Check a credential against the shared secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := secretFrom(secret)
			if key == "" {
				return fmt.Errorf("no shared secret: pass --secret or set %s", secretEnv)
			}
			if err := turn.Verify([]byte(key), args[0], args[1], time.Now()); err != nil {
				return err
			}
			expiry, _ := turn.Expiry(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "valid until %s\n", expiry.UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "shared secret (default $TURN_SHARED_SECRET)")
	return cmd
}
