package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const secretEnv = "TURN_SHARED_SECRET"

var rootCmd = &cobra.Command{
	Use:   "turncred",
	Short: "Mint and check TURN REST credentials",
	Long: `turncred produces the same time-limited TURN credentials the signaling
server hands to browsers, and verifies them the way a TURN server configured
with the same shared secret would.`,
}

func init() {
	rootCmd.AddCommand(newGenerateCmd(), newVerifyCmd())
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("turncred")
		os.Exit(1)
	}
}

func secretFrom(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(secretEnv)
}
