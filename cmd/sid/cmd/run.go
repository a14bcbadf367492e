package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"sid-client/internal/common"
	"sid-client/internal/server"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Log in and report the station status until interrupted",
	Long: `Logs in, starts the status heartbeat and, when enabled, the local
status server (/api/v1/health, /api/v1/status/heartbeat, /metrics).

Runs until SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, true, func(ctx context.Context, env *server.Env) error {
			common.LoggerFromContext(ctx).Info("session started, waiting for interrupt")
			<-ctx.Done()
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check the credentials and show the authenticated user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, false, func(ctx context.Context, env *server.Env) error {
			return printJSON(cmd.OutOrStdout(), env.Auth.UserDetails)
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(loginCmd)
}
