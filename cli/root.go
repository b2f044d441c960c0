package cli

import (
	"clementus360/meeting-agent/config"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meeting-agent",
		Short: "Turn meeting audio into tasks and an assistant persona",
		Long: "Meeting Agent transcribes a meeting, extracts action items, creates an assistant persona " +
			"that remembers them and simulates it working through the tasks. Without a subcommand it serves the HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.Version = config.Version

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
