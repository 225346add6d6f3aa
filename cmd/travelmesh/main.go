// Command travelmesh runs the multi-agent travel assistant, either as an
// interactive console or as an HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	envFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	chat := newChatCmd(flags)

	root := &cobra.Command{
		Use:   "travelmesh",
		Short: "Multi-agent travel assistant",
		Long: `travelmesh routes questions to a team of travel agents.

A general assistant answers everyday questions and hands weather, hotel,
restaurant and sightseeing questions to its specialists. Saying
"I want to go to <place> on <date>" asks every specialist and returns a
combined travel guide.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          chat.RunE,
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to config file")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Path to a .env file with API keys")
	root.PersistentFlags().StringVarP(&flags.logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")

	root.AddCommand(chat, newServeCmd(flags))

	return root
}
