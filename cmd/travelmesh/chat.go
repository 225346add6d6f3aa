package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hupe1980/travelmesh/repl"
)

func newChatCmd(flags *globalFlags) *cobra.Command {
	var historyFile string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive console (default)",
		Example: `  # Ask the general assistant
  travelmesh chat

  # Talk to a specialist
  You: @WeatherExpert will it rain in Oslo tomorrow?`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, flags, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			mesh, err := a.newMesh(repl.Notifier(out))
			if err != nil {
				return err
			}

			if historyFile == "" {
				if dir, err := os.UserConfigDir(); err == nil {
					historyFile = filepath.Join(dir, "travelmesh", "chat_history")
				}
			}

			reader := repl.NewLinerReader(historyFile)
			defer reader.Close()

			return repl.New(mesh, reader, out, func(o *repl.Options) {
				o.Logger = a.logger
			}).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&historyFile, "history-file", "", "File for console input history")

	return cmd
}
