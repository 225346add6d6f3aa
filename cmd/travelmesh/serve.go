package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/hupe1980/travelmesh"
	"github.com/hupe1980/travelmesh/server"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		addr        string
		sessionIdle time.Duration
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Example: `  # Serve on the configured address (default :5000)
  travelmesh serve

  # Ask a question. Conversation state lives in the session cookie, so keep
  # the cookie jar between calls or every request starts a new session.
  curl -b jar.txt -c jar.txt -d 'user_input=I want to go to Paris on July 4th' localhost:5000/ask`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, flags, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			gin.SetMode(gin.ReleaseMode)
			srv := server.New(func(string) (*travelmesh.Mesh, error) {
				return a.newMesh(nil)
			}, func(o *server.Options) {
				o.Logger = a.logger
				o.Metrics = a.metrics.Handler()
				o.SessionIdle = sessionIdle
				o.RequestTimeout = timeout
			})

			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().DurationVar(&sessionIdle, "session-idle", time.Hour, "Drop sessions idle for this long")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "Upper bound for a single request")

	return cmd
}
