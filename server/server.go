// Package server exposes a Mesh over HTTP using gin. Every browser session
// gets its own Mesh, keyed by a cookie.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hupe1980/travelmesh"
	"github.com/hupe1980/travelmesh/core"
	"github.com/hupe1980/travelmesh/logging"
	"github.com/hupe1980/travelmesh/router"
	"github.com/hupe1980/travelmesh/session"
)

// User facing texts returned by /ask.
const (
	EmptyQueryText = "Please enter a query."
	ApologyText    = "I'm sorry, but I encountered an error processing your request. Please try again or rephrase your query."
)

// DefaultCookieName names the session cookie.
const DefaultCookieName = "travelmesh_session"

// Options configures a Server.
type Options struct {
	Logger logging.Logger
	// Metrics is mounted at /metrics when set.
	Metrics    http.Handler
	CookieName string
	// SessionIdle drops sessions unused for this long; zero keeps them forever.
	SessionIdle time.Duration
	// RequestTimeout bounds a single /ask call; zero means no limit.
	RequestTimeout time.Duration
}

// Server serves the /ask endpoint.
type Server struct {
	engine   *gin.Engine
	sessions *session.InMemoryStore[*travelmesh.Mesh]
	opts     Options
	logger   logging.Logger
}

// AskResponse is the JSON body returned by /ask.
type AskResponse struct {
	Response string `json:"response"`
}

// New creates a Server building one Mesh per session with factory.
func New(factory session.Factory[*travelmesh.Mesh], optFns ...func(o *Options)) *Server {
	opts := Options{
		Logger:     logging.NoOpLogger{},
		CookieName: DefaultCookieName,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Server{
		engine:   gin.New(),
		sessions: session.NewInMemoryStore(factory),
		opts:     opts,
		logger:   logging.With(opts.Logger, "component", "server"),
	}

	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.index)
	s.engine.POST("/ask", s.ask)
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
	})
	if s.opts.Metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.opts.Metrics))
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.opts.SessionIdle > 0 {
		go s.pruneLoop(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(s.opts.SessionIdle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Prune(s.opts.SessionIdle); n > 0 {
				s.logger.Debug("pruned idle sessions", "count", n)
			}
		}
	}
}

func (s *Server) ask(c *gin.Context) {
	input := strings.TrimSpace(c.PostForm("user_input"))
	if input == "" {
		c.JSON(http.StatusOK, AskResponse{Response: EmptyQueryText})
		return
	}

	mesh, err := s.sessions.Get(s.sessionID(c))
	if err != nil {
		s.logger.Error("failed to create session", "error", err)
		c.JSON(http.StatusOK, AskResponse{Response: ApologyText})
		return
	}

	ctx := c.Request.Context()
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	s.logger.Info("user query", "input", input)

	reply, err := mesh.Handle(ctx, input)
	switch {
	case errors.Is(err, core.ErrAgentNotFound):
		c.JSON(http.StatusOK, AskResponse{Response: notFoundText(input, mesh.Agents())})
	case err != nil:
		s.logger.Error("failed to handle query", "error", err)
		c.JSON(http.StatusOK, AskResponse{Response: ApologyText})
	case reply.Switched:
		c.JSON(http.StatusOK, AskResponse{Response: fmt.Sprintf("Switched to %s", reply.Agent)})
	default:
		c.JSON(http.StatusOK, AskResponse{Response: reply.Text})
	}
}

func notFoundText(input string, agents []string) string {
	name, _, _ := router.ParseOverride(input)
	return fmt.Sprintf("Agent '%s' not found. Available agents: %s", name, strings.Join(agents, ", "))
}

// sessionID returns the caller's session id, issuing a new cookie if needed.
func (s *Server) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(s.opts.CookieName); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.opts.CookieName, id, 0, "/", "", false, true)
	return id
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Travel Assistant</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
#log { white-space: pre-wrap; border: 1px solid #ccc; padding: 1rem; min-height: 10rem; }
form { display: flex; gap: .5rem; margin-top: 1rem; }
input[name=user_input] { flex: 1; }
</style>
</head>
<body>
<h1>Travel Assistant</h1>
<p>Try "I want to go to Paris on July 4th" or "@WeatherExpert is it rainy in Oslo?"</p>
<div id="log"></div>
<form id="ask">
<input name="user_input" autocomplete="off" autofocus>
<button type="submit">Ask</button>
</form>
<script>
document.getElementById("ask").addEventListener("submit", async (e) => {
  e.preventDefault();
  const form = e.target;
  const log = document.getElementById("log");
  const q = form.user_input.value;
  log.textContent += "You: " + q + "\n";
  form.user_input.value = "";
  const res = await fetch("/ask", { method: "POST", body: new URLSearchParams({ user_input: q }) });
  const data = await res.json();
  log.textContent += data.response + "\n\n";
});
</script>
</body>
</html>
`
