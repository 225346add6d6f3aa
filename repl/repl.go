// Package repl implements the interactive console front end.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/travelmesh"
	"github.com/hupe1980/travelmesh/core"
	"github.com/hupe1980/travelmesh/logging"
	"github.com/hupe1980/travelmesh/router"
)

// Separator is printed after every handled line.
var Separator = strings.Repeat("-", 50)

// Handler is the part of *travelmesh.Mesh the console needs.
type Handler interface {
	Handle(ctx context.Context, input string) (*travelmesh.Reply, error)
	Agents() []string
}

// Options configures a REPL.
type Options struct {
	Prompt string
	Logger logging.Logger
}

// REPL reads utterances until "exit" or end of input.
type REPL struct {
	handler Handler
	in      LineReader
	out     io.Writer
	opts    Options
	logger  logging.Logger
}

// New creates a REPL. Progress events are only printed when the Mesh was
// built with Notifier(out) as its Notify option.
func New(h Handler, in LineReader, out io.Writer, optFns ...func(o *Options)) *REPL {
	opts := Options{
		Prompt: "You: ",
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &REPL{
		handler: h,
		in:      in,
		out:     out,
		opts:    opts,
		logger:  logging.With(opts.Logger, "component", "repl"),
	}
}

// Notifier returns a Mesh event sink printing progress lines to out.
func Notifier(out io.Writer) func(ev travelmesh.Event) {
	return func(ev travelmesh.Event) {
		switch ev.Kind {
		case travelmesh.EventSwitched:
			fmt.Fprintf(out, "Switched to %s\n", ev.Agent)
		case travelmesh.EventTravelIntent:
			fmt.Fprintf(out, "Detected travel intent for %s on %s\n", ev.Location, ev.Date)
			fmt.Fprintln(out, "Building comprehensive travel guide...")
		case travelmesh.EventFallback:
			fmt.Fprintf(out, "Error building travel guide: %v\n", ev.Err)
			fmt.Fprintf(out, "Processing message with %s instead...\n", ev.Agent)
		case travelmesh.EventRouted:
			fmt.Fprintf(out, "Routing to %s based on query content...\n", ev.Agent)
		case travelmesh.EventDispatch:
			fmt.Fprintf(out, "Processing message with %s...\n", ev.Agent)
		}
	}
}

// Banner prints the greeting and usage hints.
func (r *REPL) Banner() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Multi-Agent Travel Assistant System (Type 'exit' to quit)")
	fmt.Fprintf(r.out, "Available agents: %s\n", strings.Join(r.handler.Agents(), ", "))
	fmt.Fprintln(r.out, "You can switch agents by typing '@AgentName your message'")
	fmt.Fprintln(r.out, "For a comprehensive travel guide, simply say: 'I want to go to [location] on [date]'")
	fmt.Fprintln(r.out, Separator)
}

// Run prints the banner and loops until "exit", end of input or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	r.Banner()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := r.in.Prompt(r.opts.Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "exit") {
			return nil
		}
		if line == "" {
			continue
		}

		if !r.handle(ctx, line) {
			continue
		}
		fmt.Fprintln(r.out, Separator)
	}
}

// handle processes one line and reports whether the separator should follow.
func (r *REPL) handle(ctx context.Context, line string) bool {
	reply, err := r.handler.Handle(ctx, line)
	switch {
	case errors.Is(err, core.ErrAgentNotFound):
		name, _, _ := router.ParseOverride(line)
		fmt.Fprintf(r.out, "Agent '%s' not found. Available agents: %s\n", name, strings.Join(r.handler.Agents(), ", "))
		return false
	case err != nil:
		r.logger.Error("failed to handle input", "error", err)
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return true
	case reply.Switched:
		return false
	}

	fmt.Fprintf(r.out, "%s: %s\n", reply.Message.Sender(), reply.Text)
	return true
}
