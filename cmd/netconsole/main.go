// Command netconsole prints the events a scopelog NATS sink publishes.
//
//	netconsole --url nats://127.0.0.1:4222 --subject scopelog --style colored
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Station-Manager/errors"
	"github.com/mattn/go-runewidth"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/Station-Manager/scopelog"
)

const (
	errMsgConnect   = "Failed to connect to the NATS server."
	errMsgSubscribe = "Failed to subscribe to the log subject."
)

func main() {
	diag := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command(diag, os.Stdout).Run(ctx, os.Args); err != nil {
		diag.Fatal().Err(err).Msg("netconsole failed")
	}
}

func command(diag zerolog.Logger, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "netconsole",
		Usage: "Print scopelog events received over NATS",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "NATS server URL",
				Value: nats.DefaultURL,
			},
			&cli.StringFlag{
				Name:  "subject",
				Usage: "Subject the logging service publishes on",
				Value: "scopelog",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Payload format: msgpack or text",
				Value: "msgpack",
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "Rendering style for msgpack payloads: plain, emoji or colored",
				Value: "colored",
			},
			&cli.StringFlag{
				Name:  "min-type",
				Usage: "Lowest message type to print, e.g. info",
			},
			&cli.StringSliceFlag{
				Name:  "category",
				Usage: "Only print events from these categories",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Truncate lines to this many terminal columns (0 disables)",
				Value: 0,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(ctx, c, diag, stdout)
		},
	}
}

func run(ctx context.Context, c *cli.Command, diag zerolog.Logger, stdout io.Writer) error {
	const op errors.Op = "netconsole.run"

	style, ok := scopelog.ParseStyle(c.String("style"))
	if !ok {
		return errors.New(op).Msgf("unknown style %q", c.String("style"))
	}
	format := c.String("format")
	if format != "msgpack" && format != "text" {
		return errors.New(op).Msgf("unknown format %q", format)
	}

	console := &consoleOutput{
		w:     stdout,
		f:     scopelog.NewTextFormatter(style),
		width: c.Int("width"),
	}
	stages := []scopelog.Output{}
	if name := c.String("min-type"); name != "" {
		t, ok := scopelog.ParseType(name)
		if !ok {
			return errors.New(op).Msgf("unknown type %q", name)
		}
		stages = append(stages, scopelog.MinType(t))
	}
	if cats := c.StringSlice("category"); len(cats) > 0 {
		stages = append(stages, scopelog.ByCategory(cats...))
	}
	out := scopelog.Pipe(append(stages, console)...)

	conn, err := nats.Connect(c.String("url"), nats.Name("netconsole"))
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgConnect)
	}
	defer conn.Close()

	h := &handler{diag: diag, out: out, console: console, text: format == "text"}
	sub, err := conn.Subscribe(c.String("subject"), h.handle)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgSubscribe)
	}
	defer func() { _ = sub.Unsubscribe() }()

	diag.Info().Str("url", conn.ConnectedUrl()).Str("subject", sub.Subject).Msg("listening")
	<-ctx.Done()
	return nil
}

// handler turns NATS messages into console lines.
type handler struct {
	diag    zerolog.Logger
	out     scopelog.Output
	console *consoleOutput
	text    bool
}

func (h *handler) handle(m *nats.Msg) {
	if h.text {
		h.console.line(string(m.Data))
		return
	}
	e, err := scopelog.UnmarshalEvent(m.Data)
	if err != nil {
		h.diag.Warn().Err(err).Int("bytes", len(m.Data)).Msg("dropping undecodable event")
		return
	}
	h.out.Log(e)
}

// consoleOutput renders events to a writer, one line each.
type consoleOutput struct {
	mu    sync.Mutex
	w     io.Writer
	f     *scopelog.TextFormatter
	width int
}

func (c *consoleOutput) Log(e *scopelog.Event) {
	c.line(c.f.Format(e))
}

func (c *consoleOutput) line(s string) {
	if c.width > 0 {
		s = runewidth.Truncate(s, c.width, "...")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.w, s)
}
