package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Station-Manager/scopelog"
)

func sampleEvent(t scopelog.Type, msg string) *scopelog.Event {
	return &scopelog.Event{
		Time:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Category: "APP",
		Type:     t,
		Location: scopelog.Location{File: "/src/main.go", Line: 9},
		Message:  msg,
	}
}

func TestHandler_Msgpack(t *testing.T) {
	var out, diag bytes.Buffer
	console := &consoleOutput{w: &out, f: scopelog.NewTextFormatter(scopelog.StylePlain)}
	h := &handler{
		diag:    zerolog.New(&diag),
		out:     scopelog.Pipe(scopelog.MinType(scopelog.TypeInfo), console),
		console: console,
	}

	for _, e := range []*scopelog.Event{sampleEvent(scopelog.TypeDebug, "hidden"), sampleEvent(scopelog.TypeError, "shown")} {
		data, err := scopelog.MarshalEvent(e)
		require.NoError(t, err)
		h.handle(&nats.Msg{Data: data})
	}
	h.handle(&nats.Msg{Data: []byte{0xc1}})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[ERROR] <main.go:9> shown")
	assert.Contains(t, diag.String(), "dropping undecodable event")
}

func TestHandler_Text(t *testing.T) {
	var out bytes.Buffer
	console := &consoleOutput{w: &out, f: scopelog.NewTextFormatter(scopelog.StylePlain), width: 10}
	h := &handler{diag: zerolog.Nop(), out: console, console: console, text: true}

	h.handle(&nats.Msg{Data: []byte("ab 03:04:05 [APP] [INFO] hello world")})

	line := strings.TrimSuffix(out.String(), "\n")
	assert.Equal(t, "ab 03:0...", line)
}

func TestConsoleOutput_WideRunes(t *testing.T) {
	var out bytes.Buffer
	c := &consoleOutput{w: &out, width: 6}
	c.line("日本語テキスト")
	assert.Equal(t, "日...\n", out.String())
}

func TestCommand_RejectsBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"netconsole", "--style", "neon"},
		{"netconsole", "--format", "xml"},
		{"netconsole", "--min-type", "scope"},
	} {
		err := command(zerolog.Nop(), io.Discard).Run(context.Background(), args)
		require.Error(t, err, strings.Join(args, " "))
		dErr, ok := errors.AsDetailedError(err)
		require.True(t, ok, strings.Join(args, " "))
		assert.Equal(t, errors.Op("netconsole.run"), dErr.Op())
	}
}
