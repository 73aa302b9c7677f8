package gokit_test

import (
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/go-cmp/cmp"

	"github.com/Station-Manager/scopelog"
	egokit "github.com/Station-Manager/scopelog/adapter/gokit"
)

func TestLog(t *testing.T) {
	buf := scopelog.NewBufferSink(16)
	svc := scopelog.New(buf)
	defer svc.Close()

	logger := log.With(egokit.NewLogger(svc), "component", "test")
	if err := level.Warn(logger).Log("msg", "mess", "traceID", 17); err != nil {
		t.Fatal(err)
	}
	if err := logger.Log("message", "plain"); err != nil {
		t.Fatal(err)
	}

	events := buf.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	e := events[0]
	if e.Type != scopelog.TypeWarning {
		t.Errorf("type = %v, want WARNING", e.Type)
	}
	if e.Message != "mess" {
		t.Errorf("message = %q, want mess", e.Message)
	}
	want := scopelog.Metadata{
		{Key: "component", Value: "test"},
		{Key: "traceID", Value: 17},
	}
	if diff := cmp.Diff(want, e.Metadata); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
	if got := e.Location.FileName(); got != "gokit_test.go" {
		t.Errorf("location = %q, want the caller's file", got)
	}

	if events[1].Type != scopelog.TypeLog || events[1].Message != "plain" {
		t.Errorf("got %v %q, want LOG plain", events[1].Type, events[1].Message)
	}
}
