package scopelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dumpNode struct {
	Name     string
	Children []*dumpNode
	Parent   *dumpNode
	secret   string
}

func messages(events []*Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Message)
	}
	return out
}

func TestDump(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		rec := &recorder{}
		svc := newTestService(t, rec)

		svc.Dump(struct {
			ID   int
			Tags []string
		}{ID: 7, Tags: []string{"a"}})

		assert.Equal(t, []string{
			"Struct: ",
			"ID: 7",
			"Tags: []string (len: 1) {",
			"Tags[0]: a",
			"Tags: }",
		}, messages(rec.Events()))
		for _, e := range rec.Events() {
			assert.Equal(t, TypeDebug, e.Type)
			assert.Equal(t, "dump_test.go", e.Location.FileName())
		}
	})

	t.Run("cycles are cut", func(t *testing.T) {
		rec := &recorder{}
		svc := newTestService(t, rec)

		root := &dumpNode{Name: "root", secret: "hidden"}
		root.Children = []*dumpNode{{Name: "child", Parent: root}}
		svc.Dump(root)

		msgs := messages(rec.Events())
		assert.Contains(t, msgs, "Children[0].Parent: <circular reference>")
		for _, m := range msgs {
			assert.NotContains(t, m, "hidden")
		}
	})

	t.Run("long slices are truncated", func(t *testing.T) {
		rec := &recorder{}
		svc := newTestService(t, rec)

		svc.Dump(make([]int, maxDumpElements+5))
		msgs := messages(rec.Events())
		assert.Contains(t, msgs, ": ... (5 more elements)")
	})

	t.Run("nil", func(t *testing.T) {
		rec := &recorder{}
		svc := newTestService(t, rec)
		svc.Dump(nil)
		require.Equal(t, 1, rec.Len())
		assert.Equal(t, "Dump: <nil>", rec.Last().Message)
	})

	t.Run("inside a scope", func(t *testing.T) {
		rec := &recorder{}
		svc := newTestService(t, rec)
		svc.ScopeFunc("s", func(sc *Scope) {
			sc.Dump(map[string]int{"k": 1})
		})
		events := rec.Events()
		require.Len(t, events, 5)
		assert.Equal(t, 2, events[1].Level)
	})
}
