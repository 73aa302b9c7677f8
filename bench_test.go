package scopelog

import (
	"io"
	"strconv"
	"testing"

	smerrors "github.com/Station-Manager/errors"
)

type discard struct{}

func (discard) Log(*Event) {}

// newBenchService constructs a Service dispatching to a sink that drops
// every event, so only the bookkeeping and event construction are measured.
func newBenchService(b *testing.B, out Output) *Service {
	s := &Service{Output: out, DiagWriter: io.Discard}
	if err := s.Initialize(); err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = s.Close() })
	return s
}

func makeDetailedChain(depth int) error {
	if depth <= 0 {
		return nil
	}
	err := smerrors.New(smerrors.Op("op_0")).Msg("root cause message")
	for i := 1; i < depth; i++ {
		op := "op_" + strconv.Itoa(i)
		err = smerrors.New(smerrors.Op(op)).Err(err).Msg("wrapped message")
	}
	return err
}

func BenchmarkInfo(b *testing.B) {
	s := newBenchService(b, discard{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Info("hello")
	}
}

func BenchmarkInfoWith_Fields(b *testing.B) {
	s := newBenchService(b, discard{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.InfoWith().Str("k", "v").Int("n", i).Msg("hello")
	}
}

func BenchmarkErrorWith_DetailedChain3(b *testing.B) {
	s := newBenchService(b, discard{})
	err := makeDetailedChain(3)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.ErrorWith().Err(err).Msg("failed")
	}
}

func BenchmarkScope_EnterLeave(b *testing.B) {
	s := newBenchService(b, discard{})
	outer := s.Scope("outer")
	outer.Enter()
	defer outer.Leave()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sc := outer.Scope("inner")
		sc.Enter()
		sc.Leave()
	}
}

func BenchmarkScope_NestedMessage(b *testing.B) {
	s := newBenchService(b, discard{})
	sc := s.Scope("outer")
	sc.Enter()
	defer sc.Leave()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sc.Info("nested")
	}
}

func BenchmarkInterval_BeginEnd(b *testing.B) {
	s := newBenchService(b, discard{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		iv := s.Interval("bench")
		iv.Begin()
		iv.End()
	}
}

func BenchmarkPipeline_FilteredFork(b *testing.B) {
	p := Pipe(MinType(TypeInfo), Fork(discard{}, discard{}))
	e := testEvent(TypeWarning)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Log(e)
	}
}

func BenchmarkTextFormatter_Format(b *testing.B) {
	f := NewTextFormatter(StylePlain)
	e := fixedEvent(TypeInfo, 3, true, false)
	e.Metadata = Metadata{{Key: "k", Value: "v"}, {Key: "n", Value: 1}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Format(e)
	}
}

func BenchmarkMarshalEvent(b *testing.B) {
	e := fixedEvent(TypeInfo, 3, true, false)
	e.Metadata = Metadata{{Key: "k", Value: "v"}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := MarshalEvent(e); err != nil {
			b.Fatal(err)
		}
	}
}
