package scopelog

import (
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder is an Output that keeps every event it receives.
type recorder struct {
	mu     sync.Mutex
	events []*Event
}

func (r *recorder) Log(e *Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) Events() []*Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recorder) Last() *Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// newTestService returns an initialized service dispatching to out. It is
// closed when the test ends.
func newTestService(t testing.TB, out Output) *Service {
	t.Helper()
	svc := &Service{WorkingDir: t.TempDir(), Output: out, DiagWriter: io.Discard}
	require.NoError(t, svc.Initialize())
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}
