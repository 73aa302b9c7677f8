package scopelog

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Scope groups log events under a named, possibly nested block. A scope is
// created detached; Enter registers it with the service's ScopeRegistry and
// Leave removes it again. Both are idempotent and a scope may be re-entered
// after leaving.
//
// Messages logged through an entered scope are nested one level below it.
// Once the owning service is closed, a scope keeps its registry consistent but
// emits nothing.
type Scope struct {
	logger

	id     uuid.UUID
	name   string
	parent *Scope

	mu       sync.Mutex
	entered  atomic.Bool
	level    atomic.Int32
	start    time.Time
	duration time.Duration
}

func newScope(parent *logger, name string) *Scope {
	sc := &Scope{id: uuid.New(), name: name}
	if parent != nil {
		sc.logger = logger{svc: parent.svc, category: parent.category, meta: parent.meta}
		sc.parent = parent.scope
	}
	sc.logger.scope = sc
	return sc
}

// Enter registers the scope and emits a scope-enter event. Entering an
// entered scope does nothing.
func (s *Scope) Enter() {
	if s == nil {
		return
	}
	reg := s.svc.registry()
	if reg == nil {
		return
	}

	s.mu.Lock()
	if s.entered.Load() {
		s.mu.Unlock()
		return
	}
	level, stack := reg.Register(s.id)
	s.entered.Store(true)
	s.level.Store(int32(level))
	s.start = time.Now()
	s.duration = 0
	s.mu.Unlock()

	s.transition(TypeScopeEnter, level, stack, 0)
}

// Leave unregisters the scope, records its duration and emits a scope-leave
// event. Leaving a scope that is not entered does nothing.
func (s *Scope) Leave() {
	if s == nil {
		return
	}
	reg := s.svc.registry()
	if reg == nil {
		return
	}

	s.mu.Lock()
	if !s.entered.Load() {
		s.mu.Unlock()
		return
	}
	level, stack, ok := reg.Unregister(s.id)
	s.entered.Store(false)
	s.level.Store(0)
	s.duration = time.Since(s.start)
	d := s.duration
	s.mu.Unlock()

	if ok {
		s.transition(TypeScopeLeave, level, stack, d)
	}
}

func (s *Scope) transition(t Type, level int, stack []bool, d time.Duration) {
	svc := s.svc
	if !svc.acquire() {
		return
	}
	defer svc.release()

	e := newEvent(s.category, t, callerLocation(), level, stack, s.meta, s.name)
	e.Scope = &ScopeInfo{ID: s.id, Name: s.name, Duration: d}
	svc.dispatch(e)
}

// ID returns the scope's process-unique identity.
func (s *Scope) ID() uuid.UUID { return s.id }

// Name returns the display name.
func (s *Scope) Name() string { return s.name }

// Level returns the nesting level while entered, otherwise 0.
func (s *Scope) Level() int {
	if s == nil {
		return 0
	}
	return int(s.level.Load())
}

// Entered reports whether the scope is currently registered.
func (s *Scope) Entered() bool {
	return s != nil && s.entered.Load()
}

// Duration returns the time between the last Enter and Leave. It is 0 while
// entered and before the first Leave.
func (s *Scope) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// Category returns the category the scope logs under.
func (s *Scope) Category() string { return s.category }
