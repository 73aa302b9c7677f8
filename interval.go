package scopelog

import (
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Interval measures a recurring operation. Intervals with the same name
// created at the same source line share one statistics record in the
// service's IntervalStore.
type Interval struct {
	owner *logger
	id    string
	name  string
	loc   Location

	mu       sync.Mutex
	begun    atomic.Bool
	start    time.Time
	duration time.Duration
	local    IntervalStats
}

func newInterval(owner *logger, name string, loc Location) *Interval {
	return &Interval{
		owner: owner,
		id:    intervalID(name, loc),
		name:  name,
		loc:   loc,
	}
}

func intervalID(name string, loc Location) string {
	return name + "@" + loc.File + ":" + loc.Function + ":" + strconv.Itoa(loc.Line)
}

// Begin starts a measurement. Calling Begin on a running interval does
// nothing.
func (i *Interval) Begin() {
	if i == nil {
		return
	}
	i.mu.Lock()
	if i.begun.Load() {
		i.mu.Unlock()
		return
	}
	i.begun.Store(true)
	i.start = time.Now()
	last := i.duration
	i.mu.Unlock()

	i.emit(TypeIntervalBegin, last, i.Stats())
}

// End finishes the measurement, accumulates it into the shared statistics
// and emits an interval-end event. Calling End on an interval that is not
// running does nothing.
func (i *Interval) End() {
	if i == nil {
		return
	}
	i.mu.Lock()
	if !i.begun.Load() {
		i.mu.Unlock()
		return
	}
	d := time.Since(i.start)
	i.duration = d
	i.begun.Store(false)

	var stats IntervalStats
	if store := i.owner.service().intervals(); store != nil {
		stats = store.Update(i.id, d)
	} else {
		i.local = i.local.add(d)
		stats = i.local
	}
	i.mu.Unlock()

	i.emit(TypeIntervalEnd, d, stats)
}

func (i *Interval) emit(t Type, d time.Duration, stats IntervalStats) {
	svc := i.owner.service()
	if !svc.acquire() {
		return
	}
	defer svc.release()

	level, stack := i.owner.position()
	e := newEvent(i.owner.category, t, i.loc, level, stack, i.owner.meta, i.name)
	e.Interval = &IntervalInfo{Name: i.name, Duration: d, Stats: stats}
	svc.dispatch(e)
}

// ID returns the identity the statistics are stored under.
func (i *Interval) ID() string { return i.id }

// Name returns the display name.
func (i *Interval) Name() string { return i.name }

// Begun reports whether a measurement is running.
func (i *Interval) Begun() bool { return i != nil && i.begun.Load() }

// Duration returns the last measured duration.
func (i *Interval) Duration() time.Duration {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.duration
}

// Stats returns the accumulated statistics for the interval's identity.
func (i *Interval) Stats() IntervalStats {
	if store := i.owner.service().intervals(); store != nil {
		return store.Get(i.id)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.local
}
