package scopelog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_Statistics(t *testing.T) {
	rec := &recorder{}
	svc := newTestService(t, rec)

	var last *Interval
	for _, d := range []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond} {
		iv := svc.Interval("work")
		iv.Begin()
		time.Sleep(d)
		iv.End()
		last = iv
	}

	const tolerance = float64(50 * time.Millisecond)
	st := last.Stats()
	assert.Equal(t, 3, st.Count)
	assert.InDelta(t, float64(600*time.Millisecond), float64(st.Total), 3*tolerance)
	assert.InDelta(t, float64(100*time.Millisecond), float64(st.Min), tolerance)
	assert.InDelta(t, float64(300*time.Millisecond), float64(st.Max), tolerance)
	assert.InDelta(t, float64(200*time.Millisecond), float64(st.Average), tolerance)
	assert.Equal(t, st.Total/3, st.Average)

	all := svc.IntervalStats()
	require.Len(t, all, 1)
	assert.Equal(t, st, all[last.ID()])

	end := rec.Last()
	assert.Equal(t, TypeIntervalEnd, end.Type)
	require.NotNil(t, end.Interval)
	assert.Equal(t, "work", end.Interval.Name)
	assert.Equal(t, st, end.Interval.Stats)
	assert.Equal(t, last.Duration(), end.Interval.Duration)
}

func TestInterval_Identity(t *testing.T) {
	svc := newTestService(t, &recorder{})

	a := svc.Interval("same")
	b := svc.Interval("same")
	assert.NotEqual(t, a.ID(), b.ID(), "different lines are different intervals")

	a.Begin()
	a.End()
	assert.Equal(t, 1, a.Stats().Count)
	assert.Equal(t, 0, b.Stats().Count)
}

func TestInterval_Idempotent(t *testing.T) {
	rec := &recorder{}
	svc := newTestService(t, rec)

	iv := svc.Interval("once")
	iv.End()
	assert.Zero(t, rec.Len(), "end without begin does nothing")

	iv.Begin()
	iv.Begin()
	assert.True(t, iv.Begun())
	iv.End()
	iv.End()
	assert.False(t, iv.Begun())

	assert.Equal(t, 2, rec.Len())
	assert.Equal(t, 1, iv.Stats().Count)

	begin := rec.Events()[0]
	assert.Equal(t, TypeIntervalBegin, begin.Type)
	assert.Equal(t, "interval_test.go", filepath.Base(begin.Location.File))
}

func TestInterval_InScope(t *testing.T) {
	rec := &recorder{}
	svc := newTestService(t, rec)

	sc := svc.Scope("outer")
	sc.Enter()
	iv := sc.Interval("step")
	iv.Begin()
	iv.End()
	sc.Leave()

	events := rec.Events()
	require.Len(t, events, 4)
	for _, e := range events[1:3] {
		assert.Equal(t, 2, e.Level)
		assert.Equal(t, []bool{true}, e.Stack)
	}
	assert.Equal(t, "│ ┌", Padding(events[1]))
	assert.Equal(t, "│ └", Padding(events[2]))
}

func TestIntervalFunc(t *testing.T) {
	rec := &recorder{}
	svc := newTestService(t, rec)

	for i := 0; i < 2; i++ {
		svc.IntervalFunc("fn", func() { time.Sleep(time.Millisecond) })
	}

	events := rec.Events()
	require.Len(t, events, 4)
	end := events[3]
	require.NotNil(t, end.Interval)
	assert.Equal(t, 2, end.Interval.Stats.Count)
	assert.GreaterOrEqual(t, end.Interval.Duration, time.Millisecond)
}

func TestInterval_SharedStore(t *testing.T) {
	store := NewIntervalStore()
	one := &Service{Output: &recorder{}, Intervals: store}
	two := &Service{Output: &recorder{}, Intervals: store}
	require.NoError(t, one.Initialize())
	require.NoError(t, two.Initialize())
	defer one.Close()
	defer two.Close()

	for _, svc := range []*Service{one, two} {
		svc.IntervalFunc("shared", func() {})
	}
	assert.Len(t, store.All(), 1)
	for _, st := range store.All() {
		assert.Equal(t, 2, st.Count)
	}
}
