package scopelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalStats_Add(t *testing.T) {
	var s IntervalStats
	for _, d := range []time.Duration{300 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond} {
		s = s.add(d)
	}

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 600*time.Millisecond, s.Total)
	assert.Equal(t, 100*time.Millisecond, s.Min)
	assert.Equal(t, 300*time.Millisecond, s.Max)
	assert.Equal(t, 200*time.Millisecond, s.Average)
	assert.LessOrEqual(t, s.Min, s.Average)
	assert.LessOrEqual(t, s.Average, s.Max)
}

func TestIntervalStats_FirstSampleSetsMin(t *testing.T) {
	s := IntervalStats{}.add(5 * time.Second)
	assert.Equal(t, 5*time.Second, s.Min)
	assert.Equal(t, 5*time.Second, s.Max)
	assert.Equal(t, 5*time.Second, s.Average)

	s = s.add(0)
	assert.Equal(t, time.Duration(0), s.Min)
	assert.Equal(t, 2500*time.Millisecond, s.Average)
}

func TestIntervalStore(t *testing.T) {
	store := NewIntervalStore()

	t.Run("get creates a zero entry", func(t *testing.T) {
		assert.Equal(t, IntervalStats{}, store.Get("a"))
		assert.Contains(t, store.All(), "a")
	})

	t.Run("update accumulates per id", func(t *testing.T) {
		store.Update("a", time.Second)
		got := store.Update("a", 3*time.Second)
		store.Update("b", time.Millisecond)

		assert.Equal(t, 2, got.Count)
		assert.Equal(t, 2*time.Second, got.Average)
		assert.Equal(t, got, store.Get("a"))
		assert.Equal(t, 1, store.Get("b").Count)
	})

	t.Run("all returns a copy", func(t *testing.T) {
		all := store.All()
		all["a"] = IntervalStats{}
		assert.Equal(t, 2, store.Get("a").Count)
	})
}
