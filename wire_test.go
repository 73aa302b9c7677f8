package scopelog

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEvent_ScopeLeave(t *testing.T) {
	id := uuid.New()
	e := fixedEvent(TypeScopeLeave, 2, true, true)
	e.Scope = &ScopeInfo{ID: id, Name: "load", Duration: 1500 * time.Millisecond}
	e.Metadata = Metadata{
		{Key: "err", Value: errors.New("boom")},
		{Key: "ip", Value: net.IPv4(127, 0, 0, 1)},
		{Key: "at", Value: fixedTime},
		{Key: "sub", Value: Metadata{{Key: "x", Value: "y"}}},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeEvent(&buf, e))
	got, err := DecodeEvent(&buf)
	require.NoError(t, err)

	assert.True(t, fixedTime.Equal(got.Time))
	assert.Equal(t, e.Category, got.Category)
	assert.Equal(t, TypeScopeLeave, got.Type)
	assert.Equal(t, e.Location, got.Location)
	assert.Equal(t, 2, got.Level)
	assert.Equal(t, []bool{true, true}, got.Stack)
	require.NotNil(t, got.Scope)
	assert.Equal(t, id, got.Scope.ID)
	assert.Equal(t, 1500*time.Millisecond, got.Scope.Duration)
	assert.Nil(t, got.Interval)

	errVal, _ := got.Metadata.Get("err")
	assert.Equal(t, "boom", errVal)
	ip, _ := got.Metadata.Get("ip")
	assert.Equal(t, "127.0.0.1", ip)
	at, _ := got.Metadata.Get("at")
	if ts, ok := at.(time.Time); assert.True(t, ok) {
		assert.True(t, fixedTime.Equal(ts))
	}
	sub, _ := got.Metadata.Get("sub")
	assert.Equal(t, map[string]any{"x": "y"}, sub)

	assert.Equal(t, "boom", e.Metadata[0].Value.(error).Error(), "encoding leaves the event untouched")
}

func TestMarshalEvent_Interval(t *testing.T) {
	e := fixedEvent(TypeIntervalEnd, 0)
	e.Interval = &IntervalInfo{
		Name:     "parse",
		Duration: 250 * time.Millisecond,
		Stats:    IntervalStats{Count: 2, Total: 400 * time.Millisecond, Min: 150 * time.Millisecond, Max: 250 * time.Millisecond, Average: 200 * time.Millisecond},
	}

	data, err := MarshalEvent(e)
	require.NoError(t, err)
	got, err := UnmarshalEvent(data)
	require.NoError(t, err)

	require.NotNil(t, got.Interval)
	assert.Equal(t, *e.Interval, *got.Interval)
	got.Time = got.Time.UTC()
	assert.Equal(t, NewTextFormatter(StylePlain).Format(e), NewTextFormatter(StylePlain).Format(got))
}

func TestUnmarshalEvent_Garbage(t *testing.T) {
	_, err := UnmarshalEvent([]byte{0xc1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), errMsgEventDecode)
}
