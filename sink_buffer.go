package scopelog

import "sync"

// BufferSink keeps the most recent events in memory.
type BufferSink struct {
	mu     sync.Mutex
	events []*Event
	next   int
	full   bool
}

// NewBufferSink returns a sink holding up to size events.
func NewBufferSink(size int) *BufferSink {
	if size <= 0 {
		size = defaultBufferSize
	}
	return &BufferSink{events: make([]*Event, size)}
}

func (b *BufferSink) Log(e *Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[b.next] = e
	b.next = (b.next + 1) % len(b.events)
	if b.next == 0 {
		b.full = true
	}
}

// Events returns the held events, oldest first.
func (b *BufferSink) Events() []*Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.full {
		out := make([]*Event, b.next)
		copy(out, b.events[:b.next])
		return out
	}
	out := make([]*Event, 0, len(b.events))
	out = append(out, b.events[b.next:]...)
	return append(out, b.events[:b.next]...)
}

// Len returns the number of held events.
func (b *BufferSink) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.full {
		return len(b.events)
	}
	return b.next
}

// Reset discards every held event.
func (b *BufferSink) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.events)
	b.next = 0
	b.full = false
}
