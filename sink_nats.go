package scopelog

import (
	"sync"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/nats-io/nats.go"
)

// publisher is the part of *nats.Conn the sink uses.
type publisher interface {
	Publish(subject string, data []byte) error
	IsConnected() bool
	Flush() error
	Close()
}

// NATSOptions configures a NATSSink.
type NATSOptions struct {
	Subject string
	// Format is "msgpack" (decodable by netconsole) or "text".
	Format string
	// BufferSize is how many encoded events are kept while no connection is
	// available. Older events are dropped first.
	BufferSize    int
	Name          string
	MaxReconnects int
	ReconnectWait time.Duration
	Formatter     *TextFormatter
}

// NATSSink broadcasts events on a NATS subject.
type NATSSink struct {
	sinkState
	mu        sync.Mutex
	conn      publisher
	subject   string
	msgpack   bool
	formatter *TextFormatter
	pending   [][]byte
	limit     int
}

// NewNATSSink connects to url and returns a sink publishing on opts.Subject.
// The connection retries in the background, so the sink starts buffering
// when the server is not reachable yet.
func NewNATSSink(url string, opts NATSOptions) (*NATSSink, error) {
	const op errors.Op = "scopelog.NewNATSSink"
	s := newNATSSink(nil, opts)

	name := opts.Name
	if name == emptyString {
		name = "scopelog"
	}
	natsOpts := []nats.Option{
		nats.Name(name),
		nats.RetryOnFailedConnect(true),
		nats.ConnectHandler(func(*nats.Conn) { s.flushPending() }),
		nats.ReconnectHandler(func(*nats.Conn) { s.flushPending() }),
	}
	if opts.MaxReconnects != 0 {
		natsOpts = append(natsOpts, nats.MaxReconnects(opts.MaxReconnects))
	}
	if opts.ReconnectWait > 0 {
		natsOpts = append(natsOpts, nats.ReconnectWait(opts.ReconnectWait))
	}

	conn, err := nats.Connect(url, natsOpts...)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgNATSConnect)
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	return s, nil
}

func newNATSSink(conn publisher, opts NATSOptions) *NATSSink {
	subject := opts.Subject
	if subject == emptyString {
		subject = defaultNATSSubject
	}
	limit := opts.BufferSize
	if limit <= 0 {
		limit = defaultNATSBuffer
	}
	f := opts.Formatter
	if f == nil {
		f = NewTextFormatter(StylePlain)
	}
	return &NATSSink{
		sinkState: sinkState{name: "nats"},
		conn:      conn,
		subject:   subject,
		msgpack:   opts.Format != "text",
		formatter: f,
		limit:     limit,
	}
}

func (s *NATSSink) Log(e *Event) {
	data, err := s.encode(e)
	if err != nil {
		s.fail(e, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil || !s.conn.IsConnected() {
		s.bufferLocked(data)
		return
	}
	s.flushLocked()
	if err = s.conn.Publish(s.subject, data); err != nil {
		s.fail(e, err)
		s.bufferLocked(data)
	}
}

func (s *NATSSink) encode(e *Event) ([]byte, error) {
	if s.msgpack {
		return MarshalEvent(e)
	}
	return []byte(s.formatter.Format(e)), nil
}

func (s *NATSSink) bufferLocked(data []byte) {
	s.pending = append(s.pending, data)
	if over := len(s.pending) - s.limit; over > 0 {
		s.pending = append(s.pending[:0], s.pending[over:]...)
		s.drop(over)
	}
}

func (s *NATSSink) flushLocked() {
	if len(s.pending) == 0 || s.conn == nil || !s.conn.IsConnected() {
		return
	}
	sent := 0
	for _, data := range s.pending {
		if err := s.conn.Publish(s.subject, data); err != nil {
			s.failed(err)
			break
		}
		sent++
	}
	s.pending = append(s.pending[:0], s.pending[sent:]...)
}

func (s *NATSSink) flushPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

// Pending returns the number of buffered events.
func (s *NATSSink) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Subject returns the subject events are published on.
func (s *NATSSink) Subject() string {
	return s.subject
}

func (s *NATSSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	s.flushLocked()
	var err error
	if s.conn.IsConnected() {
		err = s.conn.Flush()
	}
	s.conn.Close()
	s.conn = nil
	return err
}
