package scopelog

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// MarshalEvent encodes e with msgpack for transport to a remote console.
// Error and Stringer metadata values are sent as their string form.
func MarshalEvent(e *Event) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeEvent(&buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeEvent writes the msgpack encoding of e to w.
func EncodeEvent(w io.Writer, e *Event) error {
	const op errors.Op = "scopelog.EncodeEvent"
	wire := *e
	wire.Metadata = wireMetadata(e.Metadata)
	if err := msgpack.NewEncoder(w).Encode(&wire); err != nil {
		return errors.New(op).Err(err).Msg(errMsgEventEncode)
	}
	return nil
}

// UnmarshalEvent decodes an event produced by MarshalEvent.
func UnmarshalEvent(data []byte) (*Event, error) {
	return DecodeEvent(bytes.NewReader(data))
}

// DecodeEvent reads one msgpack encoded event from r.
func DecodeEvent(r io.Reader) (*Event, error) {
	const op errors.Op = "scopelog.DecodeEvent"
	var e Event
	if err := msgpack.NewDecoder(r).Decode(&e); err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgEventDecode)
	}
	return &e, nil
}

func wireMetadata(md Metadata) Metadata {
	if len(md) == 0 {
		return nil
	}
	out := make(Metadata, len(md))
	for i, f := range md {
		out[i] = Field{Key: f.Key, Value: wireValue(f.Value)}
	}
	return out
}

func wireValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time, time.Duration:
		return v
	case error:
		return x.Error()
	case Metadata:
		return wireMetadata(x).Map()
	case fmt.Stringer:
		return x.String()
	}
	return v
}
