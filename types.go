package hotresque

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Envelope is the Resque job shape. Args[0] holds the JSON payload.
type Envelope struct {
	Class string `json:"class" msgpack:"class" yaml:"class"`
	Args  []any  `json:"args" msgpack:"args" yaml:"args"`
}

// NewEnvelope builds an envelope whose first argument is payload encoded as JSON.
// Put does not call it; producers wrap their own jobs.
func NewEnvelope(class string, payload any) (Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Class: class, Args: []any{string(b)}}, nil
}

// Message is one entry popped from the queue.
// For raw queues only Key and Body are set.
//
// Data holds args[0] decoded into generic values; numbers are json.Number so
// large integer ids stay exact.
type Message struct {
	Key     string
	Body    []byte
	Class   string
	Args    []any
	Payload json.RawMessage
	Data    any
}

// Decode unmarshals the JSON payload carried in args[0] into v.
func (m *Message) Decode(v any) error {
	if m == nil || m.Payload == nil {
		return ErrNoPayload
	}
	return json.Unmarshal(m.Payload, v)
}

func unwrap(s Serializer, key string, body []byte) (*Message, error) {
	var env Envelope
	if err := s.Decode(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if len(env.Args) == 0 {
		return nil, fmt.Errorf("%w: missing args", ErrMalformedMessage)
	}
	first, ok := env.Args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: args[0] is %T, want JSON string", ErrMalformedMessage, env.Args[0])
	}
	data, err := decodePayload([]byte(first))
	if err != nil {
		return nil, fmt.Errorf("%w: args[0]: %v", ErrMalformedMessage, err)
	}
	return &Message{
		Key:     key,
		Body:    body,
		Class:   env.Class,
		Args:    env.Args,
		Payload: json.RawMessage(first),
		Data:    data,
	}, nil
}

// decodePayload decodes one JSON value, keeping numbers as json.Number.
func decodePayload(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}
