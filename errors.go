package hotresque

import "errors"

var (
	ErrInvalidQueueName  = errors.New("hotresque: invalid queue name")
	ErrInvalidTimeout    = errors.New("hotresque: invalid timeout")
	ErrMalformedMessage  = errors.New("hotresque: malformed message")
	ErrNoPayload         = errors.New("hotresque: message has no payload")
	ErrUnknownSerializer = errors.New("hotresque: unknown serializer")

	// ErrConnection wraps every failure reported by the backing store.
	ErrConnection = errors.New("hotresque: store command failed")
)
