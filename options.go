package hotresque

import (
	"log/slog"
	"time"
)

const DefaultNamespace = "hotresque"

type Options struct {
	Namespace  string
	Serializer Serializer
	Logger     *slog.Logger
}

type Option func(*Options)

// WithNamespace sets the key prefix. An empty namespace falls back to DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(o *Options) { o.Namespace = ns }
}

// WithSerializer sets the outer serializer.
// nil or Raw stores and returns payloads unmodified, skipping envelope decoding.
func WithSerializer(s Serializer) Option {
	return func(o *Options) { o.Serializer = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

type readOptions struct {
	block    bool
	blockSet bool
	timeout  time.Duration
}

// ReadOption configures Get, Consume and Worker.
type ReadOption func(*readOptions)

// WithBlock makes reads wait server-side (BLPOP) for an entry.
func WithBlock(block bool) ReadOption {
	return func(o *readOptions) {
		o.block = block
		o.blockSet = true
	}
}

// WithTimeout bounds a blocking read. Zero waits indefinitely.
// BLPOP has whole-second resolution; sub-second values round up to one second.
func WithTimeout(d time.Duration) ReadOption {
	return func(o *readOptions) { o.timeout = d }
}

func buildReadOptions(opts []ReadOption) readOptions {
	var ro readOptions
	for _, fn := range opts {
		if fn != nil {
			fn(&ro)
		}
	}
	return ro
}
