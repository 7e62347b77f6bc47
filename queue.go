package hotresque

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Queue struct {
	cmd  redis.Cmdable
	name string
	ser  Serializer
	log  *slog.Logger

	// owned is set when the queue opened its own client (Dial).
	owned *redis.Client

	mu        sync.RWMutex
	namespace string
}

func New(cmd redis.Cmdable, name string, opts ...Option) (*Queue, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidQueueName
	}

	opt := Options{
		Namespace:  DefaultNamespace,
		Serializer: JSON,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&opt)
		}
	}
	if opt.Namespace == "" {
		opt.Namespace = DefaultNamespace
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}

	return &Queue{
		cmd:       cmd,
		name:      name,
		ser:       opt.Serializer,
		log:       opt.Logger.With("queue", name),
		namespace: opt.Namespace,
	}, nil
}

// Dial opens a dedicated client from ropts and binds a queue to it.
// Close releases the client.
func Dial(name string, ropts *redis.Options, opts ...Option) (*Queue, error) {
	if ropts == nil {
		ropts = &redis.Options{}
	}
	c := redis.NewClient(ropts)
	q, err := New(c, name, opts...)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	q.owned = c
	return q, nil
}

// Close closes the client opened by Dial. It is a no-op for queues built with New.
func (q *Queue) Close() error {
	if q.owned == nil {
		return nil
	}
	return q.owned.Close()
}

func (q *Queue) Name() string { return q.name }

func (q *Queue) Namespace() string {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.namespace
}

// SetNamespace redirects every later operation to "<ns>:<name>".
// Entries already stored under the previous key stay there.
// An empty namespace falls back to DefaultNamespace, as WithNamespace does.
func (q *Queue) SetNamespace(ns string) {
	if ns == "" {
		ns = DefaultNamespace
	}
	q.mu.Lock()
	q.namespace = ns
	q.mu.Unlock()
}

// Key is recomputed on every call.
func (q *Queue) Key() string { return q.Namespace() + ":" + q.name }

func (q *Queue) Length(ctx context.Context) (int64, error) {
	key := q.Key()
	n, err := q.cmd.LLen(ctx, key).Result()
	if err != nil {
		return 0, storeErr("llen", key, err)
	}
	return n, nil
}

// Clear deletes the backing list. Clearing a missing key is not an error.
func (q *Queue) Clear(ctx context.Context) error {
	key := q.Key()
	if err := q.cmd.Del(ctx, key).Err(); err != nil {
		return storeErr("del", key, err)
	}
	q.log.Debug("queue cleared", "key", key)
	return nil
}

// Put appends msgs to the tail of the list with a single RPUSH.
// Each message is encoded by the serializer; raw queues accept strings, byte
// slices and scalars and send them unchanged.
// Put does not wrap messages in an Envelope.
func (q *Queue) Put(ctx context.Context, msgs ...any) error {
	if len(msgs) == 0 {
		return nil
	}
	enc := q.ser
	if enc == nil {
		enc = Raw
	}
	vals := make([]any, len(msgs))
	for i, m := range msgs {
		b, err := enc.Encode(m)
		if err != nil {
			return fmt.Errorf("hotresque: encode message %d: %w", i, err)
		}
		vals[i] = b
	}

	key := q.Key()
	if err := q.cmd.RPush(ctx, key, vals...).Err(); err != nil {
		return storeErr("rpush", key, err)
	}
	q.log.Debug("queue put", "key", key, "count", len(vals))
	return nil
}

// Get removes and returns the head of the queue, or (nil, nil) when nothing
// is available (empty list, or blocking timeout expired).
//
// A popped entry that does not decode into an Envelope whose args[0] is JSON
// text yields ErrMalformedMessage. The entry is gone from the list at that point.
func (q *Queue) Get(ctx context.Context, opts ...ReadOption) (*Message, error) {
	return q.get(ctx, buildReadOptions(opts))
}

func (q *Queue) get(ctx context.Context, ro readOptions) (*Message, error) {
	key := q.Key()

	var body []byte
	if ro.block {
		if ro.timeout < 0 {
			return nil, ErrInvalidTimeout
		}
		// BLPOP takes integer seconds. Round up to avoid truncation to zero,
		// which would mean wait forever.
		wait := ((ro.timeout + time.Second - 1) / time.Second) * time.Second
		res, err := q.cmd.BLPop(ctx, wait, key).Result()
		if err != nil {
			if err == redis.Nil {
				return nil, nil
			}
			return nil, storeErr("blpop", key, err)
		}
		if len(res) != 2 {
			return nil, nil
		}
		body = []byte(res[1])
	} else {
		b, err := q.cmd.LPop(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return nil, nil
			}
			return nil, storeErr("lpop", key, err)
		}
		body = b
	}

	if isRaw(q.ser) {
		var raw []byte
		if err := Raw.Decode(body, &raw); err != nil {
			return nil, err
		}
		return &Message{Key: key, Body: raw}, nil
	}
	msg, err := unwrap(q.ser, key, body)
	if err != nil {
		q.log.Warn("dropping malformed message", "key", key, "error", err)
		return nil, err
	}
	q.log.Debug("queue get", "key", key, "class", msg.Class)
	return msg, nil
}

func storeErr(cmd, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrConnection, cmd, key, err)
}
