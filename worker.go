package hotresque

import (
	"context"
	"iter"

	"github.com/google/uuid"
)

// Consume returns a pull loop over the queue. Reads block unless the caller
// passes WithBlock(false).
//
// The sequence ends the first time Get returns no message, or when ctx is
// done. A Get error is yielded once and ends the sequence. Entries are popped
// as they are yielded; nothing is replayed across calls.
func (q *Queue) Consume(ctx context.Context, opts ...ReadOption) iter.Seq2[*Message, error] {
	ro := buildReadOptions(opts)
	if !ro.blockSet {
		ro.block = true
	}
	return func(yield func(*Message, error) bool) {
		for {
			if ctx.Err() != nil {
				return
			}
			msg, err := q.get(ctx, ro)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				yield(nil, err)
				return
			}
			if msg == nil {
				return
			}
			if !yield(msg, nil) {
				return
			}
		}
	}
}

// Handler processes one message. Extra arguments are captured by closure.
type Handler func(ctx context.Context, msg *Message) error

// Worker dispatches queue messages to a Handler one at a time.
type Worker struct {
	id      string
	q       *Queue
	handler Handler
	opts    []ReadOption
}

// Worker registers h over Consume with the given read options.
func (q *Queue) Worker(h Handler, opts ...ReadOption) *Worker {
	return &Worker{
		id:      uuid.NewString(),
		q:       q,
		handler: h,
		opts:    opts,
	}
}

func (w *Worker) ID() string { return w.id }

// Run drives the handler until the queue is exhausted or ctx is cancelled,
// both of which return nil. The first decode or handler error stops the
// worker and is returned.
func (w *Worker) Run(ctx context.Context) error {
	log := w.q.log.With("worker_id", w.id)
	log.Info("worker started", "key", w.q.Key())

	var handled int64
	for msg, err := range w.q.Consume(ctx, w.opts...) {
		if err != nil {
			log.Error("worker stopped", "handled", handled, "error", err)
			return err
		}
		if err := w.handler(ctx, msg); err != nil {
			log.Error("worker stopped", "handled", handled, "error", err)
			return err
		}
		handled++
	}

	log.Info("worker finished", "handled", handled)
	return nil
}
