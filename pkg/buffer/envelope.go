package buffer

import (
	"fmt"
	"sync"
)

// sendState is SendEnvelope's one-shot lifecycle (spec §7).
type sendState uint8

const (
	sendPending sendState = iota
	sendConsumed
	sendDiscarded
)

// SendKind is the logical kind an envelope was constructed for, fixed at
// Send() time so IsSendOf remains truthful even once the envelope has been
// consumed or discarded and its materialize closure discarded with it.
type SendKind uint8

const (
	LeafSend SendKind = iota
	CompositeSend
)

// SendEnvelope is the result of Buffer.Send(): a full-fence, single-consumer
// handoff token. Exactly one of Receive or Discard may act on it; every
// call after the first fails or no-ops. Grounded on the original source's
// BufferRef constructor-from-Send pattern, generalized into a standalone
// type since Go has no abstract base class to hang it on.
type SendEnvelope struct {
	mu          sync.Mutex
	kind        SendKind
	state       sendState
	materialize func() Buffer
}

func newSendEnvelope(kind SendKind, materialize func() Buffer) *SendEnvelope {
	return &SendEnvelope{kind: kind, materialize: materialize}
}

// Kind reports the logical kind this envelope was constructed for.
func (e *SendEnvelope) Kind() SendKind { return e.kind }

// IsSendOf reports whether env was constructed by sending a buffer of kind.
// Truthful before and after consumption, since Kind is fixed at construction.
func IsSendOf(kind SendKind, env *SendEnvelope) bool {
	return env != nil && env.kind == kind
}

// Receive consumes the envelope and returns a freshly-owned buffer over the
// sent memory. A second call, or a call after Discard, fails with
// ErrSendState (whose message contains the literal phrase "Cannot send()"
// per spec §7, since receive-after-consume and send-after-consume share the
// same underlying violation: the envelope has already been resolved).
func (e *SendEnvelope) Receive() (Buffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != sendPending {
		return nil, fmt.Errorf("Receive: %w", ErrSendState)
	}
	e.state = sendConsumed
	return e.materialize(), nil
}

// Discard consumes the envelope without producing a receiver, immediately
// closing the sent buffer instead. Idempotent: a Discard after Receive or
// after another Discard is a no-op.
func (e *SendEnvelope) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != sendPending {
		return
	}
	e.state = sendDiscarded
	e.materialize().Close()
}

// Pending reports whether neither Receive nor Discard has run yet.
func (e *SendEnvelope) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == sendPending
}
