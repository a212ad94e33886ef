package buffer

import "errors"

// Sentinel errors identifying the failure kinds a Buffer operation can
// produce. Callers should check these with errors.Is; the wrapping message
// added at the call site carries the operation-specific detail.
var (
	// ErrBounds means an offset or length fell outside the range the
	// operation requires.
	ErrBounds = errors.New("buffer: index out of bounds")

	// ErrClosed means the buffer, envelope, or shared-count handle is no
	// longer accessible.
	ErrClosed = errors.New("buffer: closed")

	// ErrReadOnly means a mutating operation was attempted on a read-only
	// buffer.
	ErrReadOnly = errors.New("buffer: read-only")

	// ErrOwnership means an operation that requires exclusive ownership
	// (refcount == 1) was attempted on a borrowed buffer.
	ErrOwnership = errors.New("buffer: not owned")

	// ErrSendState means send was attempted twice on the same origin, or
	// receive was attempted on an envelope that was already consumed or
	// discarded.
	ErrSendState = errors.New("buffer: Cannot send(): already sent, consumed, or discarded")

	// ErrArgument means the caller passed an invalid argument: a negative
	// size, negative growth, mismatched component byte order, or a
	// composite built from another composite.
	ErrArgument = errors.New("buffer: invalid argument")
)
