// Package buffer implements a reference-counted, ownership-checked byte
// buffer: the memory-management substrate described in spec.md. It replaces
// the kind of thin, GC-optional refcounted buffer the teacher package
// (pkg/rtmp/buf, in the retrieval pack) provides with a discipline that
// rejects use-after-free, double-free, and aliased mutation at the API
// boundary and at runtime, while keeping zero-copy composition, in-place
// growth, and scatter/gather I/O.
package buffer

import (
	"fmt"
)

// Buffer is the buffer lifecycle and ownership engine's public contract
// (spec §4.1). *leafBuffer implements it directly over one of three
// backends (heap array, direct, memory-segment); *compositeBuffer
// implements it by delegating across an ordered list of components (§4.2).
type Buffer interface {
	// Capacity returns the buffer's fixed size in bytes.
	Capacity() int
	// ReaderOffset returns the current read cursor r.
	ReaderOffset() int
	// SetReaderOffset moves r to off. Fails with ErrBounds unless
	// 0 <= off <= WriterOffset().
	SetReaderOffset(off int) error
	// WriterOffset returns the current write cursor w.
	WriterOffset() int
	// SetWriterOffset moves w to off. Fails with ErrBounds unless
	// ReaderOffset() <= off <= Capacity(), and with ErrReadOnly if the
	// buffer is read-only.
	SetWriterOffset(off int) error
	// ReadableBytes returns WriterOffset() - ReaderOffset().
	ReadableBytes() int
	// WritableBytes returns Capacity() - WriterOffset().
	WritableBytes() int
	// Order returns the byte order used by the multi-byte accessors.
	Order() ByteOrder
	// SetOrder changes the byte order used by the multi-byte accessors.
	// Does not move bytes or cursors.
	SetOrder(order ByteOrder) Buffer

	// ReadOnly reports whether mutation is currently rejected.
	ReadOnly() bool
	// MakeReadOnly marks the buffer read-only. Idempotent; cannot be
	// undone on this instance.
	MakeReadOnly() Buffer
	// IsAccessible reports whether operations other than accessibility
	// queries are currently permitted.
	IsAccessible() bool
	// IsOwned reports whether this handle is the sole owner of its
	// backing memory (refcount == 1), a prerequisite for grow, compact,
	// split, and send.
	IsOwned() bool

	// Fill overwrites every byte in [0, Capacity()) with v, without moving
	// w. Fails with ErrReadOnly if the buffer is read-only, ErrClosed if
	// inaccessible.
	Fill(v byte) error
	// CopyInto copies length bytes starting at srcPos in this buffer into
	// dest starting at destPos, without moving either buffer's cursors.
	// Works across differing backends.
	CopyInto(srcPos int, dest Buffer, destPos, length int) error
	// CopyIntoBytes is CopyInto for a plain []byte destination.
	CopyIntoBytes(srcPos int, dest []byte, destPos, length int) error
	// WriteBytes drains [r, w) of src into this buffer, advancing both
	// buffers' cursors by the number of bytes copied.
	WriteBytes(src Buffer) (int, error)

	// OpenCursor returns a forward byte cursor over
	// [fromOffset, fromOffset+length).
	OpenCursor(fromOffset, length int) (Cursor, error)
	// OpenReverseCursor returns a reverse byte cursor starting at
	// fromOffset and walking length bytes towards zero.
	OpenReverseCursor(fromOffset, length int) (Cursor, error)

	// EnsureWritable arranges for at least size further writable bytes,
	// growing or compacting the backing region as needed. Requires
	// IsOwned() and !ReadOnly().
	EnsureWritable(size, minimumGrowth int, allowCompaction bool) error
	// Compact moves [r, w) down to [0, w-r). Requires IsOwned() and
	// !ReadOnly(). A composite buffer instead closes and drops the whole
	// components lying entirely before r and shifts both offsets down by
	// their capacity; it moves no bytes, so its WritableBytes() is unchanged.
	Compact() error

	// Split returns a new buffer covering [0, splitOffset) and reshapes
	// this buffer to cover [splitOffset, Capacity()). Requires IsOwned().
	Split(splitOffset int) (Buffer, error)
	// SplitAtWriter is Split(WriterOffset()).
	SplitAtWriter() (Buffer, error)
	// Slice returns a new read-only buffer sharing memory over
	// [offset, offset+length) with its own cursors.
	Slice(offset, length int) (Buffer, error)

	// Acquire returns an additional owner sharing this buffer's state and
	// memory. The result is never IsOwned().
	Acquire() Buffer
	// Close decrements the reference count, invoking the backend's
	// reclamation when it reaches zero, and marks this handle permanently
	// inaccessible. Idempotent.
	Close()

	// Send produces a one-shot ownership-transfer envelope and marks this
	// buffer inaccessible. Requires IsOwned() and IsAccessible(); fails
	// with ErrSendState on a second call.
	Send() (*SendEnvelope, error)

	// CountComponents returns the number of leaf components (1 for a
	// leaf buffer).
	CountComponents() int
	// CountReadableComponents returns the number of components with
	// nonzero readable bytes.
	CountReadableComponents() int
	// CountWritableComponents returns the number of components with
	// nonzero writable bytes.
	CountWritableComponents() int
	// ForEachReadable invokes fn once per readable component, in order,
	// starting at startIndex. fn returns false to stop early. Returns the
	// number of components visited, negated if fn returned false.
	ForEachReadable(startIndex int, fn func(index int, c Component) bool) (int, error)
	// ForEachWritable is ForEachReadable over writable components.
	ForEachWritable(startIndex int, fn func(index int, c Component) bool) (int, error)

	// primitive accessors are declared in primitives.go to keep this file
	// focused on the shape of the contract.
	primitiveAccessors
}

// checkAccessible returns ErrClosed wrapped with op if the buffer is not
// accessible.
func checkAccessible(op string, accessible bool) error {
	if !accessible {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}
	return nil
}

// checkWritable returns ErrReadOnly wrapped with op if the buffer is
// read-only. checkAccessible should be called first.
func checkWritable(op string, readOnly bool) error {
	if readOnly {
		return fmt.Errorf("%s: %w", op, ErrReadOnly)
	}
	return nil
}

// checkOwned returns ErrOwnership wrapped with op if the buffer is
// borrowed.
func checkOwned(op string, owned bool) error {
	if !owned {
		return fmt.Errorf("%s: %w", op, ErrOwnership)
	}
	return nil
}

// checkBounds returns ErrBounds wrapped with op if [pos, pos+length) does
// not fit in [0, capacity).
func checkBounds(op string, pos, length, capacity int) error {
	if pos < 0 || length < 0 || pos+length > capacity {
		return fmt.Errorf("%s: [%d, %d) outside [0, %d): %w", op, pos, pos+length, capacity, ErrBounds)
	}
	return nil
}
