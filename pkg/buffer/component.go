package buffer

import (
	"fmt"
	"unsafe"
)

// Component is the scatter/gather view ForEachReadable/ForEachWritable
// hands to the caller's processor function for one leaf's worth of a
// buffer (spec §4.1, §6). Exactly one of the array view or the native
// address view is meaningful, depending on the leaf's backendKind.
type Component struct {
	buf      *leafBuffer
	kind     backendKind
	offset   int
	length   int
	writable bool
}

// Length is the number of bytes this component covers.
func (c Component) Length() int { return c.length }

// HasReadableArray reports whether ReadableArray is usable, true only for
// heap-backed, readable components.
func (c Component) HasReadableArray() bool {
	return !c.writable && c.kind == backendHeap
}

// ReadableArray returns the underlying array slice this component views.
// Mutating it mutates the buffer.
func (c Component) ReadableArray() ([]byte, error) {
	if !c.HasReadableArray() {
		return nil, fmt.Errorf("ReadableArray: %w", ErrArgument)
	}
	return c.buf.reg.bytes[c.offset : c.offset+c.length], nil
}

// HasWritableArray reports whether WritableArray is usable, true only for
// heap-backed, writable components.
func (c Component) HasWritableArray() bool {
	return c.writable && c.kind == backendHeap
}

// WritableArray returns the underlying array slice this component views.
func (c Component) WritableArray() ([]byte, error) {
	if !c.HasWritableArray() {
		return nil, fmt.Errorf("WritableArray: %w", ErrArgument)
	}
	return c.buf.reg.bytes[c.offset : c.offset+c.length], nil
}

// HasNativeAddress reports whether NativeAddress is usable: true for
// direct and memory-segment components, mirroring how a real off-heap
// buffer exposes a pointer instead of a Go array.
func (c Component) HasNativeAddress() bool {
	return c.kind != backendHeap
}

// NativeAddress returns the address of this component's first byte. Only
// meaningful when HasNativeAddress is true.
func (c Component) NativeAddress() uintptr {
	if !c.HasNativeAddress() || c.length == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&c.buf.reg.bytes[c.offset]))
}
