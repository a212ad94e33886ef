package buffer

import "unsafe"

// backendKind identifies which of the three interchangeable backing memory
// kinds a leaf buffer is built on (spec §1, §4.1's "Backend-specific
// invariants"). Composite buffers have no backendKind of their own; they
// delegate to whatever their components are.
type backendKind uint8

const (
	// backendHeap is a Go-heap []byte, the default for pooled and GC-owned
	// buffers. Exposes a non-zero readable/writable array.
	backendHeap backendKind = iota
	// backendDirect models off-heap/native memory. Go has no portable way
	// to allocate truly unmanaged memory without cgo, so this backend is a
	// Go-heap []byte addressed only through its native pointer — the same
	// compromise cloudwego/netpoll and momentics/hioload-ws's Go APIs make
	// for "zero-copy" native-looking buffers. Exposes a non-zero
	// nativeAddress and no readable/writable array.
	backendDirect
	// backendSegment models a memory-segment/arena-carved region, e.g. a
	// slab handed out by a couchbase-go-slab-style arena. Same
	// representation as backendDirect; kept distinct so callers can tell
	// the two apart and so a MemoryManager can refuse to mix them.
	backendSegment
)

// region is the raw memory a leaf buffer reads and writes. It carries no
// ownership state of its own — sharedDrop and the leaf's cursors provide
// that — so a region can be handed off freely between leaf instances during
// grow/compact/split.
type region struct {
	kind  backendKind
	bytes []byte
}

func newRegion(kind backendKind, bytes []byte) region {
	return region{kind: kind, bytes: bytes}
}

// nativeAddress returns the address of the region's first byte, or 0 for an
// empty region. Only meaningful for backendDirect and backendSegment; the
// heap backend exposes readableArray/writableArray instead (spec §4.1).
func (r region) nativeAddress() uintptr {
	if len(r.bytes) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&r.bytes[0]))
}

// hasArray reports whether this region exposes readableArray/writableArray
// component views rather than a native address.
func (r region) hasArray() bool {
	return r.kind == backendHeap
}
