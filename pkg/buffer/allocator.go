package buffer

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// UntetheredRegion is a raw memory region obtained from an allocator's
// AllocatorControl, not yet enrolled with any reclamation handle (spec
// §4.5). EnsureWritable uses it to install a buffer's new
// backing region; the caller wraps Drop in a fresh shared-count handle at
// the moment it takes ownership.
type UntetheredRegion struct {
	Bytes []byte
	Drop  Drop
}

// AllocatorControl is the bridge a buffer uses to ask its originating
// allocator for more memory during grow, without knowing the
// allocator's concrete identity (spec §4.5).
type AllocatorControl interface {
	// AllocateUntethered returns size bytes of fresh backend memory of the
	// same kind origin was allocated from.
	AllocateUntethered(origin Buffer, size int) (UntetheredRegion, error)
}

// RecoverableMemory is the opaque token MemoryManager.UnwrapRecoverableMemory
// hands back so a pooled allocator can rebind the same physical memory to a
// fresh Drop for reuse, without needing to know how the buffer that
// previously owned it was represented.
type RecoverableMemory struct {
	kind  backendKind
	bytes []byte
}

// MemoryManager is the per-backend engine behind an Allocator (spec §4.5):
// it knows how to produce buffers over one of the three backend kinds, and
// how to unbind/rebind a region's reclamation for pooled reuse.
type MemoryManager interface {
	// AllocateConfined allocates a fresh, thread-confined buffer of size
	// bytes. If drop is nil, the manager's own pool-return Drop is used.
	AllocateConfined(ctrl AllocatorControl, size int, drop Drop) (Buffer, error)
	// AllocateShared is like AllocateConfined for memory meant to be
	// handed across sharing boundaries. This backend has no
	// confined-vs-shared distinction the way a foreign memory segment
	// does, so it delegates to AllocateConfined; the two entry points are
	// kept distinct for parity with the contract other backends (e.g. a
	// real off-heap segment manager) would need to differentiate.
	AllocateShared(ctrl AllocatorControl, size int, drop Drop) (Buffer, error)
	// UnwrapRecoverableMemory extracts b's backing memory as an opaque
	// token, for a pooled allocator to later rebind to a new Drop.
	UnwrapRecoverableMemory(b Buffer) (RecoverableMemory, error)
	// RecoverMemory rebinds previously-unwrapped memory to drop, producing
	// a fresh buffer with refcount 1.
	RecoverMemory(ctrl AllocatorControl, rec RecoverableMemory, drop Drop) (Buffer, error)
}

// poolMemoryManager is the one MemoryManager implementation in this
// package; the three backend kinds differ only in the tag they stamp on
// the regions they hand out; see region.go.
type poolMemoryManager struct {
	kind backendKind
	pool *tieredPool
}

func (m *poolMemoryManager) allocateRaw(size int) ([]byte, Drop) {
	buf := m.pool.get(size)
	pool := m.pool
	return buf, DropFunc(func(obj any) {
		pool.put(buf)
	})
}

func (m *poolMemoryManager) AllocateConfined(ctrl AllocatorControl, size int, drop Drop) (Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("AllocateConfined: %w", ErrArgument)
	}
	bytes, poolDrop := m.allocateRaw(size)
	d := drop
	if d == nil {
		d = poolDrop
	}
	return newLeaf(m.kind, bytes, wrapDrop(d), ctrl, NativeOrder), nil
}

func (m *poolMemoryManager) AllocateShared(ctrl AllocatorControl, size int, drop Drop) (Buffer, error) {
	return m.AllocateConfined(ctrl, size, drop)
}

func (m *poolMemoryManager) UnwrapRecoverableMemory(b Buffer) (RecoverableMemory, error) {
	lb, ok := b.(*leafBuffer)
	if !ok {
		return RecoverableMemory{}, fmt.Errorf("UnwrapRecoverableMemory: %w", ErrArgument)
	}
	return RecoverableMemory{kind: lb.reg.kind, bytes: lb.reg.bytes}, nil
}

func (m *poolMemoryManager) RecoverMemory(ctrl AllocatorControl, rec RecoverableMemory, drop Drop) (Buffer, error) {
	return newLeaf(rec.kind, rec.bytes, wrapDrop(drop), ctrl, NativeOrder), nil
}

// ConstSupplier produces a fresh, read-only, independently-owned handle
// over the same shared immutable bytes each time it is called (spec
// §4.5's "const supplier").
type ConstSupplier func() (Buffer, error)

// Allocator is the external-facing memory source (spec §6): allocate fresh
// buffers, hand out const-view suppliers over caller-provided bytes, and
// release any pooled resources on Close.
type Allocator interface {
	Allocate(size int) (Buffer, error)
	ConstBufferSupplier(data []byte) ConstSupplier
	Close() error
	Manager() MemoryManager
}

// poolAllocator backs HeapAllocator, DirectAllocator and SegmentAllocator;
// the three only differ in which backendKind they stamp their regions
// with. Grounded on the teacher's buf.alloc/buf.free tiered sync.Pool
// ladder (pkg/rtmp/buf/allocator.go) and on grpc-go/mem's
// NewBufferPool(poolSizes...) constructor shape.
type poolAllocator struct {
	manager    *poolMemoryManager
	leakDetect func(msg string)
}

func newPoolAllocator(kind backendKind, cfg allocatorConfig) *poolAllocator {
	return &poolAllocator{
		manager:    &poolMemoryManager{kind: kind, pool: newTieredPool(cfg.poolSizes)},
		leakDetect: cfg.leakDetect,
	}
}

func (a *poolAllocator) Allocate(size int) (Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("Allocate: %w", ErrArgument)
	}
	buf, err := a.manager.AllocateConfined(a, size, nil)
	if err != nil {
		return nil, err
	}
	if a.leakDetect != nil {
		lb := buf.(*leafBuffer)
		cb, cap := a.leakDetect, lb.Capacity()
		runtime.SetFinalizer(lb, func(l *leafBuffer) {
			if l.accessible {
				cb(fmt.Sprintf("buffer leaked: %d-byte buffer was never closed", cap))
			}
		})
	}
	return buf, nil
}

func (a *poolAllocator) AllocateUntethered(origin Buffer, size int) (UntetheredRegion, error) {
	if size < 0 {
		return UntetheredRegion{}, fmt.Errorf("AllocateUntethered: %w", ErrArgument)
	}
	bytes, drop := a.manager.allocateRaw(size)
	return UntetheredRegion{Bytes: bytes, Drop: drop}, nil
}

func (a *poolAllocator) ConstBufferSupplier(data []byte) ConstSupplier {
	kind := a.manager.kind
	return func() (Buffer, error) {
		lb := newLeaf(kind, data, wrapDrop(DropFunc(func(any) {})), a, NativeOrder)
		lb.readOnly = true
		lb.constView = true
		lb.w = len(data)
		return lb, nil
	}
}

// Close releases pooled resources. sync.Pool-backed tiers have nothing to
// release explicitly — the garbage collector reclaims idle pool entries —
// so this is a no-op kept for parity with the Allocator contract and with
// pooled allocators elsewhere in the retrieval pack that do hold closeable
// resources.
func (a *poolAllocator) Close() error { return nil }

func (a *poolAllocator) Manager() MemoryManager { return a.manager }

// HeapAllocator allocates on-heap []byte-backed buffers from a tiered pool.
type HeapAllocator struct{ *poolAllocator }

// NewHeapAllocator creates a HeapAllocator. Default pool tiers match the
// teacher's Size32..Size8M ladder; override with WithPoolSizes.
func NewHeapAllocator(opts ...AllocatorOption) *HeapAllocator {
	cfg := newAllocatorConfig(opts)
	return &HeapAllocator{poolAllocator: newPoolAllocator(backendHeap, cfg)}
}

// DirectAllocator allocates buffers tagged as off-heap/native memory (see
// region.go for how that's represented without cgo).
type DirectAllocator struct{ *poolAllocator }

// NewDirectAllocator creates a DirectAllocator.
func NewDirectAllocator(opts ...AllocatorOption) *DirectAllocator {
	cfg := newAllocatorConfig(opts)
	return &DirectAllocator{poolAllocator: newPoolAllocator(backendDirect, cfg)}
}

// SegmentAllocator allocates buffers tagged as memory-segment/arena memory.
type SegmentAllocator struct{ *poolAllocator }

// NewSegmentAllocator creates a SegmentAllocator.
func NewSegmentAllocator(opts ...AllocatorOption) *SegmentAllocator {
	cfg := newAllocatorConfig(opts)
	return &SegmentAllocator{poolAllocator: newPoolAllocator(backendSegment, cfg)}
}

// defaultHeap is the package-level default allocator most callers reach
// for, mirroring grpc-go/mem's DefaultBufferPool/SetDefaultBufferPool
// pattern for a swappable global.
var defaultHeap = func() *atomic.Pointer[HeapAllocator] {
	p := new(atomic.Pointer[HeapAllocator])
	p.Store(NewHeapAllocator())
	return p
}()

// DefaultAllocator returns the process-wide default HeapAllocator.
func DefaultAllocator() *HeapAllocator { return defaultHeap.Load() }

// SetDefaultAllocator replaces the process-wide default HeapAllocator.
func SetDefaultAllocator(a *HeapAllocator) { defaultHeap.Store(a) }
