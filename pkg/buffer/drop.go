package buffer

import (
	"fmt"
	"sync/atomic"
)

// Drop is the reclamation handle a Buffer's backend attaches to its memory
// region. It is invoked exactly once, when the last owner releases the
// region. The allocators' pool-return Drop is a DropFunc built in
// poolMemoryManager.allocateRaw (allocator.go); nothing else in
// this package calls a Drop's Drop method more than once for the same
// region.
type Drop interface {
	// Drop releases the resources backing obj. Called at most once.
	Drop(obj any)
}

// DropFunc adapts a plain function to Drop, matching the teacher's
// preference for passing a bare release callback (buf.NewWithRelease)
// instead of requiring an interface implementation for the common case.
type DropFunc func(obj any)

// Drop implements Drop.
func (f DropFunc) Drop(obj any) { f(obj) }

// sharedDrop is the atomic positive refcount wrapping a single underlying
// Drop, i.e. §4.3's Shared-Count handle. It is grounded directly on
// io.netty.buffer.api.internal.ArcDrop: acquire CAS-increments, drop
// CAS-decrements and invokes the delegate only on the transition to zero,
// and count == 0 is a permanent terminal state that further acquires
// reject.
//
// sharedDrop itself implements Drop, so one sharedDrop can delegate into
// another. split() uses that to compose two independently-owned (count==1)
// outer handles over one shared inner counter, so the backend's real
// reclamation still fires exactly once no matter which half closes last.
type sharedDrop struct {
	delegate Drop
	count    atomic.Int32
}

// wrapDrop wraps d in a fresh shared-count handle with count 1. Wrapping is
// idempotent: wrapping an existing *sharedDrop returns it unchanged,
// matching ArcDrop.wrap.
func wrapDrop(d Drop) *sharedDrop {
	if sd, ok := d.(*sharedDrop); ok {
		return sd
	}
	sd := &sharedDrop{delegate: d}
	sd.count.Store(1)
	return sd
}

// unwrapAllDrops walks a chain of shared-count wrappers down to the
// innermost non-shared Drop, matching ArcDrop.unwrapAllArcs.
// MemoryManager.UnwrapRecoverableMemory does not call it: it takes the
// region's bytes without consulting the buffer's drop.
func unwrapAllDrops(d Drop) Drop {
	for {
		sd, ok := d.(*sharedDrop)
		if !ok {
			return d
		}
		d = sd.delegate
	}
}

// Drop implements Drop by releasing this handle's own reference, letting a
// sharedDrop serve as another sharedDrop's delegate.
func (sd *sharedDrop) Drop(obj any) {
	sd.release(obj)
}

// acquire increments the count and returns a handle sharing the same
// delegate. It fails with ErrClosed if the count has already reached zero.
func (sd *sharedDrop) acquire() error {
	for {
		c := sd.count.Load()
		if c == 0 {
			return fmt.Errorf("acquire: %w", ErrClosed)
		}
		if sd.count.CompareAndSwap(c, c+1) {
			return nil
		}
	}
}

// release decrements the count, invoking the delegate's Drop exactly once
// when the count transitions to zero. obj is passed through unchanged.
func (sd *sharedDrop) release(obj any) {
	for {
		c := sd.count.Load()
		if c == 0 {
			// close() is idempotent at the buffer layer; mirror that here.
			return
		}
		n := c - 1
		if sd.count.CompareAndSwap(c, n) {
			if n == 0 {
				sd.delegate.Drop(obj)
			}
			return
		}
	}
}

// isOwned reports whether this handle is the sole owner (count <= 1),
// matching ArcDrop.isOwned.
func (sd *sharedDrop) isOwned() bool {
	return sd.count.Load() <= 1
}

// borrows reports how many additional owners beyond this one exist,
// matching ArcDrop.countBorrows.
func (sd *sharedDrop) borrows() int {
	return int(sd.count.Load()) - 1
}

// splitReparent produces two fresh, independently-owned (count==1) handles
// over the same eventual reclamation as sd. sd must already be owned (the
// caller enforces this via checkOwned before calling split); it is consumed
// by this call and must not be used again by the original owner.
//
// sd is promoted in place from a count-1 leaf into a count-2 inner node
// shared by the two new outer handles, so the underlying backend release
// fires exactly once: whichever half closes second drives sd's own count to
// zero and triggers it.
func splitReparent(sd *sharedDrop) (left, right *sharedDrop) {
	sd.count.Store(2)
	left = &sharedDrop{delegate: sd}
	left.count.Store(1)
	right = &sharedDrop{delegate: sd}
	right.count.Store(1)
	return left, right
}
