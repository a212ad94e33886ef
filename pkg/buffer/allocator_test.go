package buffer

import (
	"errors"
	"testing"
)

func TestHeapAllocatorAllocateSizesExactly(t *testing.T) {
	a := NewHeapAllocator()
	for _, size := range []int{1, 32, 4096, 70000} {
		buf, err := a.Allocate(size)
		if err != nil {
			t.Fatalf("Allocate(%d): %v", size, err)
		}
		if buf.Capacity() != size {
			t.Fatalf("Allocate(%d): capacity %d", size, buf.Capacity())
		}
		buf.Close()
	}
}

func TestAllocateNegativeSizeRejected(t *testing.T) {
	a := NewHeapAllocator()
	if _, err := a.Allocate(-1); !errors.Is(err, ErrArgument) {
		t.Fatalf("Allocate(-1): got %v, want ErrArgument", err)
	}
}

func TestConstBufferSupplierHandsOutIndependentReadOnlyHandles(t *testing.T) {
	a := NewHeapAllocator()
	data := []byte("hello")
	supplier := a.ConstBufferSupplier(data)

	b1, err := supplier()
	if err != nil {
		t.Fatalf("supplier: %v", err)
	}
	b2, err := supplier()
	if err != nil {
		t.Fatalf("supplier: %v", err)
	}
	defer b1.Close()
	defer b2.Close()

	if !b1.ReadOnly() || !b2.ReadOnly() {
		t.Fatalf("const buffers must be read-only")
	}
	b1.Close()
	v, err := b2.GetUint8(0)
	if err != nil || v != 'h' {
		t.Fatalf("closing one const handle should not affect a sibling: got %v, %v", v, err)
	}
}

func TestUnwrapAndRecoverMemoryRoundTrips(t *testing.T) {
	a := NewHeapAllocator()
	buf, err := a.Allocate(4)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	_ = buf.WriteUint32(99)

	mgr := a.Manager()
	rec, err := mgr.UnwrapRecoverableMemory(buf)
	if err != nil {
		t.Fatalf("UnwrapRecoverableMemory: %v", err)
	}
	recovered, err := mgr.RecoverMemory(a, rec, DropFunc(func(any) {}))
	if err != nil {
		t.Fatalf("RecoverMemory: %v", err)
	}
	defer recovered.Close()
	v, err := recovered.GetUint32(0)
	if err != nil || v != 99 {
		t.Fatalf("recovered memory lost its content: got %d, %v", v, err)
	}
}

func TestDirectAndSegmentAllocatorsTagRegionsDistinctly(t *testing.T) {
	direct := NewDirectAllocator()
	segment := NewSegmentAllocator()

	db, _ := direct.Allocate(8)
	sb, _ := segment.Allocate(8)
	defer db.Close()
	defer sb.Close()

	dComp := readOneComponent(t, db)
	sComp := readOneComponent(t, sb)

	if dComp.HasReadableArray() || sComp.HasReadableArray() {
		t.Fatalf("direct/segment components should not expose a Go array view")
	}
	if !dComp.HasNativeAddress() || !sComp.HasNativeAddress() {
		t.Fatalf("direct/segment components should expose a native address")
	}
}

func readOneComponent(t *testing.T, b Buffer) Component {
	t.Helper()
	_ = b.WriteUint8(1)
	var got Component
	_, err := b.ForEachReadable(0, func(_ int, c Component) bool {
		got = c
		return true
	})
	if err != nil {
		t.Fatalf("ForEachReadable: %v", err)
	}
	return got
}
