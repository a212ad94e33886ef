package buffer

import (
	"errors"
	"strings"
	"testing"
)

func TestLeafReadWriteRoundTrip(t *testing.T) {
	a := NewHeapAllocator()
	buf, err := a.Allocate(16)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	defer buf.Close()

	if err := buf.WriteUint32(0xCAFEBABE); err != nil {
		t.Fatalf("WriteUint32: %v", err)
	}
	if err := buf.WriteInt16(-7); err != nil {
		t.Fatalf("WriteInt16: %v", err)
	}
	if buf.WriterOffset() != 6 {
		t.Fatalf("expected writer offset 6, got %d", buf.WriterOffset())
	}

	v, err := buf.ReadUint32()
	if err != nil || v != 0xCAFEBABE {
		t.Fatalf("ReadUint32: got %#x, %v", v, err)
	}
	sv, err := buf.ReadInt16()
	if err != nil || sv != -7 {
		t.Fatalf("ReadInt16: got %d, %v", sv, err)
	}
	if buf.ReadableBytes() != 0 {
		t.Fatalf("expected 0 readable bytes, got %d", buf.ReadableBytes())
	}
}

func TestLeafInt24SignExtend(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(8)
	defer buf.Close()

	if err := buf.WriteInt24(-1); err != nil {
		t.Fatalf("WriteInt24: %v", err)
	}
	v, err := buf.ReadInt24()
	if err != nil || v != -1 {
		t.Fatalf("ReadInt24: got %d, %v", v, err)
	}
}

func TestLeafByteOrderIndependentOfCursorReads(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)
	defer buf.Close()
	buf.SetOrder(LittleEndian)

	if err := buf.WriteUint32(0x01020304); err != nil {
		t.Fatalf("WriteUint32: %v", err)
	}
	c, err := buf.OpenCursor(0, 4)
	if err != nil {
		t.Fatalf("OpenCursor: %v", err)
	}
	v, ok := c.ReadLong()
	if !ok {
		t.Fatalf("ReadLong: no bytes")
	}
	// Forward cursors always read big-endian regardless of buf.Order().
	want := int64(0x04030201) << 32
	if v != want {
		t.Fatalf("ReadLong = %#x, want %#x", v, want)
	}
}

func TestLeafReadOnlyRejectsMutation(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)
	defer buf.Close()
	buf.MakeReadOnly()

	if err := buf.WriteUint8(1); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("WriteUint8 on read-only buffer: got %v, want ErrReadOnly", err)
	}
	if err := buf.Fill(0xFF); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("Fill on read-only buffer: got %v, want ErrReadOnly", err)
	}
	if err := buf.SetWriterOffset(2); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("SetWriterOffset on read-only buffer: got %v, want ErrReadOnly", err)
	}
}

func TestLeafBoundsChecking(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)
	defer buf.Close()

	if _, err := buf.GetUint8(4); !errors.Is(err, ErrBounds) {
		t.Fatalf("GetUint8 out of bounds: got %v, want ErrBounds", err)
	}
	if err := buf.SetReaderOffset(1); !errors.Is(err, ErrBounds) {
		t.Fatalf("SetReaderOffset beyond writer offset: got %v, want ErrBounds", err)
	}
}

func TestLeafSliceIsIndependentlyReadable(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(8)
	defer buf.Close()
	for i := 0; i < 8; i++ {
		_ = buf.WriteUint8(byte(i))
	}

	s1, err := buf.Slice(0, 8)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	defer s1.Close()
	s2, err := buf.Slice(0, 8)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	defer s2.Close()

	v1, _ := s1.GetUint8(3)
	v2, _ := s2.GetUint8(3)
	if v1 != 3 || v2 != 3 {
		t.Fatalf("sibling slices diverged: %d, %d", v1, v2)
	}
	if !errors.Is(s1.WriteUint8(0), ErrReadOnly) {
		t.Fatalf("Slice should be read-only")
	}
}

func TestLeafSplitProducesTwoOwnedHalvesWithSingleReclaim(t *testing.T) {
	released := 0
	a := NewHeapAllocator()
	buf, err := a.Allocate(8)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	lb := buf.(*leafBuffer)
	lb.drop.delegate = DropFunc(func(any) { released++ })

	left, err := buf.Split(4)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if !left.IsOwned() || !buf.IsOwned() {
		t.Fatalf("both split halves should be independently owned")
	}
	left.Close()
	if released != 0 {
		t.Fatalf("reclamation fired after only one half closed")
	}
	buf.Close()
	if released != 1 {
		t.Fatalf("expected exactly one reclamation, got %d", released)
	}
}

func TestLeafSendThenReceiveTransfersOwnership(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)
	_ = buf.WriteUint32(42)

	env, err := buf.Send()
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !errors.Is(bufAccessError(buf), ErrClosed) {
		t.Fatalf("origin should be inaccessible immediately after Send")
	}
	// A stray Close on the sent-from origin must be a safe no-op.
	buf.Close()

	received, err := env.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if !received.IsOwned() {
		t.Fatalf("received buffer should have refcount 1 (owned)")
	}
	v, err := received.ReadUint32()
	if err != nil || v != 42 {
		t.Fatalf("ReadUint32 after receive: got %d, %v", v, err)
	}
	// A received buffer must be fully live: further ownership-gated
	// operations must succeed, not just reads.
	if err := received.EnsureWritable(4, 0, false); err != nil {
		t.Fatalf("EnsureWritable on received buffer: %v", err)
	}
	received.Close()

	if _, err := env.Receive(); !errors.Is(err, ErrSendState) {
		t.Fatalf("second Receive should fail with ErrSendState, got %v", err)
	}
}

func TestLeafSendThenReceiveThenCloseReclaimsRegion(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)
	lb := buf.(*leafBuffer)

	reclaimed := 0
	lb.drop.delegate = DropFunc(func(any) { reclaimed++ })

	env, err := buf.Send()
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	received, err := env.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	received.Close()

	if reclaimed != 1 {
		t.Fatalf("expected the backing region to be reclaimed exactly once, got %d", reclaimed)
	}
}

func TestIsSendOfReportsKindAfterConsumption(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)
	env, err := buf.Send()
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !IsSendOf(LeafSend, env) {
		t.Fatalf("expected IsSendOf(LeafSend, env) to be true before consumption")
	}
	if IsSendOf(CompositeSend, env) {
		t.Fatalf("expected IsSendOf(CompositeSend, env) to be false for a leaf send")
	}
	received, err := env.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	defer received.Close()
	if !IsSendOf(LeafSend, env) {
		t.Fatalf("IsSendOf should remain truthful after consumption")
	}
}

func bufAccessError(b Buffer) error {
	_, err := b.GetUint8(0)
	return err
}

func TestHeapAllocatorCloseReturnsRegionToPool(t *testing.T) {
	a := NewHeapAllocator()
	first, err := a.Allocate(64)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	first.Close() // must not panic: exercises the real pool-return Drop, not a mock.

	second, err := a.Allocate(64)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	defer second.Close()
	if second.Capacity() != 64 {
		t.Fatalf("expected pooled buffer of capacity 64, got %d", second.Capacity())
	}
}

func TestLeafSendTwiceFailsWithSendState(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)

	if _, err := buf.Send(); err != nil {
		t.Fatalf("first Send: %v", err)
	}
	_, err := buf.Send()
	if !errors.Is(err, ErrSendState) {
		t.Fatalf("second Send should fail with ErrSendState, got %v", err)
	}
	if !strings.Contains(err.Error(), "Cannot send()") {
		t.Fatalf("error message must contain %q, got %q", "Cannot send()", err.Error())
	}
}

func TestLeafSplitInheritsConstView(t *testing.T) {
	a := NewHeapAllocator()
	supplier := a.ConstBufferSupplier([]byte{1, 2, 3, 4})
	buf, err := supplier()
	if err != nil {
		t.Fatalf("supplier: %v", err)
	}
	defer buf.Close()

	left, err := buf.Split(2)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	defer left.Close()

	if !left.(*leafBuffer).constView {
		t.Fatalf("Split's left half must inherit the const-view flag")
	}
	if !buf.(*leafBuffer).constView {
		t.Fatalf("Split's reshaped right half (the receiver) must keep the const-view flag")
	}
}

func TestLeafEnsureWritableGrowsInPlace(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)
	defer buf.Close()
	_ = buf.WriteUint32(0x11223344)

	if err := buf.EnsureWritable(8, 0, false); err != nil {
		t.Fatalf("EnsureWritable: %v", err)
	}
	if buf.Capacity() < 12 {
		t.Fatalf("expected capacity to grow to at least 12, got %d", buf.Capacity())
	}
	v, err := buf.ReadUint32()
	if err != nil || v != 0x11223344 {
		t.Fatalf("existing content lost after grow: got %#x, %v", v, err)
	}
}

func TestLeafCompactShiftsUnreadBytesDown(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(8)
	defer buf.Close()
	for i := 0; i < 8; i++ {
		_ = buf.WriteUint8(byte(i))
	}
	_, _ = buf.ReadUint8()
	_, _ = buf.ReadUint8()

	if err := buf.Compact(); err != nil {
		t.Fatalf("Compact: %v", err)
	}
	if buf.ReaderOffset() != 0 {
		t.Fatalf("expected reader offset 0 after compact, got %d", buf.ReaderOffset())
	}
	v, _ := buf.GetUint8(0)
	if v != 2 {
		t.Fatalf("expected byte 2 at offset 0 after compact, got %d", v)
	}
}
