package buffer

import "testing"

func TestReverseCursorWalksBackwardsLittleEndian(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)
	defer buf.Close()
	buf.SetOrder(BigEndian)
	_ = buf.WriteUint32(0x01020304)

	c, err := buf.OpenReverseCursor(3, 4)
	if err != nil {
		t.Fatalf("OpenReverseCursor: %v", err)
	}
	var bytes []byte
	for {
		v, ok := c.ReadByte()
		if !ok {
			break
		}
		bytes = append(bytes, v)
	}
	want := []byte{0x04, 0x03, 0x02, 0x01}
	if len(bytes) != len(want) {
		t.Fatalf("got %v, want %v", bytes, want)
	}
	for i := range want {
		if bytes[i] != want[i] {
			t.Fatalf("got %v, want %v", bytes, want)
		}
	}
}

func TestForwardCursorReadLongPadsPartialTail(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(3)
	defer buf.Close()
	_ = buf.WriteUint8(0xAA)
	_ = buf.WriteUint8(0xBB)
	_ = buf.WriteUint8(0xCC)

	c, err := buf.OpenCursor(0, 3)
	if err != nil {
		t.Fatalf("OpenCursor: %v", err)
	}
	v, ok := c.ReadLong()
	if !ok {
		t.Fatalf("expected a value from a nonempty cursor")
	}
	want := int64(0xAABBCC)
	want <<= 8 * 5
	if v != want {
		t.Fatalf("ReadLong = %#x, want %#x", v, want)
	}
	if c.BytesLeft() != 0 {
		t.Fatalf("expected cursor exhausted, %d bytes left", c.BytesLeft())
	}
	if _, ok := c.ReadByte(); ok {
		t.Fatalf("exhausted cursor should not yield another byte")
	}
}

func TestCursorGetDoesNotAdvance(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(2)
	defer buf.Close()
	_ = buf.WriteUint8(1)
	_ = buf.WriteUint8(2)

	c, _ := buf.OpenCursor(0, 2)
	v1, _ := c.GetByte()
	v2, _ := c.GetByte()
	if v1 != v2 {
		t.Fatalf("GetByte should not advance: got %d then %d", v1, v2)
	}
	if c.CurrentOffset() != 0 {
		t.Fatalf("expected offset unchanged at 0, got %d", c.CurrentOffset())
	}
}
