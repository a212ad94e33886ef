package buffer

import "testing"

func TestHolderReplaceClosesPreviousContents(t *testing.T) {
	a := NewHeapAllocator()
	first, _ := a.Allocate(4)
	second, _ := a.Allocate(4)

	h := NewHolder(first)
	old := h.Replace(second)
	if old != first {
		t.Fatalf("Replace should return the previously held buffer")
	}
	if first.IsAccessible() {
		t.Fatalf("Replace should close the buffer it replaces")
	}
	if h.Contents() != second {
		t.Fatalf("Contents should return the newly installed buffer")
	}
}

func TestHolderReceiveInstallsSentBuffer(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)
	_ = buf.WriteUint32(7)
	env, err := buf.Send()
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	h := &Holder{}
	if err := h.Receive(env); err != nil {
		t.Fatalf("Receive: %v", err)
	}
	v, err := h.Contents().ReadUint32()
	if err != nil || v != 7 {
		t.Fatalf("ReadUint32: got %d, %v", v, err)
	}
	h.Close()
	if h.Contents() != nil {
		t.Fatalf("Close should clear the holder's contents")
	}
}
