package buffer

import (
	"errors"
	"testing"
)

func TestSendEnvelopeDiscardClosesUnclaimedBuffer(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)
	reclaimed := 0
	buf.(*leafBuffer).drop.delegate = DropFunc(func(any) { reclaimed++ })

	env, err := buf.Send()
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	env.Discard()
	if env.Pending() {
		t.Fatalf("envelope should not be pending after Discard")
	}
	if _, err := env.Receive(); !errors.Is(err, ErrSendState) {
		t.Fatalf("Receive after Discard should fail with ErrSendState, got %v", err)
	}
	if reclaimed != 1 {
		t.Fatalf("Discard should close the unclaimed buffer and reclaim its region once, got %d", reclaimed)
	}
}

func TestSendEnvelopeSecondDiscardIsNoop(t *testing.T) {
	a := NewHeapAllocator()
	buf, _ := a.Allocate(4)
	env, _ := buf.Send()
	env.Discard()
	env.Discard() // must not panic or double-release
}
