package buffer

import "testing"

func TestSharedDropWrapIsIdempotent(t *testing.T) {
	sd := wrapDrop(DropFunc(func(any) {}))
	if wrapDrop(sd) != sd {
		t.Fatalf("wrapping an existing sharedDrop should return it unchanged")
	}
}

func TestSharedDropReleasesExactlyOnce(t *testing.T) {
	released := 0
	sd := wrapDrop(DropFunc(func(any) { released++ }))
	if err := sd.acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if sd.isOwned() {
		t.Fatalf("expected shared handle to not be owned after acquire")
	}
	sd.release(nil)
	if released != 0 {
		t.Fatalf("release fired before count reached zero")
	}
	sd.release(nil)
	if released != 1 {
		t.Fatalf("expected exactly one release, got %d", released)
	}
	sd.release(nil)
	if released != 1 {
		t.Fatalf("release after count already zero should be a no-op, got %d calls", released)
	}
}

func TestUnwrapAllDropsWalksChain(t *testing.T) {
	inner := DropFunc(func(any) {})
	sd1 := wrapDrop(inner)
	sd2 := &sharedDrop{delegate: sd1}
	sd2.count.Store(1)

	if unwrapAllDrops(sd2) == nil {
		t.Fatalf("unwrap should not return nil")
	}
	if _, ok := unwrapAllDrops(sd2).(*sharedDrop); ok {
		t.Fatalf("unwrap should walk past every sharedDrop to the innermost Drop")
	}
}

func TestSplitReparentSharesUnderlyingReclamation(t *testing.T) {
	released := 0
	sd := wrapDrop(DropFunc(func(any) { released++ }))

	left, right := splitReparent(sd)
	if !left.isOwned() || !right.isOwned() {
		t.Fatalf("both split halves must be independently owned")
	}
	left.release(nil)
	if released != 0 {
		t.Fatalf("reclamation should not fire until both halves release")
	}
	right.release(nil)
	if released != 1 {
		t.Fatalf("expected exactly one reclamation across both halves, got %d", released)
	}
}
