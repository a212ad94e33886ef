package buffer

import "testing"

func TestTieredPoolReturnsExactSize(t *testing.T) {
	tp := newTieredPool(defaultPoolSizes)
	for _, size := range []int{1, 32, 4096, 70000} {
		buf := tp.get(size)
		if len(buf) != size {
			t.Fatalf("get(%d): got length %d", size, len(buf))
		}
		tp.put(buf)
	}
}

func TestTieredPoolOversizedBypassesTiers(t *testing.T) {
	tp := newTieredPool(defaultPoolSizes)
	size := defaultPoolSizes[len(defaultPoolSizes)-1] + 1
	buf := tp.get(size)
	if len(buf) != size {
		t.Fatalf("expected exact oversized length %d, got %d", size, len(buf))
	}
	tp.put(buf) // must not panic even though it doesn't belong to any tier
}

func TestTieredPoolClearsReturnedBuffers(t *testing.T) {
	tp := newTieredPool([]int{32})
	buf := tp.get(32)
	for i := range buf {
		buf[i] = 0xFF
	}
	tp.put(buf)
	buf2 := tp.get(32)
	for i, v := range buf2 {
		if v != 0 {
			t.Fatalf("expected cleared buffer at index %d, got %#x", i, v)
		}
	}
}
