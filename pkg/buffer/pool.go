package buffer

import (
	"sort"
	"sync"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// defaultPoolSizes mirrors the teacher's Size32..Size8M tier ladder
// (pkg/rtmp/buf/allocator.go), chosen for the same workload: small protocol
// headers up through multi-megabyte frame payloads.
var defaultPoolSizes = []int{
	1 << 5,  // 32B
	1 << 9,  // 512B
	1 << 12, // 4KB
	1 << 14, // 16KB
	1 << 16, // 64KB
	1 << 18, // 256KB
	1 << 20, // 1MB
	1 << 22, // 4MB
	1 << 23, // 8MB
}

// sizedPool is one fixed-capacity tier, grounded on the teacher's
// pool32/pool512/... sync.Pool ladder and on grpc-go/mem's sizedBufferPool.
type sizedPool struct {
	pool sync.Pool
	size int
}

func newSizedPool(size int) *sizedPool {
	return &sizedPool{
		pool: sync.Pool{
			New: func() any {
				b := dirtmake.Bytes(size, size)
				return &b
			},
		},
		size: size,
	}
}

func (p *sizedPool) get() []byte {
	return *p.pool.Get().(*[]byte)
}

func (p *sizedPool) put(buf []byte) {
	buf = buf[:cap(buf)]
	clear(buf)
	p.pool.Put(&buf)
}

// tieredPool dispatches to the smallest tier that satisfies a request,
// falling back to a direct dirtmake.Bytes allocation above the largest
// tier — the same shape as grpc-go/mem's tieredBufferPool, generalized to
// whatever tier sizes the allocator was configured with (see options.go).
type tieredPool struct {
	tiers []*sizedPool
}

func newTieredPool(sizes []int) *tieredPool {
	sorted := append([]int(nil), sizes...)
	sort.Ints(sorted)
	tp := &tieredPool{tiers: make([]*sizedPool, len(sorted))}
	for i, s := range sorted {
		tp.tiers[i] = newSizedPool(s)
	}
	return tp
}

func (tp *tieredPool) tierIndex(size int) int {
	return sort.Search(len(tp.tiers), func(i int) bool { return tp.tiers[i].size >= size })
}

// get returns a []byte of exactly length size. Buffers above the largest
// configured tier are allocated directly and never returned to a pool.
func (tp *tieredPool) get(size int) []byte {
	idx := tp.tierIndex(size)
	if idx == len(tp.tiers) {
		return dirtmake.Bytes(size, size)
	}
	return tp.tiers[idx].get()[:size]
}

// put returns buf to the tier matching its capacity, or discards it to the
// GC if its capacity doesn't correspond to a live tier (oversized, or the
// pool was reconfigured since it was handed out).
func (tp *tieredPool) put(buf []byte) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := tp.tierIndex(c)
	if idx == len(tp.tiers) || tp.tiers[idx].size != c {
		return
	}
	tp.tiers[idx].put(buf)
}
