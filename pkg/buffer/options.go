package buffer

// allocatorConfig holds the tunables shared by HeapAllocator, DirectAllocator
// and SegmentAllocator. Grounded on the functional-options pattern in
// momentics-hioload-ws/server/options.go rather than a config struct with
// exported fields, so future tunables can be added without breaking
// callers.
type allocatorConfig struct {
	poolSizes  []int
	leakDetect func(msg string)
}

func newAllocatorConfig(opts []AllocatorOption) allocatorConfig {
	cfg := allocatorConfig{poolSizes: defaultPoolSizes}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// AllocatorOption configures a HeapAllocator, DirectAllocator or
// SegmentAllocator at construction.
type AllocatorOption func(*allocatorConfig)

// WithPoolSizes replaces the default tier ladder. Sizes need not be sorted
// or powers of two; the allocator sorts them once at construction.
func WithPoolSizes(sizes ...int) AllocatorOption {
	return func(cfg *allocatorConfig) {
		if len(sizes) == 0 {
			return
		}
		cfg.poolSizes = append([]int(nil), sizes...)
	}
}

// WithLeakDetection installs a runtime.SetFinalizer safety net on every
// buffer this allocator's Allocate returns (not on const-supplier buffers
// or on Slice/Acquire/Split results, which get no finalizer of their own):
// if a buffer becomes
// unreachable while still accessible — i.e. Close was never called — cb is
// invoked with a diagnostic message. Grounded on the original source's
// BufferRef GC safety net; opt-in, since finalizers cost a GC pass and the
// buffer contract's exactly-one-close discipline should make them
// unnecessary in correct code.
func WithLeakDetection(cb func(msg string)) AllocatorOption {
	return func(cfg *allocatorConfig) {
		cfg.leakDetect = cb
	}
}
