// Package buffer implements a reference-counted, ownership-checked byte
// buffer: the memory-management substrate underneath a network I/O
// framework's channel/pipeline layer, not the pipeline itself.
//
// A Buffer is either a leafBuffer over one of three backend kinds (heap,
// direct, memory-segment) or a compositeBuffer concatenating several
// leaves without copying. Ownership follows a single rule: a buffer is
// owned exactly when its shared refcount is 1, and grow, compact, split
// and send all require ownership. Acquire and Slice always hand back a
// non-owned, shared reference.
package buffer
