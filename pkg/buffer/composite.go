package buffer

import (
	"fmt"
	"sort"
)

// compositeBuffer implements Buffer by delegating across an ordered list of
// leaf components (spec §4.2). It tracks its own reader/writer offsets
// independently of each component's — once a buffer is absorbed into a
// composite its own cursors are no longer consulted, only its absolute
// Get/Set accessors are, which keeps the translation math in locate/
// rebuildPrefix simple and avoids two sources of truth drifting apart.
type compositeBuffer struct {
	comps      []Buffer
	prefix     []int // prefix[i] = sum of capacities of comps[0:i]
	order      ByteOrder
	readOnly   bool
	accessible bool
	sent       bool
	r, w       int
	ctrl       AllocatorControl
}

// newComposite enforces spec §4.2's construction invariants: uniform byte
// order, no nested composites, no inaccessible components, and — so the
// composite's r/w can be simple prefix sums rather than a general interval
// set — only the first component may have a nonzero reader offset and only
// the last may be short of full capacity on its writer offset.
func newComposite(ctrl AllocatorControl, comps []Buffer) (*compositeBuffer, error) {
	const op = "NewCompositeBuffer"
	cb := &compositeBuffer{ctrl: ctrl, order: NativeOrder, accessible: true}
	if len(comps) == 0 {
		cb.rebuildPrefix()
		return cb, nil
	}
	order := comps[0].Order()
	for i, c := range comps {
		if _, ok := c.(*compositeBuffer); ok {
			return nil, fmt.Errorf("%s: component %d is itself composite: %w", op, i, ErrArgument)
		}
		if !c.IsAccessible() {
			return nil, fmt.Errorf("%s: component %d is not accessible: %w", op, i, ErrClosed)
		}
		if c.Order() != order {
			return nil, fmt.Errorf("%s: component %d has a different byte order: %w", op, i, ErrArgument)
		}
		if i < len(comps)-1 && c.WriterOffset() != c.Capacity() {
			return nil, fmt.Errorf("%s: component %d is not fully written and is not the last component: %w", op, i, ErrArgument)
		}
		if i > 0 && c.ReaderOffset() != 0 {
			return nil, fmt.Errorf("%s: component %d has a nonzero reader offset and is not the first component: %w", op, i, ErrArgument)
		}
	}
	cb.order = order
	cb.comps = append([]Buffer(nil), comps...)
	cb.rebuildPrefix()
	cb.r = comps[0].ReaderOffset()
	w := 0
	for i, c := range comps {
		if i == len(comps)-1 {
			w += c.WriterOffset()
		} else {
			w += c.Capacity()
		}
	}
	cb.w = w
	return cb, nil
}

// NewCompositeBuffer composes independently-owned buffers into one logical
// Buffer without copying (spec §4.2). Ownership of each component is
// consumed by the composite; callers that want to keep a handle of their
// own should Acquire() first.
func NewCompositeBuffer(ctrl AllocatorControl, comps ...Buffer) (Buffer, error) {
	return newComposite(ctrl, comps)
}

func (cb *compositeBuffer) rebuildPrefix() {
	cb.prefix = make([]int, len(cb.comps)+1)
	for i, c := range cb.comps {
		cb.prefix[i+1] = cb.prefix[i] + c.Capacity()
	}
}

// locate returns which component holds absolute offset off and the local
// offset within it. off must be in [0, Capacity()).
func (cb *compositeBuffer) locate(off int) (idx, local int) {
	idx = sort.Search(len(cb.comps), func(i int) bool { return cb.prefix[i+1] > off })
	return idx, off - cb.prefix[idx]
}

func (cb *compositeBuffer) Capacity() int { return cb.prefix[len(cb.prefix)-1] }

func (cb *compositeBuffer) ReaderOffset() int { return cb.r }

func (cb *compositeBuffer) SetReaderOffset(off int) error {
	const op = "SetReaderOffset"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return err
	}
	if off < 0 || off > cb.w {
		return fmt.Errorf("%s: %d outside [0, %d): %w", op, off, cb.w, ErrBounds)
	}
	cb.r = off
	return nil
}

func (cb *compositeBuffer) WriterOffset() int { return cb.w }

func (cb *compositeBuffer) SetWriterOffset(off int) error {
	const op = "SetWriterOffset"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return err
	}
	if err := checkWritable(op, cb.readOnly); err != nil {
		return err
	}
	if off < cb.r || off > cb.Capacity() {
		return fmt.Errorf("%s: %d outside [%d, %d): %w", op, off, cb.r, cb.Capacity(), ErrBounds)
	}
	cb.w = off
	return nil
}

func (cb *compositeBuffer) ReadableBytes() int { return cb.w - cb.r }

func (cb *compositeBuffer) WritableBytes() int { return cb.Capacity() - cb.w }

func (cb *compositeBuffer) Order() ByteOrder { return cb.order }

func (cb *compositeBuffer) SetOrder(order ByteOrder) Buffer {
	cb.order = order
	for _, c := range cb.comps {
		c.SetOrder(order)
	}
	return cb
}

func (cb *compositeBuffer) ReadOnly() bool { return cb.readOnly }

func (cb *compositeBuffer) MakeReadOnly() Buffer {
	cb.readOnly = true
	for _, c := range cb.comps {
		c.MakeReadOnly()
	}
	return cb
}

func (cb *compositeBuffer) IsAccessible() bool { return cb.accessible }

func (cb *compositeBuffer) IsOwned() bool {
	if !cb.accessible {
		return false
	}
	for _, c := range cb.comps {
		if !c.IsOwned() {
			return false
		}
	}
	return true
}

func (cb *compositeBuffer) Fill(v byte) error {
	const op = "Fill"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return err
	}
	if err := checkWritable(op, cb.readOnly); err != nil {
		return err
	}
	for _, c := range cb.comps {
		if err := c.Fill(v); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

func (cb *compositeBuffer) CopyIntoBytes(srcPos int, dest []byte, destPos, length int) error {
	const op = "CopyIntoBytes"
	data, err := cb.getBytes(op, srcPos, length)
	if err != nil {
		return err
	}
	if err := checkBounds(op, destPos, length, len(dest)); err != nil {
		return err
	}
	copy(dest[destPos:destPos+length], data)
	return nil
}

func (cb *compositeBuffer) CopyInto(srcPos int, dest Buffer, destPos, length int) error {
	const op = "CopyInto"
	data, err := cb.getBytes(op, srcPos, length)
	if err != nil {
		return err
	}
	if err := checkBounds(op, destPos, length, dest.Capacity()); err != nil {
		return err
	}
	for i, v := range data {
		if err := dest.SetUint8(destPos+i, v); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

func (cb *compositeBuffer) WriteBytes(src Buffer) (int, error) {
	const op = "WriteBytes"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return 0, err
	}
	if err := checkWritable(op, cb.readOnly); err != nil {
		return 0, err
	}
	n := src.ReadableBytes()
	if n > cb.WritableBytes() {
		return 0, fmt.Errorf("%s: %d exceeds %d writable bytes: %w", op, n, cb.WritableBytes(), ErrBounds)
	}
	srcPos := src.ReaderOffset()
	for i := 0; i < n; i++ {
		v, err := src.GetUint8(srcPos + i)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if err := cb.SetUint8(cb.w+i, v); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}
	cb.w += n
	_ = src.SetReaderOffset(srcPos + n)
	return n, nil
}

func (cb *compositeBuffer) OpenCursor(fromOffset, length int) (Cursor, error) {
	const op = "OpenCursor"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return nil, err
	}
	if err := checkBounds(op, fromOffset, length, cb.Capacity()); err != nil {
		return nil, err
	}
	return newForwardCursor(cb, fromOffset, length), nil
}

func (cb *compositeBuffer) OpenReverseCursor(fromOffset, length int) (Cursor, error) {
	const op = "OpenReverseCursor"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return nil, err
	}
	if fromOffset-length+1 < 0 || fromOffset >= cb.Capacity() {
		return nil, fmt.Errorf("%s: [%d, %d] outside [0, %d): %w", op, fromOffset-length+1, fromOffset, cb.Capacity(), ErrBounds)
	}
	return newReverseCursor(cb, fromOffset, length), nil
}

// EnsureWritable grows a composite by appending a freshly allocated leaf
// component rather than reallocating the whole backing store (spec §4.2's
// "growth-via-append-new-component"), since a composite's whole point is
// avoiding the copy a single contiguous reallocation would need.
func (cb *compositeBuffer) EnsureWritable(size, minimumGrowth int, allowCompaction bool) error {
	const op = "EnsureWritable"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return err
	}
	if size <= cb.WritableBytes() {
		return nil
	}
	if allowCompaction {
		if err := cb.Compact(); err == nil && size <= cb.WritableBytes() {
			return nil
		}
	}
	if err := checkOwned(op, cb.IsOwned()); err != nil {
		return err
	}
	if err := checkWritable(op, cb.readOnly); err != nil {
		return err
	}
	growBy := size - cb.WritableBytes()
	if growBy < minimumGrowth {
		growBy = minimumGrowth
	}
	if cb.ctrl == nil {
		return fmt.Errorf("%s: no allocator control to grow from: %w", op, ErrArgument)
	}
	fresh, err := cb.ctrl.AllocateUntethered(cb, growBy)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	cb.comps = append(cb.comps, newLeaf(backendHeap, fresh.Bytes, wrapDrop(fresh.Drop), cb.ctrl, cb.order))
	cb.rebuildPrefix()
	return nil
}

// Compact reclaims whole components that fall entirely before the reader
// offset. It does not memmove bytes within a partially-consumed component,
// trading a smaller compaction gain for never having to shift bytes across
// a component boundary.
func (cb *compositeBuffer) Compact() error {
	const op = "Compact"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return err
	}
	if err := checkOwned(op, cb.IsOwned()); err != nil {
		return err
	}
	if err := checkWritable(op, cb.readOnly); err != nil {
		return err
	}
	for len(cb.comps) > 0 && cb.r >= cb.comps[0].Capacity() {
		cap0 := cb.comps[0].Capacity()
		cb.comps[0].Close()
		cb.comps = cb.comps[1:]
		cb.r -= cap0
		cb.w -= cap0
	}
	cb.rebuildPrefix()
	return nil
}

func (cb *compositeBuffer) Split(splitOffset int) (Buffer, error) {
	const op = "Split"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return nil, err
	}
	if err := checkOwned(op, cb.IsOwned()); err != nil {
		return nil, err
	}
	if splitOffset < 0 || splitOffset > cb.Capacity() {
		return nil, fmt.Errorf("%s: %d outside [0, %d): %w", op, splitOffset, cb.Capacity(), ErrBounds)
	}
	var leftComps, rightComps []Buffer
	switch {
	case splitOffset == cb.Capacity():
		leftComps = cb.comps
	case splitOffset == 0:
		rightComps = cb.comps
	default:
		idx, local := cb.locate(splitOffset)
		if local == 0 {
			leftComps = cb.comps[:idx]
			rightComps = cb.comps[idx:]
		} else {
			leftHalf, err := cb.comps[idx].Split(local)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			leftComps = append(append([]Buffer{}, cb.comps[:idx]...), leftHalf)
			rightComps = cb.comps[idx:]
		}
	}
	left, err := newComposite(cb.ctrl, leftComps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	left.readOnly = cb.readOnly
	left.w = min(cb.w, splitOffset)
	left.r = min(cb.r, splitOffset)
	cb.comps = rightComps
	cb.rebuildPrefix()
	cb.w = max(cb.w, splitOffset) - splitOffset
	cb.r = max(cb.r, splitOffset) - splitOffset
	return left, nil
}

func (cb *compositeBuffer) SplitAtWriter() (Buffer, error) {
	return cb.Split(cb.w)
}

func (cb *compositeBuffer) Slice(offset, length int) (Buffer, error) {
	const op = "Slice"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return nil, err
	}
	if err := checkBounds(op, offset, length, cb.Capacity()); err != nil {
		return nil, err
	}
	var pieces []Buffer
	remaining, pos := length, offset
	for remaining > 0 {
		idx, local := cb.locate(pos)
		avail := cb.comps[idx].Capacity() - local
		take := avail
		if take > remaining {
			take = remaining
		}
		piece, err := cb.comps[idx].Slice(local, take)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pieces = append(pieces, piece)
		pos += take
		remaining -= take
	}
	out, err := newComposite(cb.ctrl, pieces)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// A slice is read-only regardless of the parent's own state (spec §4.1);
	// the components newComposite absorbed above are already read-only, but
	// the composite-level flag must agree so SetWriterOffset et al. reject.
	out.readOnly = true
	return out, nil
}

func (cb *compositeBuffer) Acquire() Buffer {
	comps := make([]Buffer, len(cb.comps))
	for i, c := range cb.comps {
		comps[i] = c.Acquire()
	}
	out := &compositeBuffer{comps: comps, order: cb.order, readOnly: cb.readOnly, accessible: true, ctrl: cb.ctrl, r: cb.r, w: cb.w}
	out.rebuildPrefix()
	return out
}

func (cb *compositeBuffer) Close() {
	if !cb.accessible {
		return
	}
	cb.accessible = false
	for _, c := range cb.comps {
		c.Close()
	}
}

func (cb *compositeBuffer) Send() (*SendEnvelope, error) {
	const op = "Send"
	if cb.sent {
		return nil, fmt.Errorf("%s: %w", op, ErrSendState)
	}
	if err := checkAccessible(op, cb.accessible); err != nil {
		return nil, err
	}
	if err := checkOwned(op, cb.IsOwned()); err != nil {
		return nil, err
	}
	envs := make([]*SendEnvelope, len(cb.comps))
	for i, c := range cb.comps {
		e, err := c.Send()
		if err != nil {
			for _, done := range envs[:i] {
				done.Discard()
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		envs[i] = e
	}
	order, readOnly, ctrl, r, w := cb.order, cb.readOnly, cb.ctrl, cb.r, cb.w
	env := newSendEnvelope(CompositeSend, func() Buffer {
		comps := make([]Buffer, len(envs))
		for i, e := range envs {
			b, err := e.Receive()
			if err != nil {
				continue
			}
			comps[i] = b
		}
		out := &compositeBuffer{comps: comps, order: order, readOnly: readOnly, accessible: true, ctrl: ctrl, r: r, w: w}
		out.rebuildPrefix()
		return out
	})
	cb.comps = nil
	cb.accessible = false
	cb.sent = true
	return env, nil
}

func (cb *compositeBuffer) CountComponents() int { return len(cb.comps) }

func (cb *compositeBuffer) countInRange(startGlobal, endGlobal int) int {
	if endGlobal <= startGlobal {
		return 0
	}
	n, pos := 0, startGlobal
	for pos < endGlobal {
		idx, _ := cb.locate(pos)
		segEnd := cb.prefix[idx+1]
		if segEnd > endGlobal {
			segEnd = endGlobal
		}
		pos = segEnd
		n++
	}
	return n
}

func (cb *compositeBuffer) CountReadableComponents() int { return cb.countInRange(cb.r, cb.w) }

func (cb *compositeBuffer) CountWritableComponents() int {
	return cb.countInRange(cb.w, cb.Capacity())
}

func (cb *compositeBuffer) forEachInRange(startGlobal, endGlobal, startIndex int, writable bool, fn func(int, Component) bool) (int, error) {
	visited, idx, pos := 0, startIndex, startGlobal
	for pos < endGlobal {
		cidx, local := cb.locate(pos)
		lb, ok := cb.comps[cidx].(*leafBuffer)
		if !ok {
			return visited, fmt.Errorf("component %d is not a leaf: %w", cidx, ErrArgument)
		}
		segEnd := cb.prefix[cidx+1]
		if segEnd > endGlobal {
			segEnd = endGlobal
		}
		comp := Component{buf: lb, kind: lb.reg.kind, offset: local, length: segEnd - pos, writable: writable}
		if !fn(idx, comp) {
			return -(visited + 1), nil
		}
		visited++
		idx++
		pos = segEnd
	}
	return visited, nil
}

func (cb *compositeBuffer) ForEachReadable(startIndex int, fn func(index int, c Component) bool) (int, error) {
	const op = "ForEachReadable"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return 0, err
	}
	return cb.forEachInRange(cb.r, cb.w, startIndex, false, fn)
}

func (cb *compositeBuffer) ForEachWritable(startIndex int, fn func(index int, c Component) bool) (int, error) {
	const op = "ForEachWritable"
	if err := checkAccessible(op, cb.accessible); err != nil {
		return 0, err
	}
	if err := checkWritable(op, cb.readOnly); err != nil {
		return 0, err
	}
	return cb.forEachInRange(cb.w, cb.Capacity(), startIndex, true, fn)
}

// getBytes/setBytes are the composite's analogue of leafBuffer's
// getAt/setAt: every multi-byte accessor in primitive_composite.go funnels
// through these instead of touching cb.comps directly.
func (cb *compositeBuffer) getBytes(op string, off, length int) ([]byte, error) {
	if err := checkAccessible(op, cb.accessible); err != nil {
		return nil, err
	}
	if err := checkBounds(op, off, length, cb.Capacity()); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	for i := range out {
		idx, local := cb.locate(off + i)
		v, err := cb.comps[idx].GetUint8(local)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out[i] = v
	}
	return out, nil
}

func (cb *compositeBuffer) setBytes(op string, off int, data []byte) error {
	if err := checkAccessible(op, cb.accessible); err != nil {
		return err
	}
	if err := checkWritable(op, cb.readOnly); err != nil {
		return err
	}
	if err := checkBounds(op, off, len(data), cb.Capacity()); err != nil {
		return err
	}
	for i, v := range data {
		idx, local := cb.locate(off + i)
		if err := cb.comps[idx].SetUint8(local, v); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}
