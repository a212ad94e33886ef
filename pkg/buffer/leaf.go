package buffer

import "fmt"

// leafBuffer is the concrete Buffer over a single contiguous region: the
// direct analogue of the teacher's Buffer struct (pkg/rtmp/buf/buffer.go),
// generalized from a single Go-heap array with a bare refcount to three
// backend kinds with full ownership checking (spec §4.1, §4.3).
type leafBuffer struct {
	reg        region
	drop       *sharedDrop
	ctrl       AllocatorControl
	r, w       int
	order      ByteOrder
	readOnly   bool
	accessible bool
	constView  bool
	sent       bool
}

// newLeaf wraps bytes in a fresh, fully-owned leaf buffer. r and w both
// start at 0, matching a freshly allocated buffer having no readable bytes
// yet (spec §4.1).
func newLeaf(kind backendKind, bytes []byte, drop *sharedDrop, ctrl AllocatorControl, order ByteOrder) *leafBuffer {
	return &leafBuffer{
		reg:        newRegion(kind, bytes),
		drop:       drop,
		ctrl:       ctrl,
		order:      order,
		accessible: true,
	}
}

func (b *leafBuffer) Capacity() int { return len(b.reg.bytes) }

func (b *leafBuffer) ReaderOffset() int { return b.r }

func (b *leafBuffer) SetReaderOffset(off int) error {
	const op = "SetReaderOffset"
	if err := checkAccessible(op, b.accessible); err != nil {
		return err
	}
	if off < 0 || off > b.w {
		return fmt.Errorf("%s: %d outside [0, %d): %w", op, off, b.w, ErrBounds)
	}
	b.r = off
	return nil
}

func (b *leafBuffer) WriterOffset() int { return b.w }

func (b *leafBuffer) SetWriterOffset(off int) error {
	const op = "SetWriterOffset"
	if err := checkAccessible(op, b.accessible); err != nil {
		return err
	}
	if err := checkWritable(op, b.readOnly); err != nil {
		return err
	}
	if off < b.r || off > b.Capacity() {
		return fmt.Errorf("%s: %d outside [%d, %d): %w", op, off, b.r, b.Capacity(), ErrBounds)
	}
	b.w = off
	return nil
}

func (b *leafBuffer) ReadableBytes() int { return b.w - b.r }

func (b *leafBuffer) WritableBytes() int { return b.Capacity() - b.w }

func (b *leafBuffer) Order() ByteOrder { return b.order }

func (b *leafBuffer) SetOrder(order ByteOrder) Buffer {
	b.order = order
	return b
}

func (b *leafBuffer) ReadOnly() bool { return b.readOnly }

func (b *leafBuffer) MakeReadOnly() Buffer {
	b.readOnly = true
	return b
}

func (b *leafBuffer) IsAccessible() bool { return b.accessible }

func (b *leafBuffer) IsOwned() bool {
	return b.accessible && b.drop != nil && b.drop.isOwned()
}

func (b *leafBuffer) Fill(v byte) error {
	const op = "Fill"
	if err := checkAccessible(op, b.accessible); err != nil {
		return err
	}
	if err := checkWritable(op, b.readOnly); err != nil {
		return err
	}
	for i := range b.reg.bytes {
		b.reg.bytes[i] = v
	}
	return nil
}

func (b *leafBuffer) CopyIntoBytes(srcPos int, dest []byte, destPos, length int) error {
	const op = "CopyIntoBytes"
	if err := checkAccessible(op, b.accessible); err != nil {
		return err
	}
	if err := checkBounds(op, srcPos, length, b.Capacity()); err != nil {
		return err
	}
	if err := checkBounds(op, destPos, length, len(dest)); err != nil {
		return err
	}
	copy(dest[destPos:destPos+length], b.reg.bytes[srcPos:srcPos+length])
	return nil
}

// CopyInto takes the fast path (a direct slice copy) when dest is also a
// leafBuffer, since both backends are Go-heap []byte underneath regardless
// of kind. Any other Buffer implementation (a compositeBuffer, or a
// hypothetical third-party one) is copied via a byte-by-byte walk through
// the absolute Get/Set accessors, per spec §4.1's "falls back to a
// byte walk when the fast path is unavailable".
func (b *leafBuffer) CopyInto(srcPos int, dest Buffer, destPos, length int) error {
	const op = "CopyInto"
	if err := checkAccessible(op, b.accessible); err != nil {
		return err
	}
	if err := checkBounds(op, srcPos, length, b.Capacity()); err != nil {
		return err
	}
	if err := checkBounds(op, destPos, length, dest.Capacity()); err != nil {
		return err
	}
	if other, ok := dest.(*leafBuffer); ok {
		if err := checkAccessible(op, other.accessible); err != nil {
			return err
		}
		if err := checkWritable(op, other.readOnly); err != nil {
			return err
		}
		copy(other.reg.bytes[destPos:destPos+length], b.reg.bytes[srcPos:srcPos+length])
		return nil
	}
	for i := 0; i < length; i++ {
		v, err := b.GetUint8(srcPos + i)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := dest.SetUint8(destPos+i, v); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// WriteBytes drains src generically through GetUint8/SetUint8 so it works
// uniformly whether src is a leaf or a composite (spec §4.1 scenario: cross
// backend, cross shape copy).
func (b *leafBuffer) WriteBytes(src Buffer) (int, error) {
	const op = "WriteBytes"
	if err := checkAccessible(op, b.accessible); err != nil {
		return 0, err
	}
	if err := checkWritable(op, b.readOnly); err != nil {
		return 0, err
	}
	n := src.ReadableBytes()
	if n > b.WritableBytes() {
		return 0, fmt.Errorf("%s: %d exceeds %d writable bytes: %w", op, n, b.WritableBytes(), ErrBounds)
	}
	srcPos := src.ReaderOffset()
	for i := 0; i < n; i++ {
		v, err := src.GetUint8(srcPos + i)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if err := b.SetUint8(b.w+i, v); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}
	b.w += n
	_ = src.SetReaderOffset(srcPos + n)
	return n, nil
}

func (b *leafBuffer) OpenCursor(fromOffset, length int) (Cursor, error) {
	const op = "OpenCursor"
	if err := checkAccessible(op, b.accessible); err != nil {
		return nil, err
	}
	if err := checkBounds(op, fromOffset, length, b.Capacity()); err != nil {
		return nil, err
	}
	return newForwardCursor(b, fromOffset, length), nil
}

func (b *leafBuffer) OpenReverseCursor(fromOffset, length int) (Cursor, error) {
	const op = "OpenReverseCursor"
	if err := checkAccessible(op, b.accessible); err != nil {
		return nil, err
	}
	if fromOffset-length+1 < 0 || fromOffset >= b.Capacity() {
		return nil, fmt.Errorf("%s: [%d, %d] outside [0, %d): %w", op, fromOffset-length+1, fromOffset, b.Capacity(), ErrBounds)
	}
	return newReverseCursor(b, fromOffset, length), nil
}

func (b *leafBuffer) EnsureWritable(size, minimumGrowth int, allowCompaction bool) error {
	const op = "EnsureWritable"
	if err := checkAccessible(op, b.accessible); err != nil {
		return err
	}
	if size <= b.WritableBytes() {
		return nil
	}
	if allowCompaction && b.r >= size-b.WritableBytes() {
		if err := b.Compact(); err != nil {
			return err
		}
		if size <= b.WritableBytes() {
			return nil
		}
	}
	if err := checkOwned(op, b.IsOwned()); err != nil {
		return err
	}
	if err := checkWritable(op, b.readOnly); err != nil {
		return err
	}
	growBy := size - b.WritableBytes()
	if growBy < minimumGrowth {
		growBy = minimumGrowth
	}
	newCap := b.Capacity() + growBy
	if b.ctrl == nil {
		return fmt.Errorf("%s: no allocator control to grow from: %w", op, ErrArgument)
	}
	fresh, err := b.ctrl.AllocateUntethered(b, newCap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	copy(fresh.Bytes, b.reg.bytes)
	oldDrop := b.drop
	b.reg = newRegion(b.reg.kind, fresh.Bytes)
	b.drop = wrapDrop(fresh.Drop)
	oldDrop.release(oldDrop)
	return nil
}

func (b *leafBuffer) Compact() error {
	const op = "Compact"
	if err := checkAccessible(op, b.accessible); err != nil {
		return err
	}
	if err := checkOwned(op, b.IsOwned()); err != nil {
		return err
	}
	if err := checkWritable(op, b.readOnly); err != nil {
		return err
	}
	n := b.w - b.r
	copy(b.reg.bytes[0:n], b.reg.bytes[b.r:b.w])
	b.r = 0
	b.w = n
	return nil
}

// Split promotes b's shared-count handle in place and hands out two fresh
// count-1 outer handles delegating into it (see drop.go's splitReparent),
// so both halves are independently IsOwned() while the underlying backend
// reclamation still fires exactly once.
func (b *leafBuffer) Split(splitOffset int) (Buffer, error) {
	const op = "Split"
	if err := checkAccessible(op, b.accessible); err != nil {
		return nil, err
	}
	if err := checkOwned(op, b.IsOwned()); err != nil {
		return nil, err
	}
	if splitOffset < 0 || splitOffset > b.Capacity() {
		return nil, fmt.Errorf("%s: %d outside [0, %d): %w", op, splitOffset, b.Capacity(), ErrBounds)
	}
	leftDrop, rightDrop := splitReparent(b.drop)
	left := &leafBuffer{
		reg:        newRegion(b.reg.kind, b.reg.bytes[:splitOffset]),
		drop:       leftDrop,
		ctrl:       b.ctrl,
		order:      b.order,
		readOnly:   b.readOnly,
		accessible: true,
		constView:  b.constView,
		r:          min(b.r, splitOffset),
		w:          min(b.w, splitOffset),
	}
	b.reg = newRegion(b.reg.kind, b.reg.bytes[splitOffset:])
	b.drop = rightDrop
	b.r = max(b.r, splitOffset) - splitOffset
	b.w = max(b.w, splitOffset) - splitOffset
	return left, nil
}

func (b *leafBuffer) SplitAtWriter() (Buffer, error) {
	return b.Split(b.w)
}

// Slice shares this buffer's memory and its shared-count handle: it
// acquires one more reference on that handle for the returned buffer, so it
// participates in refcounting like any other borrow (spec §4.1: "may
// outlive the buffer it was sliced from").
func (b *leafBuffer) Slice(offset, length int) (Buffer, error) {
	const op = "Slice"
	if err := checkAccessible(op, b.accessible); err != nil {
		return nil, err
	}
	if err := checkBounds(op, offset, length, b.Capacity()); err != nil {
		return nil, err
	}
	if err := b.drop.acquire(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &leafBuffer{
		reg:        newRegion(b.reg.kind, b.reg.bytes[offset:offset+length]),
		drop:       b.drop,
		ctrl:       b.ctrl,
		order:      b.order,
		readOnly:   true,
		accessible: true,
		w:          length,
	}, nil
}

func (b *leafBuffer) Acquire() Buffer {
	if b.drop != nil {
		_ = b.drop.acquire()
	}
	acquired := *b
	return &acquired
}

func (b *leafBuffer) Close() {
	if !b.accessible {
		return
	}
	b.accessible = false
	if b.drop != nil {
		b.drop.release(b)
	}
}

// Send moves the shared-count handle itself into the envelope rather than
// creating a fresh one, so a stray Close() on the origin after Send()
// becomes a safe no-op (spec §7).
func (b *leafBuffer) Send() (*SendEnvelope, error) {
	const op = "Send"
	if b.sent {
		return nil, fmt.Errorf("%s: %w", op, ErrSendState)
	}
	if err := checkAccessible(op, b.accessible); err != nil {
		return nil, err
	}
	if err := checkOwned(op, b.IsOwned()); err != nil {
		return nil, err
	}
	reg, drop, ctrl, order, readOnly, constView, r, w := b.reg, b.drop, b.ctrl, b.order, b.readOnly, b.constView, b.r, b.w
	env := newSendEnvelope(LeafSend, func() Buffer {
		return &leafBuffer{
			reg:        reg,
			drop:       drop,
			ctrl:       ctrl,
			order:      order,
			readOnly:   readOnly,
			constView:  constView,
			accessible: true,
			r:          r,
			w:          w,
		}
	})
	b.drop = nil
	b.accessible = false
	b.sent = true
	return env, nil
}

func (b *leafBuffer) CountComponents() int { return 1 }

func (b *leafBuffer) CountReadableComponents() int {
	if b.ReadableBytes() == 0 {
		return 0
	}
	return 1
}

func (b *leafBuffer) CountWritableComponents() int {
	if b.WritableBytes() == 0 {
		return 0
	}
	return 1
}

func (b *leafBuffer) ForEachReadable(startIndex int, fn func(index int, c Component) bool) (int, error) {
	const op = "ForEachReadable"
	if err := checkAccessible(op, b.accessible); err != nil {
		return 0, err
	}
	if b.ReadableBytes() == 0 {
		return 0, nil
	}
	c := Component{buf: b, kind: b.reg.kind, offset: b.r, length: b.ReadableBytes(), writable: false}
	if !fn(startIndex, c) {
		return -1, nil
	}
	return 1, nil
}

func (b *leafBuffer) ForEachWritable(startIndex int, fn func(index int, c Component) bool) (int, error) {
	const op = "ForEachWritable"
	if err := checkAccessible(op, b.accessible); err != nil {
		return 0, err
	}
	if err := checkWritable(op, b.readOnly); err != nil {
		return 0, err
	}
	if b.WritableBytes() == 0 {
		return 0, nil
	}
	c := Component{buf: b, kind: b.reg.kind, offset: b.w, length: b.WritableBytes(), writable: true}
	if !fn(startIndex, c) {
		return -1, nil
	}
	return 1, nil
}
