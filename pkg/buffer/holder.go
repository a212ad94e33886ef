package buffer

// Holder mediates a single owned buffer on behalf of a caller-defined
// wrapper type, the way the original source's BufferRef mediates one
// buffer inside a larger message object: replace the contents, receive
// ownership from a SendEnvelope, or release it, without the wrapper type
// having to reimplement any of the accounting itself. Grounded on
// BufferRef's replace/contents/receive-from-Send shape; Go has no abstract
// base class to hang that on, so it's a struct callers embed instead.
type Holder struct {
	buf Buffer
}

// NewHolder wraps an already-owned buffer.
func NewHolder(buf Buffer) *Holder {
	return &Holder{buf: buf}
}

// Contents returns the currently held buffer, or nil if none is held.
func (h *Holder) Contents() Buffer {
	return h.buf
}

// Replace closes whatever this holder currently contains and installs buf
// in its place, returning the buffer that was replaced (nil if the holder
// was empty).
func (h *Holder) Replace(buf Buffer) Buffer {
	old := h.buf
	if old != nil {
		old.Close()
	}
	h.buf = buf
	return old
}

// Receive replaces this holder's contents with the buffer obtained from
// env, propagating any error from a second Receive or a Receive after
// Discard.
func (h *Holder) Receive(env *SendEnvelope) error {
	buf, err := env.Receive()
	if err != nil {
		return err
	}
	h.Replace(buf)
	return nil
}

// Close releases the held buffer, if any, and clears the holder.
func (h *Holder) Close() {
	if h.buf == nil {
		return
	}
	h.buf.Close()
	h.buf = nil
}
