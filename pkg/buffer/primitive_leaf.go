package buffer

// primitive_leaf.go implements primitiveAccessors on *leafBuffer using the
// codec helpers declared in primitives.go. Every accessor funnels through
// getAt/setAt/readAt/writeAt below so the bounds/accessible/read-only
// checks live in one place instead of being repeated eight times per width.

func (b *leafBuffer) getAt(op string, off, width int) ([]byte, error) {
	if err := checkAccessible(op, b.accessible); err != nil {
		return nil, err
	}
	if err := checkBounds(op, off, width, b.Capacity()); err != nil {
		return nil, err
	}
	return b.reg.bytes[off : off+width], nil
}

func (b *leafBuffer) setAt(op string, off, width int) ([]byte, error) {
	if err := checkAccessible(op, b.accessible); err != nil {
		return nil, err
	}
	if err := checkWritable(op, b.readOnly); err != nil {
		return nil, err
	}
	if err := checkBounds(op, off, width, b.Capacity()); err != nil {
		return nil, err
	}
	return b.reg.bytes[off : off+width], nil
}

func (b *leafBuffer) readAt(op string, width int) ([]byte, error) {
	slice, err := b.getAt(op, b.r, width)
	if err != nil {
		return nil, err
	}
	b.r += width
	return slice, nil
}

func (b *leafBuffer) writeAt(op string, width int) ([]byte, error) {
	slice, err := b.setAt(op, b.w, width)
	if err != nil {
		return nil, err
	}
	b.w += width
	return slice, nil
}

// --- 8-bit ---

func (b *leafBuffer) ReadUint8() (uint8, error) {
	s, err := b.readAt("ReadUint8", 1)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

func (b *leafBuffer) ReadInt8() (int8, error) {
	v, err := b.ReadUint8()
	return int8(v), err
}

func (b *leafBuffer) GetUint8(off int) (uint8, error) {
	s, err := b.getAt("GetUint8", off, 1)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

func (b *leafBuffer) GetInt8(off int) (int8, error) {
	v, err := b.GetUint8(off)
	return int8(v), err
}

func (b *leafBuffer) WriteUint8(v uint8) error {
	s, err := b.writeAt("WriteUint8", 1)
	if err != nil {
		return err
	}
	s[0] = v
	return nil
}

func (b *leafBuffer) WriteInt8(v int8) error { return b.WriteUint8(uint8(v)) }

func (b *leafBuffer) SetUint8(off int, v uint8) error {
	s, err := b.setAt("SetUint8", off, 1)
	if err != nil {
		return err
	}
	s[0] = v
	return nil
}

func (b *leafBuffer) SetInt8(off int, v int8) error { return b.SetUint8(off, uint8(v)) }

// --- 16-bit ---

func (b *leafBuffer) ReadUint16() (uint16, error) {
	s, err := b.readAt("ReadUint16", 2)
	if err != nil {
		return 0, err
	}
	return decodeUint16(s, b.order), nil
}

func (b *leafBuffer) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	return int16(v), err
}

func (b *leafBuffer) GetUint16(off int) (uint16, error) {
	s, err := b.getAt("GetUint16", off, 2)
	if err != nil {
		return 0, err
	}
	return decodeUint16(s, b.order), nil
}

func (b *leafBuffer) GetInt16(off int) (int16, error) {
	v, err := b.GetUint16(off)
	return int16(v), err
}

func (b *leafBuffer) WriteUint16(v uint16) error {
	s, err := b.writeAt("WriteUint16", 2)
	if err != nil {
		return err
	}
	encodeUint16(s, b.order, v)
	return nil
}

func (b *leafBuffer) WriteInt16(v int16) error { return b.WriteUint16(uint16(v)) }

func (b *leafBuffer) SetUint16(off int, v uint16) error {
	s, err := b.setAt("SetUint16", off, 2)
	if err != nil {
		return err
	}
	encodeUint16(s, b.order, v)
	return nil
}

func (b *leafBuffer) SetInt16(off int, v int16) error { return b.SetUint16(off, uint16(v)) }

// --- 24-bit ---

func (b *leafBuffer) ReadUint24() (uint32, error) {
	s, err := b.readAt("ReadUint24", 3)
	if err != nil {
		return 0, err
	}
	return decodeUint24(s, b.order), nil
}

func (b *leafBuffer) ReadInt24() (int32, error) {
	v, err := b.ReadUint24()
	return signExtend24(v), err
}

func (b *leafBuffer) GetUint24(off int) (uint32, error) {
	s, err := b.getAt("GetUint24", off, 3)
	if err != nil {
		return 0, err
	}
	return decodeUint24(s, b.order), nil
}

func (b *leafBuffer) GetInt24(off int) (int32, error) {
	v, err := b.GetUint24(off)
	return signExtend24(v), err
}

func (b *leafBuffer) WriteUint24(v uint32) error {
	s, err := b.writeAt("WriteUint24", 3)
	if err != nil {
		return err
	}
	encodeUint24(s, b.order, v)
	return nil
}

func (b *leafBuffer) WriteInt24(v int32) error { return b.WriteUint24(uint32(v) & 0x00FFFFFF) }

func (b *leafBuffer) SetUint24(off int, v uint32) error {
	s, err := b.setAt("SetUint24", off, 3)
	if err != nil {
		return err
	}
	encodeUint24(s, b.order, v)
	return nil
}

func (b *leafBuffer) SetInt24(off int, v int32) error {
	return b.SetUint24(off, uint32(v)&0x00FFFFFF)
}

// --- 32-bit ---

func (b *leafBuffer) ReadUint32() (uint32, error) {
	s, err := b.readAt("ReadUint32", 4)
	if err != nil {
		return 0, err
	}
	return decodeUint32(s, b.order), nil
}

func (b *leafBuffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

func (b *leafBuffer) GetUint32(off int) (uint32, error) {
	s, err := b.getAt("GetUint32", off, 4)
	if err != nil {
		return 0, err
	}
	return decodeUint32(s, b.order), nil
}

func (b *leafBuffer) GetInt32(off int) (int32, error) {
	v, err := b.GetUint32(off)
	return int32(v), err
}

func (b *leafBuffer) WriteUint32(v uint32) error {
	s, err := b.writeAt("WriteUint32", 4)
	if err != nil {
		return err
	}
	encodeUint32(s, b.order, v)
	return nil
}

func (b *leafBuffer) WriteInt32(v int32) error { return b.WriteUint32(uint32(v)) }

func (b *leafBuffer) SetUint32(off int, v uint32) error {
	s, err := b.setAt("SetUint32", off, 4)
	if err != nil {
		return err
	}
	encodeUint32(s, b.order, v)
	return nil
}

func (b *leafBuffer) SetInt32(off int, v int32) error { return b.SetUint32(off, uint32(v)) }

// --- 64-bit ---

func (b *leafBuffer) ReadUint64() (uint64, error) {
	s, err := b.readAt("ReadUint64", 8)
	if err != nil {
		return 0, err
	}
	return decodeUint64(s, b.order), nil
}

func (b *leafBuffer) ReadInt64() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

func (b *leafBuffer) GetUint64(off int) (uint64, error) {
	s, err := b.getAt("GetUint64", off, 8)
	if err != nil {
		return 0, err
	}
	return decodeUint64(s, b.order), nil
}

func (b *leafBuffer) GetInt64(off int) (int64, error) {
	v, err := b.GetUint64(off)
	return int64(v), err
}

func (b *leafBuffer) WriteUint64(v uint64) error {
	s, err := b.writeAt("WriteUint64", 8)
	if err != nil {
		return err
	}
	encodeUint64(s, b.order, v)
	return nil
}

func (b *leafBuffer) WriteInt64(v int64) error { return b.WriteUint64(uint64(v)) }

func (b *leafBuffer) SetUint64(off int, v uint64) error {
	s, err := b.setAt("SetUint64", off, 8)
	if err != nil {
		return err
	}
	encodeUint64(s, b.order, v)
	return nil
}

func (b *leafBuffer) SetInt64(off int, v int64) error { return b.SetUint64(off, uint64(v)) }

// --- char (unsigned 16-bit only, no sign variant, spec §6) ---

func (b *leafBuffer) ReadChar() (uint16, error)        { return b.ReadUint16() }
func (b *leafBuffer) GetChar(off int) (uint16, error)  { return b.GetUint16(off) }
func (b *leafBuffer) WriteChar(v uint16) error         { return b.WriteUint16(v) }
func (b *leafBuffer) SetChar(off int, v uint16) error  { return b.SetUint16(off, v) }

// --- floating point, IEEE 754 bit patterns over the 32/64-bit codecs ---

func (b *leafBuffer) ReadFloat32() (float32, error) {
	v, err := b.ReadUint32()
	return float32FromBits(v), err
}

func (b *leafBuffer) GetFloat32(off int) (float32, error) {
	v, err := b.GetUint32(off)
	return float32FromBits(v), err
}

func (b *leafBuffer) WriteFloat32(v float32) error { return b.WriteUint32(float32Bits(v)) }

func (b *leafBuffer) SetFloat32(off int, v float32) error { return b.SetUint32(off, float32Bits(v)) }

func (b *leafBuffer) ReadFloat64() (float64, error) {
	v, err := b.ReadUint64()
	return float64FromBits(v), err
}

func (b *leafBuffer) GetFloat64(off int) (float64, error) {
	v, err := b.GetUint64(off)
	return float64FromBits(v), err
}

func (b *leafBuffer) WriteFloat64(v float64) error { return b.WriteUint64(float64Bits(v)) }

func (b *leafBuffer) SetFloat64(off int, v float64) error { return b.SetUint64(off, float64Bits(v)) }
