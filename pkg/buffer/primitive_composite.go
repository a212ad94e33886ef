package buffer

// primitive_composite.go implements primitiveAccessors on *compositeBuffer
// by decoding/encoding through getBytes/setBytes (composite.go), which walk
// component boundaries a byte at a time. There is no fast contiguous path
// here the way leafBuffer has one, since a composite's bytes generally
// aren't contiguous in memory.

func (cb *compositeBuffer) readBytes(op string, width int) ([]byte, error) {
	b, err := cb.getBytes(op, cb.r, width)
	if err != nil {
		return nil, err
	}
	cb.r += width
	return b, nil
}

func (cb *compositeBuffer) writeBytes(op string, width int, encode func([]byte)) error {
	buf := make([]byte, width)
	encode(buf)
	if err := cb.setBytes(op, cb.w, buf); err != nil {
		return err
	}
	cb.w += width
	return nil
}

func (cb *compositeBuffer) ReadUint8() (uint8, error) {
	b, err := cb.readBytes("ReadUint8", 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (cb *compositeBuffer) ReadInt8() (int8, error) {
	v, err := cb.ReadUint8()
	return int8(v), err
}

func (cb *compositeBuffer) GetUint8(off int) (uint8, error) {
	b, err := cb.getBytes("GetUint8", off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (cb *compositeBuffer) GetInt8(off int) (int8, error) {
	v, err := cb.GetUint8(off)
	return int8(v), err
}

func (cb *compositeBuffer) WriteUint8(v uint8) error {
	return cb.writeBytes("WriteUint8", 1, func(b []byte) { b[0] = v })
}

func (cb *compositeBuffer) WriteInt8(v int8) error { return cb.WriteUint8(uint8(v)) }

func (cb *compositeBuffer) SetUint8(off int, v uint8) error {
	return cb.setBytes("SetUint8", off, []byte{v})
}

func (cb *compositeBuffer) SetInt8(off int, v int8) error { return cb.SetUint8(off, uint8(v)) }

func (cb *compositeBuffer) ReadUint16() (uint16, error) {
	b, err := cb.readBytes("ReadUint16", 2)
	if err != nil {
		return 0, err
	}
	return decodeUint16(b, cb.order), nil
}

func (cb *compositeBuffer) ReadInt16() (int16, error) {
	v, err := cb.ReadUint16()
	return int16(v), err
}

func (cb *compositeBuffer) GetUint16(off int) (uint16, error) {
	b, err := cb.getBytes("GetUint16", off, 2)
	if err != nil {
		return 0, err
	}
	return decodeUint16(b, cb.order), nil
}

func (cb *compositeBuffer) GetInt16(off int) (int16, error) {
	v, err := cb.GetUint16(off)
	return int16(v), err
}

func (cb *compositeBuffer) WriteUint16(v uint16) error {
	return cb.writeBytes("WriteUint16", 2, func(b []byte) { encodeUint16(b, cb.order, v) })
}

func (cb *compositeBuffer) WriteInt16(v int16) error { return cb.WriteUint16(uint16(v)) }

func (cb *compositeBuffer) SetUint16(off int, v uint16) error {
	b := make([]byte, 2)
	encodeUint16(b, cb.order, v)
	return cb.setBytes("SetUint16", off, b)
}

func (cb *compositeBuffer) SetInt16(off int, v int16) error { return cb.SetUint16(off, uint16(v)) }

func (cb *compositeBuffer) ReadUint24() (uint32, error) {
	b, err := cb.readBytes("ReadUint24", 3)
	if err != nil {
		return 0, err
	}
	return decodeUint24(b, cb.order), nil
}

func (cb *compositeBuffer) ReadInt24() (int32, error) {
	v, err := cb.ReadUint24()
	return signExtend24(v), err
}

func (cb *compositeBuffer) GetUint24(off int) (uint32, error) {
	b, err := cb.getBytes("GetUint24", off, 3)
	if err != nil {
		return 0, err
	}
	return decodeUint24(b, cb.order), nil
}

func (cb *compositeBuffer) GetInt24(off int) (int32, error) {
	v, err := cb.GetUint24(off)
	return signExtend24(v), err
}

func (cb *compositeBuffer) WriteUint24(v uint32) error {
	return cb.writeBytes("WriteUint24", 3, func(b []byte) { encodeUint24(b, cb.order, v) })
}

func (cb *compositeBuffer) WriteInt24(v int32) error {
	return cb.WriteUint24(uint32(v) & 0x00FFFFFF)
}

func (cb *compositeBuffer) SetUint24(off int, v uint32) error {
	b := make([]byte, 3)
	encodeUint24(b, cb.order, v)
	return cb.setBytes("SetUint24", off, b)
}

func (cb *compositeBuffer) SetInt24(off int, v int32) error {
	return cb.SetUint24(off, uint32(v)&0x00FFFFFF)
}

func (cb *compositeBuffer) ReadUint32() (uint32, error) {
	b, err := cb.readBytes("ReadUint32", 4)
	if err != nil {
		return 0, err
	}
	return decodeUint32(b, cb.order), nil
}

func (cb *compositeBuffer) ReadInt32() (int32, error) {
	v, err := cb.ReadUint32()
	return int32(v), err
}

func (cb *compositeBuffer) GetUint32(off int) (uint32, error) {
	b, err := cb.getBytes("GetUint32", off, 4)
	if err != nil {
		return 0, err
	}
	return decodeUint32(b, cb.order), nil
}

func (cb *compositeBuffer) GetInt32(off int) (int32, error) {
	v, err := cb.GetUint32(off)
	return int32(v), err
}

func (cb *compositeBuffer) WriteUint32(v uint32) error {
	return cb.writeBytes("WriteUint32", 4, func(b []byte) { encodeUint32(b, cb.order, v) })
}

func (cb *compositeBuffer) WriteInt32(v int32) error { return cb.WriteUint32(uint32(v)) }

func (cb *compositeBuffer) SetUint32(off int, v uint32) error {
	b := make([]byte, 4)
	encodeUint32(b, cb.order, v)
	return cb.setBytes("SetUint32", off, b)
}

func (cb *compositeBuffer) SetInt32(off int, v int32) error { return cb.SetUint32(off, uint32(v)) }

func (cb *compositeBuffer) ReadUint64() (uint64, error) {
	b, err := cb.readBytes("ReadUint64", 8)
	if err != nil {
		return 0, err
	}
	return decodeUint64(b, cb.order), nil
}

func (cb *compositeBuffer) ReadInt64() (int64, error) {
	v, err := cb.ReadUint64()
	return int64(v), err
}

func (cb *compositeBuffer) GetUint64(off int) (uint64, error) {
	b, err := cb.getBytes("GetUint64", off, 8)
	if err != nil {
		return 0, err
	}
	return decodeUint64(b, cb.order), nil
}

func (cb *compositeBuffer) GetInt64(off int) (int64, error) {
	v, err := cb.GetUint64(off)
	return int64(v), err
}

func (cb *compositeBuffer) WriteUint64(v uint64) error {
	return cb.writeBytes("WriteUint64", 8, func(b []byte) { encodeUint64(b, cb.order, v) })
}

func (cb *compositeBuffer) WriteInt64(v int64) error { return cb.WriteUint64(uint64(v)) }

func (cb *compositeBuffer) SetUint64(off int, v uint64) error {
	b := make([]byte, 8)
	encodeUint64(b, cb.order, v)
	return cb.setBytes("SetUint64", off, b)
}

func (cb *compositeBuffer) SetInt64(off int, v int64) error { return cb.SetUint64(off, uint64(v)) }

func (cb *compositeBuffer) ReadChar() (uint16, error)       { return cb.ReadUint16() }
func (cb *compositeBuffer) GetChar(off int) (uint16, error) { return cb.GetUint16(off) }
func (cb *compositeBuffer) WriteChar(v uint16) error        { return cb.WriteUint16(v) }
func (cb *compositeBuffer) SetChar(off int, v uint16) error { return cb.SetUint16(off, v) }

func (cb *compositeBuffer) ReadFloat32() (float32, error) {
	v, err := cb.ReadUint32()
	return float32FromBits(v), err
}

func (cb *compositeBuffer) GetFloat32(off int) (float32, error) {
	v, err := cb.GetUint32(off)
	return float32FromBits(v), err
}

func (cb *compositeBuffer) WriteFloat32(v float32) error { return cb.WriteUint32(float32Bits(v)) }

func (cb *compositeBuffer) SetFloat32(off int, v float32) error {
	return cb.SetUint32(off, float32Bits(v))
}

func (cb *compositeBuffer) ReadFloat64() (float64, error) {
	v, err := cb.ReadUint64()
	return float64FromBits(v), err
}

func (cb *compositeBuffer) GetFloat64(off int) (float64, error) {
	v, err := cb.GetUint64(off)
	return float64FromBits(v), err
}

func (cb *compositeBuffer) WriteFloat64(v float64) error { return cb.WriteUint64(float64Bits(v)) }

func (cb *compositeBuffer) SetFloat64(off int, v float64) error {
	return cb.SetUint64(off, float64Bits(v))
}
