package buffer

import "math"

// primitiveAccessors is the numeric-accessor slice of the Buffer contract
// (spec §4.1). Names follow the Go-width convention the teacher already
// uses for its own endian helpers (transport/byte_reader.go's
// readUint16LE/readUint32BE/...) rather than Java's byte/short/int/long/char,
// since Go has no method overloading to hang those names on distinct
// signed/unsigned/width variants anyway.
//
// Read*/Write* advance the corresponding cursor by the type's byte width on
// success and leave it untouched on failure. Get*/Set* address an absolute
// offset and never move a cursor. All widen zero (unsigned) rather than
// sign-extend, except the Int24 pair, which sign-extends from bit 23 to
// match a real signed 24-bit field (spec §6).
type primitiveAccessors interface {
	ReadInt8() (int8, error)
	ReadUint8() (uint8, error)
	GetInt8(off int) (int8, error)
	GetUint8(off int) (uint8, error)
	WriteInt8(v int8) error
	WriteUint8(v uint8) error
	SetInt8(off int, v int8) error
	SetUint8(off int, v uint8) error

	ReadInt16() (int16, error)
	ReadUint16() (uint16, error)
	GetInt16(off int) (int16, error)
	GetUint16(off int) (uint16, error)
	WriteInt16(v int16) error
	WriteUint16(v uint16) error
	SetInt16(off int, v int16) error
	SetUint16(off int, v uint16) error

	ReadInt24() (int32, error)
	ReadUint24() (uint32, error)
	GetInt24(off int) (int32, error)
	GetUint24(off int) (uint32, error)
	WriteInt24(v int32) error
	WriteUint24(v uint32) error
	SetInt24(off int, v int32) error
	SetUint24(off int, v uint32) error

	ReadInt32() (int32, error)
	ReadUint32() (uint32, error)
	GetInt32(off int) (int32, error)
	GetUint32(off int) (uint32, error)
	WriteInt32(v int32) error
	WriteUint32(v uint32) error
	SetInt32(off int, v int32) error
	SetUint32(off int, v uint32) error

	ReadInt64() (int64, error)
	ReadUint64() (uint64, error)
	GetInt64(off int) (int64, error)
	GetUint64(off int) (uint64, error)
	WriteInt64(v int64) error
	WriteUint64(v uint64) error
	SetInt64(off int, v int64) error
	SetUint64(off int, v uint64) error

	ReadChar() (uint16, error)
	GetChar(off int) (uint16, error)
	WriteChar(v uint16) error
	SetChar(off int, v uint16) error

	ReadFloat32() (float32, error)
	GetFloat32(off int) (float32, error)
	WriteFloat32(v float32) error
	SetFloat32(off int, v float32) error

	ReadFloat64() (float64, error)
	GetFloat64(off int) (float64, error)
	WriteFloat64(v float64) error
	SetFloat64(off int, v float64) error
}

// --- byte-order codecs over a plain []byte, shared by the leaf and composite accessors ---

func decodeUint16(b []byte, order ByteOrder) uint16 {
	if order == LittleEndian {
		return uint16(b[0]) | uint16(b[1])<<8
	}
	return uint16(b[0])<<8 | uint16(b[1])
}

func encodeUint16(b []byte, order ByteOrder, v uint16) {
	if order == LittleEndian {
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		return
	}
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

// decodeUint24/encodeUint24 per spec §6: big-endian layout [b0<<16|b1<<8|b2],
// little-endian layout [b0|b1<<8|b2<<16].
func decodeUint24(b []byte, order ByteOrder) uint32 {
	if order == LittleEndian {
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func encodeUint24(b []byte, order ByteOrder, v uint32) {
	if order == LittleEndian {
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
		return
	}
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

// signExtend24 sign-extends bit 23 of a 24-bit field into a full int32.
func signExtend24(v uint32) int32 {
	if v&0x00800000 != 0 {
		return int32(v | 0xFF000000)
	}
	return int32(v)
}

func decodeUint32(b []byte, order ByteOrder) uint32 {
	if order == LittleEndian {
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func encodeUint32(b []byte, order ByteOrder, v uint32) {
	if order == LittleEndian {
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
		b[3] = byte(v >> 24)
		return
	}
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func decodeUint64(b []byte, order ByteOrder) uint64 {
	if order == LittleEndian {
		return uint64(decodeUint32(b[0:4], order)) | uint64(decodeUint32(b[4:8], order))<<32
	}
	return uint64(decodeUint32(b[0:4], order))<<32 | uint64(decodeUint32(b[4:8], order))
}

func encodeUint64(b []byte, order ByteOrder, v uint64) {
	if order == LittleEndian {
		encodeUint32(b[0:4], order, uint32(v))
		encodeUint32(b[4:8], order, uint32(v>>32))
		return
	}
	encodeUint32(b[0:4], order, uint32(v>>32))
	encodeUint32(b[4:8], order, uint32(v))
}

func float32Bits(v float32) uint32       { return math.Float32bits(v) }
func float32FromBits(v uint32) float32   { return math.Float32frombits(v) }
func float64Bits(v float64) uint64       { return math.Float64bits(v) }
func float64FromBits(v uint64) float64   { return math.Float64frombits(v) }
