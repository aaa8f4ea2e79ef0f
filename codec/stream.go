package codec

import (
	"encoding/binary"
	"math"
)

// Stream is an append-only little-endian byte stream. Entities append their fields to it in a fixed order so
// that peers running the same simulation produce byte-identical output.
type Stream struct {
	buf []byte
}

func NewStream(capacity int) *Stream {
	return &Stream{buf: make([]byte, 0, capacity)}
}

func (s *Stream) Bytes() []byte {
	return s.buf
}

func (s *Stream) Len() int {
	return len(s.buf)
}

func (s *Stream) Reset() {
	s.buf = s.buf[:0]
}

func (s *Stream) Bool(v bool) *Stream {
	if v {
		return s.Uint8(1)
	}
	return s.Uint8(0)
}

func (s *Stream) Uint8(v uint8) *Stream {
	s.buf = append(s.buf, v)
	return s
}

func (s *Stream) Int8(v int8) *Stream {
	return s.Uint8(uint8(v))
}

func (s *Stream) Uint16(v uint16) *Stream {
	s.buf = binary.LittleEndian.AppendUint16(s.buf, v)
	return s
}

func (s *Stream) Int16(v int16) *Stream {
	return s.Uint16(uint16(v))
}

func (s *Stream) Uint32(v uint32) *Stream {
	s.buf = binary.LittleEndian.AppendUint32(s.buf, v)
	return s
}

func (s *Stream) Int32(v int32) *Stream {
	return s.Uint32(uint32(v))
}

func (s *Stream) Uint64(v uint64) *Stream {
	s.buf = binary.LittleEndian.AppendUint64(s.buf, v)
	return s
}

func (s *Stream) Int64(v int64) *Stream {
	return s.Uint64(uint64(v))
}

// Float32 appends the IEEE-754 bits of v.
func (s *Stream) Float32(v float32) *Stream {
	return s.Uint32(math.Float32bits(v))
}

// String appends a uint16 length prefix followed by the bytes of v. Strings longer than 65535 bytes are truncated.
func (s *Stream) String(v string) *Stream {
	if len(v) > math.MaxUint16 {
		v = v[:math.MaxUint16]
	}
	s.Uint16(uint16(len(v)))
	s.buf = append(s.buf, v...)
	return s
}
