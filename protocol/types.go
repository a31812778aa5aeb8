package protocol

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gofrs/uuid"
)

// A Field is both FieldEncoder and FieldDecoder
type Field interface {
	FieldEncoder
	FieldDecoder
}

// A FieldEncoder can be encoded as the minecraft protocol uses it.
type FieldEncoder interface {
	Encode() []byte
}

// A FieldDecoder can Decode from the minecraft protocol.
type FieldDecoder interface {
	Decode(r DecodeReader) error
}

// DecodeReader is both io.Reader and io.ByteReader
type DecodeReader interface {
	io.ByteReader
	io.Reader
}

type (
	// Boolean of True is encoded as 0x01, false as 0x00.
	Boolean bool
	// Byte is signed 8-bit integer, two's complement
	Byte int8
	// UnsignedByte is unsigned 8-bit integer
	UnsignedByte uint8
	// Short is signed 16-bit integer, two's complement
	Short int16
	// UnsignedShort is unsigned 16-bit integer
	UnsignedShort uint16
	// Int is signed 32-bit integer, two's complement
	Int int32
	// UnsignedInt is unsigned 32-bit integer
	UnsignedInt uint32
	// Long is signed 64-bit integer, two's complement
	Long int64
	// UnsignedLong is unsigned 64-bit integer
	UnsignedLong uint64
	// String is sequence of Unicode scalar values
	String string

	// Chat is encoded as a String with max length of 32767.
	Chat = String

	// VarInt is variable-length data encoding a two's complement signed 32-bit integer
	VarInt int32

	// UUID encoded as an unsigned 128-bit integer
	UUID uuid.UUID

	// ByteArray is []byte with prefix VarInt as length
	ByteArray []byte
)

// Position is a block location packed into 64 bits:
// x as 26 bits, y as 12 bits and z as 26 bits, each two's complement.
type Position struct {
	X, Y, Z int
}

const (
	MaxVarIntLen = 5
	// MaxStringLen is the maximum number of characters a String may hold.
	MaxStringLen = 32767
)

// readByte reads one byte and reports an exhausted buffer as ErrUnexpectedEOF.
func readByte(r DecodeReader) (byte, error) {
	b, err := r.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0, ErrUnexpectedEOF
	}
	return b, err
}

// ReadNBytes read N bytes from bytes.Reader
func ReadNBytes(r DecodeReader, n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}

	// Don't allocate for a length the buffer can never satisfy.
	if l, ok := r.(interface{ Len() int }); ok && n > l.Len() {
		return nil, ErrUnexpectedEOF
	}

	bb := make([]byte, n)
	if _, err := io.ReadFull(r, bb); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrUnexpectedEOF
		}
		return nil, err
	}
	return bb, nil
}

// Encode a Boolean
func (b Boolean) Encode() []byte {
	if b {
		return []byte{0x01}
	}
	return []byte{0x00}
}

// Decode a Boolean
func (b *Boolean) Decode(r DecodeReader) error {
	v, err := readByte(r)
	if err != nil {
		return err
	}

	*b = v != 0
	return nil
}

// Encode a String
func (s String) Encode() []byte {
	byteString := []byte(s)
	var bb []byte
	bb = append(bb, VarInt(len(byteString)).Encode()...) // len
	bb = append(bb, byteString...)                       // data
	return bb
}

// Decode a String
func (s *String) Decode(r DecodeReader) error {
	var l VarInt // String length
	if err := l.Decode(r); err != nil {
		return err
	}

	if l < 0 {
		return ErrInvalidLength
	}

	// A UTF-8 encoded character takes at most 4 bytes.
	if l > MaxStringLen*4 {
		return ErrStringTooLong
	}

	bb, err := ReadNBytes(r, int(l))
	if err != nil {
		return err
	}

	if !utf8.Valid(bb) {
		return ErrInvalidUTF8
	}

	*s = String(bb)
	return nil
}

// Encode a Byte
func (b Byte) Encode() []byte {
	return []byte{byte(b)}
}

// Decode a Byte
func (b *Byte) Decode(r DecodeReader) error {
	v, err := readByte(r)
	if err != nil {
		return err
	}
	*b = Byte(v)
	return nil
}

// Encode an UnsignedByte
func (b UnsignedByte) Encode() []byte {
	return []byte{byte(b)}
}

// Decode an UnsignedByte
func (b *UnsignedByte) Decode(r DecodeReader) error {
	v, err := readByte(r)
	if err != nil {
		return err
	}
	*b = UnsignedByte(v)
	return nil
}

// Encode a Short
func (s Short) Encode() []byte {
	return UnsignedShort(s).Encode()
}

// Decode a Short
func (s *Short) Decode(r DecodeReader) error {
	var us UnsignedShort
	if err := us.Decode(r); err != nil {
		return err
	}
	*s = Short(us)
	return nil
}

// Encode a Unsigned Short
func (us UnsignedShort) Encode() []byte {
	n := uint16(us)
	return []byte{
		byte(n >> 8),
		byte(n),
	}
}

// Decode a UnsignedShort
func (us *UnsignedShort) Decode(r DecodeReader) error {
	bb, err := ReadNBytes(r, 2)
	if err != nil {
		return err
	}

	*us = UnsignedShort(uint16(bb[0])<<8 | uint16(bb[1]))
	return nil
}

// Encode an Int
func (i Int) Encode() []byte {
	return UnsignedInt(i).Encode()
}

// Decode an Int
func (i *Int) Decode(r DecodeReader) error {
	var ui UnsignedInt
	if err := ui.Decode(r); err != nil {
		return err
	}
	*i = Int(ui)
	return nil
}

// Encode an UnsignedInt
func (ui UnsignedInt) Encode() []byte {
	n := uint32(ui)
	return []byte{
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n),
	}
}

// Decode an UnsignedInt
func (ui *UnsignedInt) Decode(r DecodeReader) error {
	bb, err := ReadNBytes(r, 4)
	if err != nil {
		return err
	}

	*ui = UnsignedInt(uint32(bb[0])<<24 | uint32(bb[1])<<16 | uint32(bb[2])<<8 | uint32(bb[3]))
	return nil
}

// Encode a Long
func (l Long) Encode() []byte {
	return UnsignedLong(l).Encode()
}

// Decode a Long
func (l *Long) Decode(r DecodeReader) error {
	var ul UnsignedLong
	if err := ul.Decode(r); err != nil {
		return err
	}
	*l = Long(ul)
	return nil
}

// Encode an UnsignedLong
func (ul UnsignedLong) Encode() []byte {
	n := uint64(ul)
	return []byte{
		byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n),
	}
}

// Decode an UnsignedLong
func (ul *UnsignedLong) Decode(r DecodeReader) error {
	bb, err := ReadNBytes(r, 8)
	if err != nil {
		return err
	}

	*ul = UnsignedLong(uint64(bb[0])<<56 | uint64(bb[1])<<48 | uint64(bb[2])<<40 | uint64(bb[3])<<32 |
		uint64(bb[4])<<24 | uint64(bb[5])<<16 | uint64(bb[6])<<8 | uint64(bb[7]))
	return nil
}

// Encode a VarInt
func (v VarInt) Encode() []byte {
	num := uint32(v)
	var bb []byte
	for {
		b := num & 0x7F
		num >>= 7
		if num != 0 {
			b |= 0x80
		}
		bb = append(bb, byte(b))
		if num == 0 {
			break
		}
	}
	return bb
}

// Decode a VarInt
func (v *VarInt) Decode(r DecodeReader) error {
	var n uint32
	for i := 0; ; i++ {
		if i >= MaxVarIntLen {
			return ErrMalformedVarInt
		}

		sec, err := readByte(r)
		if err != nil {
			// A continuation byte promised more.
			if i > 0 && errors.Is(err, ErrUnexpectedEOF) {
				return fmt.Errorf("%w: %w", ErrMalformedVarInt, err)
			}
			return err
		}

		n |= uint32(sec&0x7F) << uint32(7*i)

		if sec&0x80 == 0 {
			break
		}
	}

	*v = VarInt(n)
	return nil
}

// Len returns the number of bytes required to encode the VarInt.
func (v VarInt) Len() int {
	switch {
	case v < 0:
		return MaxVarIntLen
	case v < 1<<(7*1):
		return 1
	case v < 1<<(7*2):
		return 2
	case v < 1<<(7*3):
		return 3
	case v < 1<<(7*4):
		return 4
	default:
		return 5
	}
}

// Encode a ByteArray
func (b ByteArray) Encode() []byte {
	return append(VarInt(len(b)).Encode(), b...)
}

// Decode a ByteArray
func (b *ByteArray) Decode(r DecodeReader) error {
	var length VarInt
	if err := length.Decode(r); err != nil {
		return err
	}

	bb, err := ReadNBytes(r, int(length))
	if err != nil {
		return err
	}

	*b = bb
	return nil
}

// Encode a UUID
func (u UUID) Encode() []byte {
	bb := make([]byte, uuid.Size)
	copy(bb, u[:])
	return bb
}

// Decode a UUID
func (u *UUID) Decode(r DecodeReader) error {
	bb, err := ReadNBytes(r, uuid.Size)
	if err != nil {
		return err
	}
	copy((*u)[:], bb)
	return nil
}

// Encode a Position
func (p Position) Encode() []byte {
	x := uint64(int64(p.X) & 0x3FFFFFF)
	y := uint64(int64(p.Y) & 0xFFF)
	z := uint64(int64(p.Z) & 0x3FFFFFF)
	return UnsignedLong(x<<38 | y<<26 | z).Encode()
}

// Decode a Position
func (p *Position) Decode(r DecodeReader) error {
	var l Long
	if err := l.Decode(r); err != nil {
		return err
	}

	v := int64(l)
	p.X = int(v >> 38)
	p.Y = int(v << 26 >> 52)
	p.Z = int(v << 38 >> 38)
	return nil
}
