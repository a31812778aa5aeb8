package protocol

import "errors"

var (
	ErrMalformedVarInt = errors.New("malformed varint")
	ErrUnexpectedEOF   = errors.New("unexpected end of packet data")
	ErrInvalidLength   = errors.New("invalid length prefix")
	ErrStringTooLong   = errors.New("string exceeds maximum length")
	ErrInvalidUTF8     = errors.New("string is not valid UTF-8")
	ErrTrailingData    = errors.New("trailing data after last packet field")
	ErrPacketTooLarge  = errors.New("packet exceeds maximum size")

	ErrInvalidPacketID     = errors.New("invalid packet id")
	ErrUnknownPacketID     = errors.New("unknown packet id")
	ErrWrongStateForPacket = errors.New("packet id belongs to another state")
	ErrNotEncodable        = errors.New("packet is not encodable")
)
