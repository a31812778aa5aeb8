package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxDataLength is the default upper bound of a single frame (id + payload).
const MaxDataLength = 0x200000

// Packet is the raw representation of message that is send between the client and the server
type Packet struct {
	ID   int32
	Data []byte
}

// Scan decodes and copies the Packet data into the fields.
// All of the data has to be consumed by the fields.
func (pk Packet) Scan(fields ...FieldDecoder) error {
	r := bytes.NewReader(pk.Data)
	if err := ScanFields(r, fields...); err != nil {
		return err
	}

	if r.Len() > 0 {
		return fmt.Errorf("%w: %d bytes left", ErrTrailingData, r.Len())
	}
	return nil
}

// Marshal encodes the packet and all it's fields
func (pk Packet) Marshal() []byte {
	data := VarInt(pk.ID).Encode()
	data = append(data, pk.Data...)

	packedData := VarInt(int32(len(data))).Encode()
	return append(packedData, data...)
}

// ScanFields decodes a byte stream into fields
func ScanFields(r DecodeReader, fields ...FieldDecoder) error {
	for i, field := range fields {
		if err := field.Decode(r); err != nil {
			return fmt.Errorf("scanning packet field[%d]: %w", i, err)
		}
	}
	return nil
}

// MarshalPacket transforms an ID and Fields into a Packet
func MarshalPacket(id int32, fields ...FieldEncoder) Packet {
	pk := Packet{
		ID:   id,
		Data: []byte{},
	}

	for _, v := range fields {
		pk.Data = append(pk.Data, v.Encode()...)
	}

	return pk
}

// ReadPacketBytes decodes a byte stream and cuts the first Packet as a byte array out.
// Frames longer than maxLength are rejected before any allocation.
func ReadPacketBytes(r DecodeReader, maxLength int) ([]byte, error) {
	var packetLength VarInt
	if err := packetLength.Decode(r); err != nil {
		return nil, err
	}

	if packetLength < 1 {
		return nil, fmt.Errorf("%w: packet length too short", ErrInvalidLength)
	}

	if int(packetLength) > maxLength {
		return nil, fmt.Errorf("%w: %d > %d", ErrPacketTooLarge, packetLength, maxLength)
	}

	data := make([]byte, packetLength)
	if _, err := io.ReadFull(r, data); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading the content of the packet failed: %w", err)
	}

	return data, nil
}

// ReadPacket decodes a byte stream and cuts the first Packet out
func ReadPacket(r DecodeReader, maxLength int) (Packet, error) {
	data, err := ReadPacketBytes(r, maxLength)
	if err != nil {
		return Packet{}, err
	}

	br := bytes.NewReader(data)
	var id VarInt
	if err := id.Decode(br); err != nil {
		return Packet{}, err
	}

	return Packet{
		ID:   int32(id),
		Data: data[len(data)-br.Len():],
	}, nil
}
