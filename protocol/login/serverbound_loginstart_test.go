package login

import (
	"errors"
	"testing"

	"github.com/amethyst-mc/amethyst/protocol"
)

func TestUnmarshalServerBoundLoginStart(t *testing.T) {
	tt := []struct {
		packet             protocol.Packet
		unmarshalledPacket ServerBoundLoginStart
	}{
		{
			packet: protocol.Packet{
				ID:   0x00,
				Data: []byte{0x00},
			},
			unmarshalledPacket: ServerBoundLoginStart{
				Name: protocol.String(""),
			},
		},
		{
			packet: protocol.Packet{
				ID:   0x00,
				Data: []byte{0x0d, 0x48, 0x65, 0x6c, 0x6c, 0x6f, 0x2c, 0x20, 0x57, 0x6f, 0x72, 0x6c, 0x64, 0x21},
			},
			unmarshalledPacket: ServerBoundLoginStart{
				Name: protocol.String("Hello, World!"),
			},
		},
	}

	for _, tc := range tt {
		loginStart, err := UnmarshalServerBoundLoginStart(tc.packet)
		if err != nil {
			t.Error(err)
		}

		if loginStart.Name != tc.unmarshalledPacket.Name {
			t.Errorf("got: %v, want: %v", loginStart.Name, tc.unmarshalledPacket.Name)
		}
	}
}

func TestUnmarshalServerBoundLoginStart_Invalid(t *testing.T) {
	tt := []struct {
		name   string
		packet protocol.Packet
		err    error
	}{
		{
			name:   "WrongID",
			packet: protocol.Packet{ID: 0x01, Data: []byte{0x00}},
			err:    protocol.ErrInvalidPacketID,
		},
		{
			name:   "TruncatedName",
			packet: protocol.Packet{ID: 0x00, Data: []byte{0x05, 0x41}},
			err:    protocol.ErrUnexpectedEOF,
		},
		{
			name:   "Empty",
			packet: protocol.Packet{ID: 0x00, Data: []byte{}},
			err:    protocol.ErrUnexpectedEOF,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := UnmarshalServerBoundLoginStart(tc.packet); !errors.Is(err, tc.err) {
				t.Errorf("got: %v; want: %v", err, tc.err)
			}
		})
	}
}
