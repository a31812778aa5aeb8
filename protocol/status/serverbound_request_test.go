package status

import (
	"errors"
	"testing"

	"github.com/amethyst-mc/amethyst/protocol"
)

func TestServerBoundRequest_Marshal(t *testing.T) {
	tt := []struct {
		packet          ServerBoundRequest
		marshaledPacket protocol.Packet
	}{
		{
			packet: ServerBoundRequest{},
			marshaledPacket: protocol.Packet{
				ID:   0x00,
				Data: []byte{},
			},
		},
	}

	for _, tc := range tt {
		pk := tc.packet.Marshal()

		if pk.ID != ServerBoundRequestPacketID {
			t.Error("invalid packet id")
		}

		if len(pk.Data) != 0 {
			t.Errorf("got: %v, want: %v", pk.Data, tc.marshaledPacket.Data)
		}
	}
}

func TestUnmarshalServerBoundRequest(t *testing.T) {
	tt := []struct {
		name   string
		packet protocol.Packet
		err    error
	}{
		{
			name:   "Empty",
			packet: protocol.Packet{ID: 0x00, Data: []byte{}},
		},
		{
			name:   "WrongID",
			packet: protocol.Packet{ID: 0x01, Data: []byte{}},
			err:    protocol.ErrInvalidPacketID,
		},
		{
			name:   "TrailingData",
			packet: protocol.Packet{ID: 0x00, Data: []byte{0x01}},
			err:    protocol.ErrTrailingData,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := UnmarshalServerBoundRequest(tc.packet); !errors.Is(err, tc.err) {
				t.Errorf("got: %v; want: %v", err, tc.err)
			}
		})
	}
}
