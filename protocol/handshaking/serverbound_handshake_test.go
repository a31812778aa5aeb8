package handshaking

import (
	"bytes"
	"errors"
	"testing"

	"github.com/amethyst-mc/amethyst/protocol"
)

var handshakeTestTable = []struct {
	packet             protocol.Packet
	unmarshalledPacket ServerBoundHandshake
}{
	{
		packet: protocol.Packet{
			ID: 0x00,
			Data: []byte{
				0x2f,                                                                   // Protocol Version
				0x0b, 0x65, 0x78, 0x61, 0x6d, 0x70, 0x6c, 0x65, 0x2e, 0x63, 0x6f, 0x6d, // Server Address
				0x63, 0xdd, // Server Port
				0x01, // Next State
			},
		},
		unmarshalledPacket: ServerBoundHandshake{
			ProtocolVersion: 47,
			ServerAddress:   "example.com",
			ServerPort:      25565,
			NextState:       ServerBoundHandshakeStatusState,
		},
	},
	{
		packet: protocol.Packet{
			ID: 0x00,
			Data: []byte{
				0x2f,                                                                   // Protocol Version
				0x0b, 0x65, 0x78, 0x61, 0x6d, 0x70, 0x6c, 0x65, 0x2e, 0x63, 0x6f, 0x6d, // Server Address
				0x05, 0x39, // Server Port
				0x02, // Next State
			},
		},
		unmarshalledPacket: ServerBoundHandshake{
			ProtocolVersion: 47,
			ServerAddress:   "example.com",
			ServerPort:      1337,
			NextState:       ServerBoundHandshakeLoginState,
		},
	},
}

func TestServerBoundHandshake_Marshal(t *testing.T) {
	for _, tc := range handshakeTestTable {
		pk := tc.unmarshalledPacket.Marshal()

		if pk.ID != ServerBoundHandshakePacketID {
			t.Error("invalid packet id")
		}

		if !bytes.Equal(pk.Data, tc.packet.Data) {
			t.Errorf("got: %v, want: %v", pk.Data, tc.packet.Data)
		}
	}
}

func TestUnmarshalServerBoundHandshake(t *testing.T) {
	for _, tc := range handshakeTestTable {
		actual, err := UnmarshalServerBoundHandshake(tc.packet)
		if err != nil {
			t.Error(err)
		}

		if actual != tc.unmarshalledPacket {
			t.Errorf("got: %v, want: %v", actual, tc.unmarshalledPacket)
		}
	}
}

func TestUnmarshalServerBoundHandshake_Invalid(t *testing.T) {
	tt := []struct {
		name   string
		packet protocol.Packet
		err    error
	}{
		{
			name:   "WrongID",
			packet: protocol.Packet{ID: 0x01, Data: handshakeTestTable[0].packet.Data},
			err:    protocol.ErrInvalidPacketID,
		},
		{
			name:   "MissingNextState",
			packet: protocol.Packet{ID: 0x00, Data: handshakeTestTable[0].packet.Data[:15]},
			err:    protocol.ErrUnexpectedEOF,
		},
		{
			name:   "TrailingData",
			packet: protocol.Packet{ID: 0x00, Data: append(append([]byte{}, handshakeTestTable[0].packet.Data...), 0x00)},
			err:    protocol.ErrTrailingData,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := UnmarshalServerBoundHandshake(tc.packet); !errors.Is(err, tc.err) {
				t.Errorf("got: %v; want: %v", err, tc.err)
			}
		})
	}
}

func TestServerBoundHandshake_RequestedState(t *testing.T) {
	tt := []struct {
		nextState protocol.UnsignedByte
		state     protocol.State
		err       error
	}{
		{nextState: 1, state: protocol.StateStatus},
		{nextState: 2, state: protocol.StateLogin},
		{nextState: 0, state: protocol.StateHandshaking, err: ErrInvalidNextState},
		{nextState: 3, state: protocol.StateHandshaking, err: ErrInvalidNextState},
	}

	for _, tc := range tt {
		pk := ServerBoundHandshake{NextState: tc.nextState}
		state, err := pk.RequestedState()
		if !errors.Is(err, tc.err) {
			t.Errorf("next state %d: got: %v; want: %v", tc.nextState, err, tc.err)
		}

		if state != tc.state {
			t.Errorf("next state %d: got: %v; want: %v", tc.nextState, state, tc.state)
		}
	}
}

func TestServerBoundHandshake_ParseServerAddress(t *testing.T) {
	tt := []struct {
		addr     protocol.String
		expected string
		forge    bool
	}{
		{addr: "example.com", expected: "example.com"},
		{addr: "example.com.", expected: "example.com"},
		{addr: "example.com" + ForgeAddressSuffix, expected: "example.com", forge: true},
		{addr: "example.com" + Forge2AddressSuffix, expected: "example.com", forge: true},
	}

	for _, tc := range tt {
		pk := ServerBoundHandshake{ServerAddress: tc.addr}
		if pk.ParseServerAddress() != tc.expected {
			t.Errorf("got: %v; want: %v", pk.ParseServerAddress(), tc.expected)
		}

		if pk.IsForgeAddress() != tc.forge {
			t.Errorf("%q: got: %v; want: %v", tc.addr, pk.IsForgeAddress(), tc.forge)
		}
	}
}

func BenchmarkHandshakingServerBoundHandshake_Marshal(b *testing.B) {
	isHandshakePk := ServerBoundHandshake{
		ProtocolVersion: 47,
		ServerAddress:   "spook.space",
		ServerPort:      25565,
		NextState:       1,
	}

	pk := isHandshakePk.Marshal()

	for n := 0; n < b.N; n++ {
		if _, err := UnmarshalServerBoundHandshake(pk); err != nil {
			b.Error(err)
		}
	}
}
