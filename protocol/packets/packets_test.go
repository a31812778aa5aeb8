package packets

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/amethyst-mc/amethyst/protocol"
	"github.com/amethyst-mc/amethyst/protocol/handshaking"
	"github.com/amethyst-mc/amethyst/protocol/login"
	"github.com/amethyst-mc/amethyst/protocol/play"
	"github.com/amethyst-mc/amethyst/protocol/status"
)

func TestDecode(t *testing.T) {
	tt := []struct {
		name     string
		state    protocol.State
		packet   protocol.Packet
		expected Packet
	}{
		{
			name:  "Handshake",
			state: protocol.StateHandshaking,
			packet: handshaking.ServerBoundHandshake{
				ProtocolVersion: 47,
				ServerAddress:   "localhost",
				ServerPort:      25565,
				NextState:       2,
			}.Marshal(),
			expected: handshaking.ServerBoundHandshake{
				ProtocolVersion: 47,
				ServerAddress:   "localhost",
				ServerPort:      25565,
				NextState:       2,
			},
		},
		{
			name:     "StatusRequest",
			state:    protocol.StateStatus,
			packet:   protocol.Packet{ID: 0x00, Data: []byte{}},
			expected: status.ServerBoundRequest{},
		},
		{
			name:     "Ping",
			state:    protocol.StateStatus,
			packet:   protocol.Packet{ID: 0x01, Data: []byte{0, 0, 0, 0, 0, 0, 0, 0x2a}},
			expected: status.ServerBoundPing{Payload: 42},
		},
		{
			name:     "LoginStart",
			state:    protocol.StateLogin,
			packet:   protocol.Packet{ID: 0x00, Data: []byte{0x05, 'N', 'o', 't', 'c', 'h'}},
			expected: login.ServerBoundLoginStart{Name: "Notch"},
		},
		{
			name:  "EncryptionResponse",
			state: protocol.StateLogin,
			packet: protocol.Packet{
				ID:   0x01,
				Data: []byte{0x01, 0xaa, 0x04, 0x01, 0x02, 0x03, 0x04},
			},
			expected: login.ServerBoundEncryptionResponse{
				SharedSecret: protocol.ByteArray{0xaa},
				VerifyToken:  protocol.ByteArray{0x01, 0x02, 0x03, 0x04},
			},
		},
		{
			name:     "KeepAlive",
			state:    protocol.StatePlay,
			packet:   protocol.Packet{ID: 0x00, Data: []byte{0xac, 0x02}},
			expected: play.ServerBoundKeepAlive{KeepAliveID: 300},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Decode(tc.state, tc.packet)
			if err != nil {
				t.Fatal(err)
			}

			if !reflect.DeepEqual(actual, tc.expected) {
				t.Errorf("got: %#v; want: %#v", actual, tc.expected)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	tt := []struct {
		name   string
		state  protocol.State
		packet protocol.Packet
		err    error
	}{
		{
			name:   "UnknownHandshakingID",
			state:  protocol.StateHandshaking,
			packet: protocol.Packet{ID: 0x01, Data: []byte{}},
			err:    protocol.ErrUnknownPacketID,
		},
		{
			name:   "UnknownStatusID",
			state:  protocol.StateStatus,
			packet: protocol.Packet{ID: 0x02, Data: []byte{}},
			err:    protocol.ErrUnknownPacketID,
		},
		{
			name:   "UnknownLoginID",
			state:  protocol.StateLogin,
			packet: protocol.Packet{ID: 0x02, Data: []byte{}},
			err:    protocol.ErrUnknownPacketID,
		},
		{
			name:   "UnknownPlayID",
			state:  protocol.StatePlay,
			packet: protocol.Packet{ID: 0x17, Data: []byte{}},
			err:    protocol.ErrUnknownPacketID,
		},
		{
			name:   "TruncatedPing",
			state:  protocol.StateStatus,
			packet: protocol.Packet{ID: 0x01, Data: []byte{0, 0, 0}},
			err:    protocol.ErrUnexpectedEOF,
		},
		{
			name:   "StatusRequestWithPayload",
			state:  protocol.StateStatus,
			packet: protocol.Packet{ID: 0x00, Data: []byte{0x01}},
			err:    protocol.ErrTrailingData,
		},
		{
			name:   "UnknownState",
			state:  protocol.State(9),
			packet: protocol.Packet{ID: 0x00, Data: []byte{}},
			err:    protocol.ErrUnknownPacketID,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.state, tc.packet); !errors.Is(err, tc.err) {
				t.Errorf("got: %v; want: %v", err, tc.err)
			}
		})
	}
}

func TestDecode_WrongState(t *testing.T) {
	// Ping belongs to the status state.
	_, err := Decode(protocol.StateHandshaking, protocol.Packet{ID: 0x01, Data: []byte{}})
	if !errors.Is(err, protocol.ErrWrongStateForPacket) {
		t.Errorf("got: %v; want: %v", err, protocol.ErrWrongStateForPacket)
	}

	if !errors.Is(err, protocol.ErrUnknownPacketID) {
		t.Errorf("got: %v; want: %v", err, protocol.ErrUnknownPacketID)
	}

	// 0x02 is not declared in any state.
	_, err = Decode(protocol.StateStatus, protocol.Packet{ID: 0x02, Data: []byte{}})
	if errors.Is(err, protocol.ErrWrongStateForPacket) {
		t.Errorf("got: %v; want: %v", err, protocol.ErrUnknownPacketID)
	}
}

func TestDecode_SameIDDependsOnState(t *testing.T) {
	pk := protocol.Packet{ID: 0x00, Data: []byte{0x00}}

	p, err := Decode(protocol.StateLogin, pk)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := p.(login.ServerBoundLoginStart); !ok {
		t.Errorf("got: %T; want: %T", p, login.ServerBoundLoginStart{})
	}

	if _, err := Decode(protocol.StateStatus, pk); !errors.Is(err, protocol.ErrTrailingData) {
		t.Errorf("got: %v; want: %v", err, protocol.ErrTrailingData)
	}
}

func TestEncode(t *testing.T) {
	tt := []struct {
		name   string
		packet Packet
		id     int32
		data   []byte
	}{
		{
			name:   "Pong",
			packet: status.ClientBoundPong{Payload: 42},
			id:     0x01,
			data:   []byte{0, 0, 0, 0, 0, 0, 0, 0x2a},
		},
		{
			name:   "StatusResponse",
			packet: status.ClientBoundResponse{JSONResponse: "{}"},
			id:     0x00,
			data:   []byte{0x02, '{', '}'},
		},
		{
			name: "EncryptionRequest",
			packet: login.ClientBoundEncryptionRequest{
				PublicKey:   protocol.ByteArray{0x30},
				VerifyToken: protocol.ByteArray{0x01, 0x02, 0x03, 0x04},
			},
			id:   0x01,
			data: []byte{0x00, 0x01, 0x30, 0x04, 0x01, 0x02, 0x03, 0x04},
		},
		{
			name:   "LoginSuccess",
			packet: login.ClientBoundLoginSuccess{UUID: "u", Username: "n"},
			id:     0x02,
			data:   []byte{0x01, 'u', 0x01, 'n'},
		},
		{
			name:   "DisconnectLogin",
			packet: login.ClientBoundDisconnect{Reason: "r"},
			id:     0x00,
			data:   []byte{0x01, 'r'},
		},
		{
			name:   "KeepAlive",
			packet: play.ClientBoundKeepAlive{KeepAliveID: 1},
			id:     0x00,
			data:   []byte{0x01},
		},
		{
			name:   "SpawnPosition",
			packet: play.ClientBoundSpawnPosition{},
			id:     0x05,
			data:   []byte{0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:   "HeldItemChange",
			packet: play.ClientBoundHeldItemChange{Slot: 3},
			id:     0x09,
			data:   []byte{0x03},
		},
		{
			name:   "PlayerInfo",
			packet: play.ClientBoundPlayerInfo{Action: play.PlayerInfoActionRemovePlayer},
			id:     0x38,
			data:   []byte{0x04, 0x00},
		},
		{
			name:   "DisconnectPlay",
			packet: play.ClientBoundDisconnect{Reason: "r"},
			id:     0x40,
			data:   []byte{0x01, 'r'},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			first, err := Encode(tc.packet)
			if err != nil {
				t.Fatal(err)
			}

			second, err := Encode(tc.packet)
			if err != nil {
				t.Fatal(err)
			}

			if first.ID != tc.id {
				t.Errorf("packet id: got: %v; want: %v", first.ID, tc.id)
			}

			if !bytes.Equal(first.Data, tc.data) {
				t.Errorf("got: %v; want: %v", first.Data, tc.data)
			}

			if !bytes.Equal(first.Marshal(), second.Marshal()) {
				t.Errorf("encoding is not stable: %v != %v", first.Marshal(), second.Marshal())
			}
		})
	}
}

func TestEncode_JoinGame(t *testing.T) {
	pk, err := Encode(play.ClientBoundJoinGame{LevelType: "default"})
	if err != nil {
		t.Fatal(err)
	}

	if pk.ID != play.ClientBoundJoinGamePacketID {
		t.Errorf("packet id: got: %v; want: %v", pk.ID, play.ClientBoundJoinGamePacketID)
	}
}

func TestEncode_NotEncodable(t *testing.T) {
	tt := []Packet{
		handshaking.ServerBoundHandshake{},
		status.ServerBoundRequest{},
		status.ServerBoundPing{},
		login.ServerBoundLoginStart{},
		login.ServerBoundEncryptionResponse{},
		play.ServerBoundKeepAlive{},
		nil,
	}

	for _, p := range tt {
		if _, err := Encode(p); !errors.Is(err, protocol.ErrNotEncodable) {
			t.Errorf("%T: got: %v; want: %v", p, err, protocol.ErrNotEncodable)
		}
	}
}

func TestEncode_MixedPlayerInfo(t *testing.T) {
	_, err := Encode(play.ClientBoundPlayerInfo{
		Action: play.PlayerInfoActionAddPlayer,
		Players: []play.PlayerInfoEntry{
			{Data: &play.RemovePlayer{}},
		},
	})
	if !errors.Is(err, play.ErrMixedPlayerInfoActions) {
		t.Errorf("got: %v; want: %v", err, play.ErrMixedPlayerInfoActions)
	}
}
