// Package packets maps raw packets to the typed packets of each connection
// state and back.
package packets

import (
	"fmt"

	"github.com/amethyst-mc/amethyst/protocol"
	"github.com/amethyst-mc/amethyst/protocol/handshaking"
	"github.com/amethyst-mc/amethyst/protocol/login"
	"github.com/amethyst-mc/amethyst/protocol/play"
	"github.com/amethyst-mc/amethyst/protocol/status"
)

// Packet is one of the typed packets of the handshaking, status, login
// and play packages.
type Packet interface{}

// serverBoundIDs are the declared server-bound ids of each state.
var serverBoundIDs = map[protocol.State][]int32{
	protocol.StateHandshaking: {handshaking.ServerBoundHandshakePacketID},
	protocol.StateStatus:      {status.ServerBoundRequestPacketID, status.ServerBoundPingPacketID},
	protocol.StateLogin:       {login.ServerBoundLoginStartPacketID, login.ServerBoundEncryptionResponsePacketID},
	protocol.StatePlay:        {play.ServerBoundKeepAlivePacketID},
}

func declaredInOtherState(state protocol.State, id int32) bool {
	for s, ids := range serverBoundIDs {
		if s == state {
			continue
		}
		for _, declared := range ids {
			if declared == id {
				return true
			}
		}
	}
	return false
}

// Decode parses a server-bound packet. The id is looked up in the namespace
// of the given state only.
func Decode(state protocol.State, pk protocol.Packet) (Packet, error) {
	var (
		p   Packet
		err error
	)

	switch {
	case state.IsHandshaking() && pk.ID == handshaking.ServerBoundHandshakePacketID:
		p, err = handshaking.UnmarshalServerBoundHandshake(pk)
	case state.IsStatus() && pk.ID == status.ServerBoundRequestPacketID:
		p, err = status.UnmarshalServerBoundRequest(pk)
	case state.IsStatus() && pk.ID == status.ServerBoundPingPacketID:
		p, err = status.UnmarshalServerBoundPing(pk)
	case state.IsLogin() && pk.ID == login.ServerBoundLoginStartPacketID:
		p, err = login.UnmarshalServerBoundLoginStart(pk)
	case state.IsLogin() && pk.ID == login.ServerBoundEncryptionResponsePacketID:
		p, err = login.UnmarshalServerBoundEncryptionResponse(pk)
	case state.IsPlay() && pk.ID == play.ServerBoundKeepAlivePacketID:
		p, err = play.UnmarshalServerBoundKeepAlive(pk)
	default:
		if declaredInOtherState(state, pk.ID) {
			// Also an unknown id, so play can keep skipping it.
			return nil, fmt.Errorf("%w (%w): 0x%02x in state %s",
				protocol.ErrWrongStateForPacket, protocol.ErrUnknownPacketID, pk.ID, state)
		}
		return nil, fmt.Errorf("%w: 0x%02x in state %s", protocol.ErrUnknownPacketID, pk.ID, state)
	}

	if err != nil {
		return nil, fmt.Errorf("decoding packet 0x%02x in state %s: %w", pk.ID, state, err)
	}
	return p, nil
}

// Encode marshals a client-bound packet. Server-bound packets are rejected
// with protocol.ErrNotEncodable.
func Encode(p Packet) (protocol.Packet, error) {
	switch pk := p.(type) {
	case status.ClientBoundResponse:
		return pk.Marshal(), nil
	case status.ClientBoundPong:
		return pk.Marshal(), nil
	case login.ClientBoundEncryptionRequest:
		return pk.Marshal(), nil
	case login.ClientBoundLoginSuccess:
		return pk.Marshal(), nil
	case login.ClientBoundDisconnect:
		return pk.Marshal(), nil
	case play.ClientBoundKeepAlive:
		return pk.Marshal(), nil
	case play.ClientBoundJoinGame:
		return pk.Marshal(), nil
	case play.ClientBoundSpawnPosition:
		return pk.Marshal(), nil
	case play.ClientBoundHeldItemChange:
		return pk.Marshal(), nil
	case play.ClientBoundPlayerInfo:
		return pk.Marshal()
	case play.ClientBoundDisconnect:
		return pk.Marshal(), nil
	}
	return protocol.Packet{}, fmt.Errorf("%w: %T", protocol.ErrNotEncodable, p)
}
