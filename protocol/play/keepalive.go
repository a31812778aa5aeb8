package play

import (
	"github.com/amethyst-mc/amethyst/protocol"
)

const (
	ClientBoundKeepAlivePacketID int32 = 0x00
	ServerBoundKeepAlivePacketID int32 = 0x00
)

// ClientBoundKeepAlive is sent periodically. The client answers with a
// ServerBoundKeepAlive carrying the same ID.
type ClientBoundKeepAlive struct {
	KeepAliveID protocol.VarInt
}

func (pk ClientBoundKeepAlive) Marshal() protocol.Packet {
	return protocol.MarshalPacket(
		ClientBoundKeepAlivePacketID,
		pk.KeepAliveID,
	)
}

func UnmarshalClientBoundKeepAlive(packet protocol.Packet) (ClientBoundKeepAlive, error) {
	var pk ClientBoundKeepAlive

	if packet.ID != ClientBoundKeepAlivePacketID {
		return pk, protocol.ErrInvalidPacketID
	}

	if err := packet.Scan(&pk.KeepAliveID); err != nil {
		return pk, err
	}

	return pk, nil
}

type ServerBoundKeepAlive struct {
	KeepAliveID protocol.VarInt
}

func (pk ServerBoundKeepAlive) Marshal() protocol.Packet {
	return protocol.MarshalPacket(
		ServerBoundKeepAlivePacketID,
		pk.KeepAliveID,
	)
}

func UnmarshalServerBoundKeepAlive(packet protocol.Packet) (ServerBoundKeepAlive, error) {
	var pk ServerBoundKeepAlive

	if packet.ID != ServerBoundKeepAlivePacketID {
		return pk, protocol.ErrInvalidPacketID
	}

	if err := packet.Scan(&pk.KeepAliveID); err != nil {
		return pk, err
	}

	return pk, nil
}
