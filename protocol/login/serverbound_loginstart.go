package login

import (
	"github.com/amethyst-mc/amethyst/protocol"
)

const ServerBoundLoginStartPacketID int32 = 0x00

type ServerBoundLoginStart struct {
	Name protocol.String
}

func (pk ServerBoundLoginStart) Marshal() protocol.Packet {
	return protocol.MarshalPacket(
		ServerBoundLoginStartPacketID,
		pk.Name,
	)
}

func UnmarshalServerBoundLoginStart(packet protocol.Packet) (ServerBoundLoginStart, error) {
	var pk ServerBoundLoginStart

	if packet.ID != ServerBoundLoginStartPacketID {
		return pk, protocol.ErrInvalidPacketID
	}

	if err := packet.Scan(&pk.Name); err != nil {
		return pk, err
	}

	return pk, nil
}
