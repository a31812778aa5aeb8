package status

import (
	"github.com/amethyst-mc/amethyst/protocol"
)

const ServerBoundRequestPacketID int32 = 0x00

type ServerBoundRequest struct{}

func (pk ServerBoundRequest) Marshal() protocol.Packet {
	return protocol.MarshalPacket(
		ServerBoundRequestPacketID,
	)
}

func UnmarshalServerBoundRequest(packet protocol.Packet) (ServerBoundRequest, error) {
	var pk ServerBoundRequest

	if packet.ID != ServerBoundRequestPacketID {
		return pk, protocol.ErrInvalidPacketID
	}

	if err := packet.Scan(); err != nil {
		return pk, err
	}

	return pk, nil
}
