package login

import (
	"github.com/amethyst-mc/amethyst/pkg/chat"
	"github.com/amethyst-mc/amethyst/protocol"
)

const ClientBoundDisconnectPacketID int32 = 0x00

type ClientBoundDisconnect struct {
	Reason protocol.Chat
}

// NewClientBoundDisconnect builds a disconnect packet with the reason encoded
// as a chat component.
func NewClientBoundDisconnect(reason chat.Component) ClientBoundDisconnect {
	return ClientBoundDisconnect{
		Reason: protocol.Chat(reason.JSON()),
	}
}

func (pk ClientBoundDisconnect) Marshal() protocol.Packet {
	return protocol.MarshalPacket(
		ClientBoundDisconnectPacketID,
		pk.Reason,
	)
}

func UnmarshalClientBoundDisconnect(packet protocol.Packet) (ClientBoundDisconnect, error) {
	var pk ClientBoundDisconnect

	if packet.ID != ClientBoundDisconnectPacketID {
		return pk, protocol.ErrInvalidPacketID
	}

	if err := packet.Scan(&pk.Reason); err != nil {
		return pk, err
	}

	return pk, nil
}
