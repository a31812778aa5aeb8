package play

import (
	"github.com/amethyst-mc/amethyst/protocol"
)

const ClientBoundHeldItemChangePacketID int32 = 0x09

// ClientBoundHeldItemChange selects the hotbar slot (0-8).
type ClientBoundHeldItemChange struct {
	Slot protocol.UnsignedByte
}

func (pk ClientBoundHeldItemChange) Marshal() protocol.Packet {
	return protocol.MarshalPacket(
		ClientBoundHeldItemChangePacketID,
		pk.Slot,
	)
}

func UnmarshalClientBoundHeldItemChange(packet protocol.Packet) (ClientBoundHeldItemChange, error) {
	var pk ClientBoundHeldItemChange

	if packet.ID != ClientBoundHeldItemChangePacketID {
		return pk, protocol.ErrInvalidPacketID
	}

	if err := packet.Scan(&pk.Slot); err != nil {
		return pk, err
	}

	return pk, nil
}
