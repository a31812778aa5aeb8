package login

import (
	"github.com/amethyst-mc/amethyst/protocol"
)

const ClientBoundLoginSuccessPacketID int32 = 0x02

// ClientBoundLoginSuccess carries the player's UUID in its hyphenated
// string form.
type ClientBoundLoginSuccess struct {
	UUID     protocol.String
	Username protocol.String
}

func (pk ClientBoundLoginSuccess) Marshal() protocol.Packet {
	return protocol.MarshalPacket(
		ClientBoundLoginSuccessPacketID,
		pk.UUID,
		pk.Username,
	)
}

func UnmarshalClientBoundLoginSuccess(packet protocol.Packet) (ClientBoundLoginSuccess, error) {
	var pk ClientBoundLoginSuccess

	if packet.ID != ClientBoundLoginSuccessPacketID {
		return pk, protocol.ErrInvalidPacketID
	}

	if err := packet.Scan(
		&pk.UUID,
		&pk.Username,
	); err != nil {
		return pk, err
	}

	return pk, nil
}
