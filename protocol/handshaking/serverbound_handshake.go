package handshaking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amethyst-mc/amethyst/protocol"
)

const (
	ServerBoundHandshakePacketID int32 = 0x00

	ServerBoundHandshakeStatusState = protocol.UnsignedByte(1)
	ServerBoundHandshakeLoginState  = protocol.UnsignedByte(2)

	ForgeAddressSuffix  = "\x00FML\x00"
	Forge2AddressSuffix = "\x00FML2\x00"
)

var ErrInvalidNextState = errors.New("invalid next state")

type ServerBoundHandshake struct {
	ProtocolVersion protocol.VarInt
	ServerAddress   protocol.String
	ServerPort      protocol.UnsignedShort
	NextState       protocol.UnsignedByte
}

func (pk ServerBoundHandshake) Marshal() protocol.Packet {
	return protocol.MarshalPacket(
		ServerBoundHandshakePacketID,
		pk.ProtocolVersion,
		pk.ServerAddress,
		pk.ServerPort,
		pk.NextState,
	)
}

func UnmarshalServerBoundHandshake(packet protocol.Packet) (ServerBoundHandshake, error) {
	var pk ServerBoundHandshake

	if packet.ID != ServerBoundHandshakePacketID {
		return pk, protocol.ErrInvalidPacketID
	}

	if err := packet.Scan(
		&pk.ProtocolVersion,
		&pk.ServerAddress,
		&pk.ServerPort,
		&pk.NextState,
	); err != nil {
		return pk, err
	}

	return pk, nil
}

func (pk ServerBoundHandshake) IsStatusRequest() bool {
	return pk.NextState == ServerBoundHandshakeStatusState
}

func (pk ServerBoundHandshake) IsLoginRequest() bool {
	return pk.NextState == ServerBoundHandshakeLoginState
}

// RequestedState maps the next state field to the connection state the
// client asks for. Anything but status or login is rejected.
func (pk ServerBoundHandshake) RequestedState() (protocol.State, error) {
	switch {
	case pk.IsStatusRequest():
		return protocol.StateStatus, nil
	case pk.IsLoginRequest():
		return protocol.StateLogin, nil
	}
	return protocol.StateHandshaking, fmt.Errorf("%w: %d", ErrInvalidNextState, pk.NextState)
}

func (pk ServerBoundHandshake) IsForgeAddress() bool {
	addr := string(pk.ServerAddress)

	if strings.HasSuffix(addr, ForgeAddressSuffix) {
		return true
	}

	if strings.HasSuffix(addr, Forge2AddressSuffix) {
		return true
	}

	return false
}

func (pk ServerBoundHandshake) ParseServerAddress() string {
	addr := string(pk.ServerAddress)
	addr = strings.TrimSuffix(addr, ForgeAddressSuffix)
	addr = strings.TrimSuffix(addr, Forge2AddressSuffix)
	addr = strings.Trim(addr, ".")
	return addr
}
