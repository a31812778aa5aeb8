package play

import (
	"github.com/amethyst-mc/amethyst/protocol"
)

const ClientBoundJoinGamePacketID int32 = 0x01

const (
	GameModeSurvival  = protocol.UnsignedByte(0)
	GameModeCreative  = protocol.UnsignedByte(1)
	GameModeAdventure = protocol.UnsignedByte(2)
	GameModeSpectator = protocol.UnsignedByte(3)
	// GameModeHardcore is a flag OR'ed onto the game mode.
	GameModeHardcore = protocol.UnsignedByte(0x08)
)

const (
	DimensionNether    = protocol.Byte(-1)
	DimensionOverworld = protocol.Byte(0)
	DimensionEnd       = protocol.Byte(1)
)

const (
	DifficultyPeaceful = protocol.UnsignedByte(0)
	DifficultyEasy     = protocol.UnsignedByte(1)
	DifficultyNormal   = protocol.UnsignedByte(2)
	DifficultyHard     = protocol.UnsignedByte(3)
)

type ClientBoundJoinGame struct {
	EntityID         protocol.Int
	GameMode         protocol.UnsignedByte
	Dimension        protocol.Byte
	Difficulty       protocol.UnsignedByte
	MaxPlayers       protocol.UnsignedByte
	LevelType        protocol.String
	ReducedDebugInfo protocol.Boolean
}

func (pk ClientBoundJoinGame) Marshal() protocol.Packet {
	return protocol.MarshalPacket(
		ClientBoundJoinGamePacketID,
		pk.EntityID,
		pk.GameMode,
		pk.Dimension,
		pk.Difficulty,
		pk.MaxPlayers,
		pk.LevelType,
		pk.ReducedDebugInfo,
	)
}

func UnmarshalClientBoundJoinGame(packet protocol.Packet) (ClientBoundJoinGame, error) {
	var pk ClientBoundJoinGame

	if packet.ID != ClientBoundJoinGamePacketID {
		return pk, protocol.ErrInvalidPacketID
	}

	if err := packet.Scan(
		&pk.EntityID,
		&pk.GameMode,
		&pk.Dimension,
		&pk.Difficulty,
		&pk.MaxPlayers,
		&pk.LevelType,
		&pk.ReducedDebugInfo,
	); err != nil {
		return pk, err
	}

	return pk, nil
}
