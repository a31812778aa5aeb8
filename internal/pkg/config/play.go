package config

import (
	"fmt"
	"strings"

	"github.com/amethyst-mc/amethyst/protocol"
	"github.com/amethyst-mc/amethyst/protocol/play"
)

func (cfg PlayConfig) ParseGameMode() (protocol.UnsignedByte, error) {
	var gm protocol.UnsignedByte
	switch strings.ToLower(cfg.GameMode) {
	case "survival":
		gm = play.GameModeSurvival
	case "creative":
		gm = play.GameModeCreative
	case "adventure":
		gm = play.GameModeAdventure
	case "spectator":
		gm = play.GameModeSpectator
	default:
		return 0, fmt.Errorf("%w: unknown game mode %q", ErrInvalidConfig, cfg.GameMode)
	}

	if cfg.Hardcore {
		gm |= play.GameModeHardcore
	}
	return gm, nil
}

func (cfg PlayConfig) ParseDimension() (protocol.Byte, error) {
	switch strings.ToLower(cfg.Dimension) {
	case "nether":
		return play.DimensionNether, nil
	case "overworld":
		return play.DimensionOverworld, nil
	case "end":
		return play.DimensionEnd, nil
	}
	return 0, fmt.Errorf("%w: unknown dimension %q", ErrInvalidConfig, cfg.Dimension)
}

func (cfg PlayConfig) ParseDifficulty() (protocol.UnsignedByte, error) {
	switch strings.ToLower(cfg.Difficulty) {
	case "peaceful":
		return play.DifficultyPeaceful, nil
	case "easy":
		return play.DifficultyEasy, nil
	case "normal":
		return play.DifficultyNormal, nil
	case "hard":
		return play.DifficultyHard, nil
	}
	return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, cfg.Difficulty)
}

func (cfg SpawnConfig) Position() protocol.Position {
	return protocol.Position{X: cfg.X, Y: cfg.Y, Z: cfg.Z}
}
