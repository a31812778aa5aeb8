package amethyst

import (
	"fmt"
	"os"

	"github.com/vincent-petithory/dataurl"

	"github.com/amethyst-mc/amethyst/internal/pkg/config"
	"github.com/amethyst-mc/amethyst/pkg/ipfilter"
	"github.com/amethyst-mc/amethyst/pkg/webhook"
	"github.com/amethyst-mc/amethyst/protocol"
	"github.com/amethyst-mc/amethyst/protocol/play"
)

// settings is an immutable snapshot of the config with every value the
// server needs already parsed.
type settings struct {
	config.Config

	gameMode   protocol.UnsignedByte
	dimension  protocol.Byte
	difficulty protocol.UnsignedByte
	favicon    string
	ipFilter   ipfilter.IPFilter
	webhooks   []webhook.Webhook
}

func newSettings(cfg config.Config) (*settings, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := settings{Config: cfg}
	s.gameMode, _ = cfg.Play.ParseGameMode()
	s.dimension, _ = cfg.Play.ParseDimension()
	s.difficulty, _ = cfg.Play.ParseDifficulty()

	var err error
	s.favicon, err = loadFavicon(cfg.Status.IconPath)
	if err != nil {
		return nil, err
	}

	for _, wh := range cfg.Webhooks {
		s.webhooks = append(s.webhooks, webhook.Webhook{
			ID:            wh.ID,
			URL:           wh.URL,
			AllowedTopics: wh.Topics,
		})
	}

	mode, _ := ipfilter.ParseMode(cfg.IPFilter.Mode)
	s.ipFilter, err = ipfilter.FromCIDRs(mode, cfg.IPFilter.CIDRs)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// loadFavicon reads a PNG and encodes it as a data URL. An empty path
// means no favicon.
func loadFavicon(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	bb, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("loading favicon: %w", err)
	}

	return dataurl.New(bb, "image/png").String(), nil
}

func (s *settings) joinGame(entityID int32) play.ClientBoundJoinGame {
	return play.ClientBoundJoinGame{
		EntityID:         protocol.Int(entityID),
		GameMode:         s.gameMode,
		Dimension:        s.dimension,
		Difficulty:       s.difficulty,
		MaxPlayers:       protocol.UnsignedByte(s.Status.MaxPlayers),
		LevelType:        protocol.String(s.Play.LevelType),
		ReducedDebugInfo: protocol.Boolean(s.Play.ReducedDebugInfo),
	}
}
