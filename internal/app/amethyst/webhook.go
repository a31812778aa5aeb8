package amethyst

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/amethyst-mc/amethyst/internal/pkg/java"
	"github.com/amethyst-mc/amethyst/pkg/webhook"
)

const webhookTimeout = 10 * time.Second

// dispatchPlayerEvent sends the event to every webhook subscribed to topic
// without blocking the session.
func (s *Server) dispatchPlayerEvent(topic string, id java.Identity, online int32) {
	cfg := s.settings.Load()
	e := webhook.EventLog{
		Topics:     []string{topic},
		OccurredAt: time.Now(),
		Data: webhook.PlayerEvent{
			Username:      id.Name,
			UUID:          id.UUID.String(),
			PlayersOnline: int(online),
		},
	}

	for _, wh := range cfg.webhooks {
		if !wh.Allows(topic) {
			continue
		}
		wh.HTTPClient = s.httpClient

		s.wg.Add(1)
		go func(wh webhook.Webhook) {
			defer s.wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
			defer cancel()

			if err := wh.DispatchEvent(ctx, e); err != nil {
				s.Logger.Warn("failed to dispatch webhook event",
					zap.String("webhookId", wh.ID),
					zap.String("topic", topic),
					zap.Error(err),
				)
			}
		}(wh)
	}
}
