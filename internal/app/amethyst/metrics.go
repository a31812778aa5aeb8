package amethyst

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/amethyst-mc/amethyst/internal/pkg/java"
	"github.com/amethyst-mc/amethyst/protocol"
)

const (
	handshakeTypeStatus  = "status"
	handshakeTypeLogin   = "login"
	handshakeTypeInvalid = "invalid"

	loginResultSuccess  = "success"
	loginResultRejected = "rejected"
	loginResultFailed   = "failed"
)

var (
	handshakeCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "amethyst_handshakes",
		Help: "The total number of handshakes per requested state",
	}, []string{"type"})
	loginCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "amethyst_logins",
		Help: "The total number of login attempts per result",
	}, []string{"result"})
	playersOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "amethyst_players_online",
		Help: "The number of players currently in the play state",
	})
	filteredConns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "amethyst_filtered_connections",
		Help: "The total number of connections dropped by a filter",
	})
)

// handshakeType labels a finished session by the state it reached.
func handshakeType(state protocol.State) string {
	switch state {
	case protocol.StateStatus:
		return handshakeTypeStatus
	case protocol.StateLogin, protocol.StatePlay:
		return handshakeTypeLogin
	}
	return handshakeTypeInvalid
}

// loginResult labels a finished login session. Status and invalid
// sessions have no login result.
func loginResult(s *java.Session, err error) (string, bool) {
	switch s.State() {
	case protocol.StateLogin, protocol.StatePlay:
	default:
		return "", false
	}

	if s.Identity() != nil {
		return loginResultSuccess, true
	}

	if errors.Is(err, java.ErrSessionVerificationRejected) ||
		errors.Is(err, java.ErrVerifyTokenMismatch) ||
		errors.Is(err, java.ErrDecryptionFailed) {
		return loginResultRejected, true
	}
	return loginResultFailed, true
}

func recordSession(s *java.Session, err error) {
	handshakeCount.WithLabelValues(handshakeType(s.State())).Inc()
	if result, ok := loginResult(s, err); ok {
		loginCount.WithLabelValues(result).Inc()
	}
}

// serveMetrics serves the prometheus handler on bind until ctx is done.
func serveMetrics(ctx context.Context, bind string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              bind,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting prometheus listener", zap.String("address", bind))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
