package amethyst

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/amethyst-mc/amethyst/internal/pkg/config"
	"github.com/amethyst-mc/amethyst/internal/pkg/java"
	"github.com/amethyst-mc/amethyst/pkg/chat"
	"github.com/amethyst-mc/amethyst/pkg/webhook"
	"github.com/amethyst-mc/amethyst/protocol"
	"github.com/amethyst-mc/amethyst/protocol/play"
	"github.com/amethyst-mc/amethyst/protocol/status"
)

const maxPlayerSampleSize = 12

var ErrServerClosed = errors.New("server closed")

// Server accepts Minecraft clients and runs one session per connection.
// It is the java.Host of all its sessions.
type Server struct {
	Logger *zap.Logger
	// Authenticator replaces the authenticator derived from the online
	// mode when set.
	Authenticator java.Authenticator

	keyPair    *java.KeyPair
	settings   atomic.Pointer[settings]
	filter     Filter
	httpClient *http.Client

	entityIDs atomic.Int32
	online    atomic.Int32

	mu       sync.Mutex
	listener net.Listener
	closed   bool
	sessions map[*java.Session]net.Conn
	players  map[uuid.UUID]java.Identity
	wg       sync.WaitGroup
}

// NewServer validates cfg and prepares a server. A new key pair is
// generated if keyPair is nil.
func NewServer(cfg config.Config, keyPair *java.KeyPair) (*Server, error) {
	s, err := newSettings(cfg)
	if err != nil {
		return nil, err
	}

	if keyPair == nil {
		keyPair, err = java.GenerateKeyPair()
		if err != nil {
			return nil, err
		}
	}

	var filter Filter
	if cfg.RateLimiter.RequestLimit > 0 {
		filter = append(filter, RateLimitByIP(cfg.RateLimiter.RequestLimit, cfg.RateLimiter.WindowLength))
	}

	srv := &Server{
		Logger:     zap.NewNop(),
		keyPair:    keyPair,
		filter:     filter,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		sessions:   map[*java.Session]net.Conn{},
		players:    map[uuid.UUID]java.Identity{},
	}
	srv.settings.Store(s)
	return srv, nil
}

// Reload swaps the config used by new sessions and status requests.
// Changes to the listener and the metrics endpoint need a restart.
func (s *Server) Reload(cfg config.Config) error {
	next, err := newSettings(cfg)
	if err != nil {
		return err
	}

	prev := s.settings.Swap(next)
	if prev.Bind != next.Bind ||
		prev.ProxyProtocol.Receive != next.ProxyProtocol.Receive ||
		prev.Prometheus.Bind != next.Prometheus.Bind ||
		prev.RateLimiter != next.RateLimiter {
		s.Logger.Warn("listener settings changed; restart to apply them")
	}

	s.Logger.Info("reloaded config")
	return nil
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	cfg := s.settings.Load()
	l, err := net.Listen("tcp", cfg.Bind)
	if err != nil {
		return err
	}

	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is done or the server is
// closed. It returns after every session has ended.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	cfg := s.settings.Load()
	if cfg.ProxyProtocol.Receive {
		pl, err := wrapProxyProtocol(l, cfg.ProxyProtocol.TrustedCIDRs)
		if err != nil {
			l.Close()
			return err
		}
		l = pl
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		l.Close()
		return ErrServerClosed
	}
	s.listener = l
	s.mu.Unlock()

	s.Logger.Info("listening for connections", logListener(l)...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return s.Close()
	})

	if cfg.Prometheus.Bind != "" {
		g.Go(func() error {
			return serveMetrics(ctx, cfg.Prometheus.Bind, s.Logger)
		})
	}

	g.Go(func() error {
		defer cancel()
		return s.acceptLoop(ctx, l)
	})

	err := g.Wait()
	s.wg.Wait()
	return err
}

func (s *Server) acceptLoop(ctx context.Context, l net.Listener) error {
	for {
		c, err := l.Accept()
		if errors.Is(err, net.ErrClosed) {
			return nil
		} else if err != nil {
			s.Logger.Debug("error accepting new connection", zap.Error(err))
			continue
		}

		s.wg.Add(1)
		go s.handleConn(ctx, c)
	}
}

func (s *Server) handleConn(ctx context.Context, c net.Conn) {
	defer s.wg.Done()
	logger := s.Logger.With(logConn(c)...)

	cfg := s.settings.Load()
	filter := append(Filter{FilterByIP(cfg.ipFilter)}, s.filter...)
	if err := filter.Filter(c); err != nil {
		filteredConns.Inc()
		logger.Debug("filtered connection", zap.Error(err))
		c.Close()
		return
	}

	session := java.NewSession(
		java.NewConn(c, int(cfg.MaxPacketSize.Bytes()), cfg.ClientTimeout),
		java.SessionConfig{
			KeyPair:           s.keyPair,
			Authenticator:     s.authenticator(cfg),
			Host:              s,
			OnlineMode:        cfg.OnlineMode,
			KeepAliveInterval: cfg.KeepAliveInterval,
			Logger:            logger,
		},
	)

	if !s.track(session, c) {
		c.Close()
		return
	}
	defer s.untrack(session)

	logger.Debug("serving connection")
	err := session.Serve(ctx)
	recordSession(session, err)
	if err != nil {
		logger.Debug("session ended with error", zap.Error(err))
	}

	if err := c.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		logger.Debug("closing connection", zap.Error(err))
	}
}

func (s *Server) authenticator(cfg *settings) java.Authenticator {
	if s.Authenticator != nil {
		return s.Authenticator
	}

	if cfg.OnlineMode {
		return java.HTTPAuthenticator{
			BaseURL: cfg.SessionServerURL,
			Client:  s.httpClient,
		}
	}
	return java.OfflineAuthenticator{}
}

func (s *Server) track(session *java.Session, c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.sessions[session] = c
	return true
}

func (s *Server) untrack(session *java.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, session)
}

// Close stops accepting connections and disconnects every session.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true

	l := s.listener
	sessions := make(map[*java.Session]net.Conn, len(s.sessions))
	for session, c := range s.sessions {
		sessions[session] = c
	}
	s.mu.Unlock()

	var err error
	if l != nil {
		if lErr := l.Close(); lErr != nil && !errors.Is(lErr, net.ErrClosed) {
			err = multierr.Append(err, lErr)
		}
	}

	reason := chat.Text("Server closed")
	for session, c := range sessions {
		if dcErr := session.Disconnect(reason); dcErr != nil && !errors.Is(dcErr, java.ErrDisconnected) {
			s.Logger.Debug("disconnecting session", zap.Error(dcErr))
		}

		if cErr := c.Close(); cErr != nil && !errors.Is(cErr, net.ErrClosed) {
			err = multierr.Append(err, cErr)
		}
	}

	return err
}

// Addr is the address the server listens on or nil.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) PlayerCount() int {
	return int(s.online.Load())
}

func (s *Server) StatusResponse() status.ResponseJSON {
	cfg := s.settings.Load()
	return status.ResponseJSON{
		Version: status.VersionJSON{
			Name:     cfg.Status.VersionName,
			Protocol: java.ProtocolVersion,
		},
		Players: status.PlayersJSON{
			Max:    cfg.Status.MaxPlayers,
			Online: s.PlayerCount(),
			Sample: s.playerSample(),
		},
		Description: chat.Text(cfg.Status.MOTD),
		Favicon:     cfg.favicon,
	}
}

func (s *Server) playerSample() []status.PlayerSampleJSON {
	s.mu.Lock()
	sample := make([]status.PlayerSampleJSON, 0, len(s.players))
	for _, id := range s.players {
		sample = append(sample, status.PlayerSampleJSON{
			Name: id.Name,
			ID:   id.UUID.String(),
		})
	}
	s.mu.Unlock()

	sort.Slice(sample, func(i, j int) bool {
		return sample[i].Name < sample[j].Name
	})

	if len(sample) > maxPlayerSampleSize {
		sample = sample[:maxPlayerSampleSize]
	}
	return sample
}

func (s *Server) JoinGame() play.ClientBoundJoinGame {
	return s.settings.Load().joinGame(s.entityIDs.Inc())
}

func (s *Server) SpawnPosition() protocol.Position {
	return s.settings.Load().Play.Spawn.Position()
}

func (s *Server) PlayerJoined(id java.Identity) {
	s.mu.Lock()
	s.players[id.UUID] = id
	s.mu.Unlock()

	online := s.online.Inc()
	playersOnline.Inc()
	s.Logger.Info("player joined", logIdentity(id)...)
	s.dispatchPlayerEvent(webhook.TopicPlayerJoin, id, online)
}

func (s *Server) PlayerLeft(id java.Identity) {
	s.mu.Lock()
	delete(s.players, id.UUID)
	s.mu.Unlock()

	online := s.online.Dec()
	playersOnline.Dec()
	s.Logger.Info("player left", logIdentity(id)...)
	s.dispatchPlayerEvent(webhook.TopicPlayerLeave, id, online)
}
