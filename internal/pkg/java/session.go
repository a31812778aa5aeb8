package java

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/amethyst-mc/amethyst/internal/pkg/java/sha1"
	"github.com/amethyst-mc/amethyst/pkg/chat"
	"github.com/amethyst-mc/amethyst/protocol"
	"github.com/amethyst-mc/amethyst/protocol/handshaking"
	"github.com/amethyst-mc/amethyst/protocol/login"
	"github.com/amethyst-mc/amethyst/protocol/packets"
	"github.com/amethyst-mc/amethyst/protocol/play"
	"github.com/amethyst-mc/amethyst/protocol/status"
)

const (
	ProtocolVersion = 47
	VersionName     = "1.8.9"
)

// Host is the server a session belongs to.
type Host interface {
	StatusResponse() status.ResponseJSON
	// JoinGame returns the join packet for a new player. Every call
	// allocates a new entity id.
	JoinGame() play.ClientBoundJoinGame
	SpawnPosition() protocol.Position
	PlayerJoined(id Identity)
	PlayerLeft(id Identity)
}

type SessionConfig struct {
	KeyPair       *KeyPair
	Authenticator Authenticator
	Host          Host
	OnlineMode    bool
	// KeepAliveInterval of zero disables keep alive packets.
	KeepAliveInterval time.Duration
	Logger            *zap.Logger
	// Rand is the source of verify tokens and keep alive ids.
	// It defaults to crypto/rand.
	Rand io.Reader
}

// Session drives a single client connection through the handshaking,
// status, login and play states.
type Session struct {
	cfg    SessionConfig
	conn   *Conn
	logger *zap.Logger

	state        atomic.Uint32
	disconnected atomic.Bool
	statusDone   bool

	serverAddr   string
	loginStarted bool
	nickname     string
	verifyToken  []byte
	identity     *Identity

	// switchMu orders Disconnect calls from other goroutines against the
	// encryption switch.
	switchMu          sync.Mutex
	encryptionPending bool
}

func NewSession(c *Conn, cfg SessionConfig) *Session {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	if cfg.Rand == nil {
		cfg.Rand = rand.Reader
	}

	if cfg.Authenticator == nil {
		if cfg.OnlineMode {
			cfg.Authenticator = HTTPAuthenticator{}
		} else {
			cfg.Authenticator = OfflineAuthenticator{}
		}
	}

	return &Session{
		cfg:    cfg,
		conn:   c,
		logger: cfg.Logger,
	}
}

func (s *Session) State() protocol.State {
	return protocol.State(s.state.Load())
}

func (s *Session) Conn() *Conn {
	return s.conn
}

func (s *Session) ServerAddr() string {
	return s.serverAddr
}

func (s *Session) Nickname() string {
	return s.nickname
}

// Identity is nil until the player is authenticated.
func (s *Session) Identity() *Identity {
	return s.identity
}

func (s *Session) IsDisconnected() bool {
	return s.disconnected.Load()
}

func (s *Session) setState(next protocol.State) error {
	cur := s.State()
	if !cur.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot switch from %s to %s", ErrUnexpectedPacket, cur, next)
	}

	s.state.Store(uint32(next))
	s.logger.Debug("switched state",
		zap.Stringer("from", cur),
		zap.Stringer("to", next),
	)
	return nil
}

// Serve reads and handles packets until the client leaves, the exchange is
// complete or an error occurs. The caller owns the connection and closes it
// afterwards.
func (s *Session) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	defer func() {
		if s.identity != nil && s.State().IsPlay() {
			s.cfg.Host.PlayerLeft(*s.identity)
		}
	}()

	for !s.statusDone && !s.disconnected.Load() {
		pk, err := s.conn.ReadPacket()
		if err != nil {
			if isClosed(err) {
				return nil
			}
			return err
		}

		if err := s.HandlePacket(ctx, pk); err != nil {
			return err
		}
	}

	return nil
}

// isClosed reports whether err means that either side hung up.
func isClosed(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed)
}

// HandlePackets handles the packets in order and stops at the first error.
func (s *Session) HandlePackets(ctx context.Context, pks ...protocol.Packet) error {
	for _, pk := range pks {
		if err := s.HandlePacket(ctx, pk); err != nil {
			return err
		}
	}
	return nil
}

// HandlePacket decodes pk in the current state and handles it. Every error
// outside of the play state is fatal and leaves the session disconnected.
func (s *Session) HandlePacket(ctx context.Context, pk protocol.Packet) error {
	if s.disconnected.Load() {
		return ErrDisconnected
	}

	if err := s.handlePacket(ctx, pk); err != nil {
		if !s.State().IsPlay() {
			// Handshaking and status have no disconnect packet and login
			// already sent one.
			_ = s.disconnect(loginDisconnectReason(err))
		}
		return err
	}
	return nil
}

func (s *Session) handlePacket(ctx context.Context, pk protocol.Packet) error {
	state := s.State()
	p, err := packets.Decode(state, pk)
	if err != nil {
		if state.IsPlay() && errors.Is(err, protocol.ErrUnknownPacketID) {
			s.logger.Debug("skipping unknown packet",
				zap.Int32("packetId", pk.ID),
			)
			return nil
		}

		if state.IsLogin() {
			return s.abortLogin(err)
		}
		return err
	}

	switch p := p.(type) {
	case handshaking.ServerBoundHandshake:
		return s.handleHandshake(p)
	case status.ServerBoundRequest:
		return s.handleStatusRequest()
	case status.ServerBoundPing:
		return s.handlePing(p)
	case login.ServerBoundLoginStart:
		if err := s.handleLoginStart(ctx, p); err != nil {
			return s.abortLogin(err)
		}
	case login.ServerBoundEncryptionResponse:
		if err := s.handleEncryptionResponse(ctx, p); err != nil {
			return s.abortLogin(err)
		}
	case play.ServerBoundKeepAlive:
		s.logger.Debug("received keep alive",
			zap.Int32("keepAliveId", int32(p.KeepAliveID)),
		)
	}

	return nil
}

func (s *Session) handleHandshake(pk handshaking.ServerBoundHandshake) error {
	next, err := pk.RequestedState()
	if err != nil {
		return err
	}

	if err := s.setState(next); err != nil {
		return err
	}

	s.serverAddr = pk.ParseServerAddress()
	s.logger = s.logger.With(
		zap.String("requestedServerAddr", s.serverAddr),
		zap.Int32("protocolVersion", int32(pk.ProtocolVersion)),
	)

	if next.IsLogin() && pk.ProtocolVersion != ProtocolVersion {
		return s.abortLogin(fmt.Errorf("%w: %d", ErrUnsupportedProtocolVersion, pk.ProtocolVersion))
	}
	return nil
}

func (s *Session) handleStatusRequest() error {
	pk, err := status.NewClientBoundResponse(s.cfg.Host.StatusResponse())
	if err != nil {
		return err
	}

	return s.writePacket(pk)
}

func (s *Session) handlePing(pk status.ServerBoundPing) error {
	s.statusDone = true
	return s.writePacket(status.ClientBoundPong(pk))
}

func (s *Session) handleLoginStart(ctx context.Context, pk login.ServerBoundLoginStart) error {
	if s.loginStarted {
		return fmt.Errorf("%w: duplicate login start", ErrUnexpectedPacket)
	}
	s.loginStarted = true
	s.nickname = string(pk.Name)
	s.logger = s.logger.With(zap.String("username", s.nickname))

	if !s.cfg.OnlineMode {
		id, err := s.cfg.Authenticator.Authenticate(ctx, s.nickname, "")
		if err != nil {
			return rejected(err)
		}
		return s.completeLogin(ctx, id)
	}

	verifyToken, err := generateVerifyToken(s.cfg.Rand)
	if err != nil {
		return err
	}
	s.verifyToken = verifyToken

	s.switchMu.Lock()
	defer s.switchMu.Unlock()

	// The client switches to encryption as soon as it answers this request.
	s.encryptionPending = true
	return s.writePacket(login.ClientBoundEncryptionRequest{
		ServerID:    "",
		PublicKey:   s.cfg.KeyPair.PublicKey(),
		VerifyToken: verifyToken,
	})
}

func (s *Session) handleEncryptionResponse(ctx context.Context, pk login.ServerBoundEncryptionResponse) error {
	if s.verifyToken == nil {
		return fmt.Errorf("%w: no encryption request was sent", ErrUnexpectedPacket)
	}

	sharedSecret, err := s.switchEncryption(pk)
	if err != nil {
		return err
	}

	hash := sha1.SessionHash("", sharedSecret, s.cfg.KeyPair.PublicKey())
	id, err := s.cfg.Authenticator.Authenticate(ctx, s.nickname, hash)
	if err != nil {
		return rejected(err)
	}

	return s.completeLogin(ctx, id)
}

// switchEncryption checks the verify token and enables encryption with the
// shared secret. The switch is over when it returns, even if it failed.
func (s *Session) switchEncryption(pk login.ServerBoundEncryptionResponse) ([]byte, error) {
	defer func() {
		s.switchMu.Lock()
		s.encryptionPending = false
		s.switchMu.Unlock()
	}()

	verifyToken := s.verifyToken
	s.verifyToken = nil

	decVerifyToken, err := s.cfg.KeyPair.Decrypt(pk.VerifyToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerifyTokenMismatch, err)
	}

	if !bytes.Equal(verifyToken, decVerifyToken) {
		return nil, ErrVerifyTokenMismatch
	}

	sharedSecret, err := s.cfg.KeyPair.Decrypt(pk.SharedSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	if err := s.conn.EnableEncryption(sharedSecret); err != nil {
		return nil, err
	}
	return sharedSecret, nil
}

func rejected(err error) error {
	if errors.Is(err, ErrSessionVerificationRejected) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrSessionVerificationRejected, err)
}

func (s *Session) completeLogin(ctx context.Context, id Identity) error {
	if id.Name == "" {
		id.Name = s.nickname
	}
	s.identity = &id

	if err := s.writePacket(login.ClientBoundLoginSuccess{
		UUID:     protocol.String(id.UUID.String()),
		Username: protocol.String(id.Name),
	}); err != nil {
		return err
	}

	if err := s.setState(protocol.StatePlay); err != nil {
		return err
	}
	s.cfg.Host.PlayerJoined(id)
	s.logger.Info("player joined",
		zap.Stringer("playerUUID", id.UUID),
	)

	joinGame := s.cfg.Host.JoinGame()
	if err := s.writePackets(
		joinGame,
		play.ClientBoundSpawnPosition{Location: s.cfg.Host.SpawnPosition()},
		play.ClientBoundHeldItemChange{Slot: 0},
		play.ClientBoundPlayerInfo{
			Action: play.PlayerInfoActionAddPlayer,
			Players: []play.PlayerInfoEntry{
				addPlayerEntry(id, joinGame.GameMode&^play.GameModeHardcore),
			},
		},
	); err != nil {
		return err
	}

	if s.cfg.KeepAliveInterval > 0 {
		go s.keepAlive(ctx)
	}
	return nil
}

func addPlayerEntry(id Identity, gameMode protocol.UnsignedByte) play.PlayerInfoEntry {
	props := make([]play.PlayerProperty, len(id.Properties))
	for i, p := range id.Properties {
		props[i] = play.PlayerProperty{
			Name:      protocol.String(p.Name),
			Value:     protocol.String(p.Value),
			IsSigned:  p.Signature != "",
			Signature: protocol.String(p.Signature),
		}
	}

	return play.PlayerInfoEntry{
		UUID: protocol.UUID(id.UUID),
		Data: &play.AddPlayer{
			Name:       protocol.String(id.Name),
			Properties: props,
			GameMode:   protocol.VarInt(gameMode),
		},
	}
}

func (s *Session) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if s.disconnected.Load() {
			return
		}

		var bb [4]byte
		if _, err := io.ReadFull(s.cfg.Rand, bb[:]); err != nil {
			s.logger.Debug("generating keep alive id", zap.Error(err))
			return
		}
		keepAliveID := protocol.VarInt(binary.BigEndian.Uint32(bb[:]) & 0x7fffffff)

		if err := s.writePacket(play.ClientBoundKeepAlive{KeepAliveID: keepAliveID}); err != nil {
			s.logger.Debug("sending keep alive", zap.Error(err))
			return
		}
	}
}

func loginDisconnectReason(err error) chat.Component {
	switch {
	case errors.Is(err, ErrVerifyTokenMismatch):
		return chat.Text("verify token mismatch")
	case errors.Is(err, ErrDecryptionFailed):
		return chat.Text("invalid shared secret")
	case errors.Is(err, ErrSessionVerificationRejected):
		return chat.Text("failed to verify username")
	case errors.Is(err, ErrUnsupportedProtocolVersion):
		return chat.Text("Outdated client! Please use " + VersionName)
	case errors.Is(err, ErrUnexpectedPacket):
		return chat.Text("unexpected packet")
	}
	return chat.Text("invalid packet")
}

// abortLogin tells the client why its login failed and returns err.
func (s *Session) abortLogin(err error) error {
	s.logger.Debug("login failed", zap.Error(err))
	if dcErr := s.disconnect(loginDisconnectReason(err)); dcErr != nil && !errors.Is(dcErr, ErrDisconnected) {
		s.logger.Debug("sending disconnect", zap.Error(dcErr))
	}
	return err
}

// Disconnect sends the reason to the client if the current state has a
// disconnect packet. The session refuses all packets afterwards.
//
// It is safe to call from other goroutines. Between the encryption request
// and the server enabling encryption the client may already expect
// encrypted packets, so no packet is sent in that window.
func (s *Session) Disconnect(reason chat.Component) error {
	s.switchMu.Lock()
	defer s.switchMu.Unlock()

	if s.encryptionPending {
		if !s.disconnected.CompareAndSwap(false, true) {
			return ErrDisconnected
		}
		return nil
	}
	return s.disconnect(reason)
}

// disconnect is Disconnect for the goroutine that reads the connection. It
// knows which packets the client has sent and never skips the packet.
func (s *Session) disconnect(reason chat.Component) error {
	if !s.disconnected.CompareAndSwap(false, true) {
		return ErrDisconnected
	}

	switch s.State() {
	case protocol.StateLogin:
		return s.writePacket(login.NewClientBoundDisconnect(reason))
	case protocol.StatePlay:
		return s.writePacket(play.NewClientBoundDisconnect(reason))
	}
	return nil
}

func (s *Session) writePacket(p packets.Packet) error {
	pk, err := packets.Encode(p)
	if err != nil {
		return err
	}
	return s.conn.WritePacket(pk)
}

func (s *Session) writePackets(ps ...packets.Packet) error {
	pks := make([]protocol.Packet, len(ps))
	for i, p := range ps {
		pk, err := packets.Encode(p)
		if err != nil {
			return err
		}
		pks[i] = pk
	}
	return s.conn.WritePackets(pks...)
}
