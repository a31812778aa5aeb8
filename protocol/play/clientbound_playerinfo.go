package play

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/amethyst-mc/amethyst/protocol"
)

const ClientBoundPlayerInfoPacketID int32 = 0x38

var (
	ErrMixedPlayerInfoActions  = errors.New("player info entries do not share the packet action")
	ErrUnknownPlayerInfoAction = errors.New("unknown player info action")
)

type PlayerInfoAction protocol.VarInt

const (
	PlayerInfoActionAddPlayer PlayerInfoAction = iota
	PlayerInfoActionUpdateGameMode
	PlayerInfoActionUpdateLatency
	PlayerInfoActionUpdateDisplayName
	PlayerInfoActionRemovePlayer
)

func (a PlayerInfoAction) String() string {
	switch a {
	case PlayerInfoActionAddPlayer:
		return "AddPlayer"
	case PlayerInfoActionUpdateGameMode:
		return "UpdateGameMode"
	case PlayerInfoActionUpdateLatency:
		return "UpdateLatency"
	case PlayerInfoActionUpdateDisplayName:
		return "UpdateDisplayName"
	case PlayerInfoActionRemovePlayer:
		return "RemovePlayer"
	}
	return fmt.Sprintf("PlayerInfoAction(%d)", int32(a))
}

// PlayerInfoData is the action specific part of a PlayerInfoEntry.
type PlayerInfoData interface {
	protocol.Field
	Action() PlayerInfoAction
}

func newPlayerInfoData(action PlayerInfoAction) (PlayerInfoData, error) {
	switch action {
	case PlayerInfoActionAddPlayer:
		return &AddPlayer{}, nil
	case PlayerInfoActionUpdateGameMode:
		return &UpdateGameMode{}, nil
	case PlayerInfoActionUpdateLatency:
		return &UpdateLatency{}, nil
	case PlayerInfoActionUpdateDisplayName:
		return &UpdateDisplayName{}, nil
	case PlayerInfoActionRemovePlayer:
		return &RemovePlayer{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownPlayerInfoAction, int32(action))
}

type PlayerInfoEntry struct {
	UUID protocol.UUID
	Data PlayerInfoData
}

// ClientBoundPlayerInfo updates the tab list. Every entry has to carry data
// for the packet's Action.
type ClientBoundPlayerInfo struct {
	Action  PlayerInfoAction
	Players []PlayerInfoEntry
}

func (pk ClientBoundPlayerInfo) Validate() error {
	if _, err := newPlayerInfoData(pk.Action); err != nil {
		return err
	}

	for i, p := range pk.Players {
		if p.Data == nil || p.Data.Action() != pk.Action {
			return fmt.Errorf("%w: entry %d", ErrMixedPlayerInfoActions, i)
		}
	}
	return nil
}

func (pk ClientBoundPlayerInfo) Marshal() (protocol.Packet, error) {
	if err := pk.Validate(); err != nil {
		return protocol.Packet{}, err
	}

	fields := []protocol.FieldEncoder{
		protocol.VarInt(pk.Action),
		protocol.VarInt(len(pk.Players)),
	}
	for _, p := range pk.Players {
		fields = append(fields, p.UUID, p.Data)
	}

	return protocol.MarshalPacket(ClientBoundPlayerInfoPacketID, fields...), nil
}

func UnmarshalClientBoundPlayerInfo(packet protocol.Packet) (ClientBoundPlayerInfo, error) {
	var pk ClientBoundPlayerInfo

	if packet.ID != ClientBoundPlayerInfoPacketID {
		return pk, protocol.ErrInvalidPacketID
	}

	r := bytes.NewReader(packet.Data)
	var action, count protocol.VarInt
	if err := protocol.ScanFields(r, &action, &count); err != nil {
		return pk, err
	}

	if count < 0 {
		return pk, fmt.Errorf("%w: %d players", protocol.ErrInvalidLength, count)
	}

	pk.Action = PlayerInfoAction(action)
	if _, err := newPlayerInfoData(pk.Action); err != nil {
		return pk, err
	}

	for i := 0; i < int(count); i++ {
		data, err := newPlayerInfoData(pk.Action)
		if err != nil {
			return pk, err
		}

		var entry PlayerInfoEntry
		if err := protocol.ScanFields(r, &entry.UUID, data); err != nil {
			return pk, fmt.Errorf("player info entry %d: %w", i, err)
		}
		entry.Data = data
		pk.Players = append(pk.Players, entry)
	}

	if r.Len() > 0 {
		return pk, fmt.Errorf("%w: %d bytes left", protocol.ErrTrailingData, r.Len())
	}

	return pk, nil
}

type PlayerProperty struct {
	Name      protocol.String
	Value     protocol.String
	IsSigned  protocol.Boolean
	Signature protocol.String
}

func (p PlayerProperty) Encode() []byte {
	bb := append(p.Name.Encode(), p.Value.Encode()...)
	bb = append(bb, p.IsSigned.Encode()...)
	if p.IsSigned {
		bb = append(bb, p.Signature.Encode()...)
	}
	return bb
}

func (p *PlayerProperty) Decode(r protocol.DecodeReader) error {
	if err := protocol.ScanFields(r, &p.Name, &p.Value, &p.IsSigned); err != nil {
		return err
	}

	if !p.IsSigned {
		return nil
	}
	return p.Signature.Decode(r)
}

// OptionalChat is a chat message prefixed by a presence flag.
type OptionalChat struct {
	Present protocol.Boolean
	Chat    protocol.Chat
}

func (c OptionalChat) Encode() []byte {
	if !c.Present {
		return c.Present.Encode()
	}
	return append(c.Present.Encode(), c.Chat.Encode()...)
}

func (c *OptionalChat) Decode(r protocol.DecodeReader) error {
	if err := c.Present.Decode(r); err != nil {
		return err
	}

	if !c.Present {
		return nil
	}
	return c.Chat.Decode(r)
}

type AddPlayer struct {
	Name        protocol.String
	Properties  []PlayerProperty
	GameMode    protocol.VarInt
	Ping        protocol.VarInt
	DisplayName OptionalChat
}

func (AddPlayer) Action() PlayerInfoAction {
	return PlayerInfoActionAddPlayer
}

func (p AddPlayer) Encode() []byte {
	bb := p.Name.Encode()
	bb = append(bb, protocol.VarInt(len(p.Properties)).Encode()...)
	for _, prop := range p.Properties {
		bb = append(bb, prop.Encode()...)
	}
	bb = append(bb, p.GameMode.Encode()...)
	bb = append(bb, p.Ping.Encode()...)
	return append(bb, p.DisplayName.Encode()...)
}

func (p *AddPlayer) Decode(r protocol.DecodeReader) error {
	var count protocol.VarInt
	if err := protocol.ScanFields(r, &p.Name, &count); err != nil {
		return err
	}

	if count < 0 {
		return fmt.Errorf("%w: %d properties", protocol.ErrInvalidLength, count)
	}

	p.Properties = nil
	for i := 0; i < int(count); i++ {
		var prop PlayerProperty
		if err := prop.Decode(r); err != nil {
			return err
		}
		p.Properties = append(p.Properties, prop)
	}

	return protocol.ScanFields(r, &p.GameMode, &p.Ping, &p.DisplayName)
}

type UpdateGameMode struct {
	GameMode protocol.VarInt
}

func (UpdateGameMode) Action() PlayerInfoAction {
	return PlayerInfoActionUpdateGameMode
}

func (p UpdateGameMode) Encode() []byte {
	return p.GameMode.Encode()
}

func (p *UpdateGameMode) Decode(r protocol.DecodeReader) error {
	return p.GameMode.Decode(r)
}

type UpdateLatency struct {
	Ping protocol.VarInt
}

func (UpdateLatency) Action() PlayerInfoAction {
	return PlayerInfoActionUpdateLatency
}

func (p UpdateLatency) Encode() []byte {
	return p.Ping.Encode()
}

func (p *UpdateLatency) Decode(r protocol.DecodeReader) error {
	return p.Ping.Decode(r)
}

type UpdateDisplayName struct {
	DisplayName OptionalChat
}

func (UpdateDisplayName) Action() PlayerInfoAction {
	return PlayerInfoActionUpdateDisplayName
}

func (p UpdateDisplayName) Encode() []byte {
	return p.DisplayName.Encode()
}

func (p *UpdateDisplayName) Decode(r protocol.DecodeReader) error {
	return p.DisplayName.Decode(r)
}

type RemovePlayer struct{}

func (RemovePlayer) Action() PlayerInfoAction {
	return PlayerInfoActionRemovePlayer
}

func (RemovePlayer) Encode() []byte {
	return []byte{}
}

func (*RemovePlayer) Decode(protocol.DecodeReader) error {
	return nil
}
