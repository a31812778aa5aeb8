package java

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gofrs/uuid"
)

const DefaultSessionServerURL = "https://sessionserver.mojang.com"

type Property struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// Identity is an authenticated player.
type Identity struct {
	UUID       uuid.UUID
	Name       string
	Properties []Property
}

// Textures returns the skin property if the profile has one.
func (id Identity) Textures() (Property, bool) {
	for _, p := range id.Properties {
		if p.Name == "textures" {
			return p, true
		}
	}
	return Property{}, false
}

type Authenticator interface {
	Authenticate(ctx context.Context, username, sessionHash string) (Identity, error)
}

func sessionServerURLHasJoined(baseURL, username, sessionHash string) string {
	return fmt.Sprintf(
		"%s/session/minecraft/hasJoined?%s",
		baseURL,
		url.Values{
			"username": {username},
			"serverId": {sessionHash},
		}.Encode(),
	)
}

// HTTPAuthenticator asks a session server whether the player has joined
// with the given session hash.
type HTTPAuthenticator struct {
	BaseURL string
	Client  *http.Client
}

func (auth HTTPAuthenticator) Authenticate(ctx context.Context, username, sessionHash string) (Identity, error) {
	baseURL := auth.BaseURL
	if baseURL == "" {
		baseURL = DefaultSessionServerURL
	}

	client := auth.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sessionServerURLHasJoined(baseURL, username, sessionHash), nil)
	if err != nil {
		return Identity{}, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrSessionVerificationRejected, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("%w: unable to authenticate session (%s)", ErrSessionVerificationRejected, resp.Status)
	}

	dto := &struct {
		ID         string     `json:"id"`
		Name       string     `json:"name"`
		Properties []Property `json:"properties"`
	}{}

	if err := json.NewDecoder(resp.Body).Decode(dto); err != nil {
		return Identity{}, fmt.Errorf("%w: decoding profile: %v", ErrSessionVerificationRejected, err)
	}

	playerUUID, err := uuid.FromString(dto.ID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrSessionVerificationRejected, err)
	}

	return Identity{
		UUID:       playerUUID,
		Name:       dto.Name,
		Properties: dto.Properties,
	}, nil
}

// OfflineAuthenticator accepts every player and derives the UUID from the
// name like the vanilla server does in offline mode.
type OfflineAuthenticator struct{}

func (OfflineAuthenticator) Authenticate(_ context.Context, username, _ string) (Identity, error) {
	return Identity{
		UUID: OfflineUUID(username),
		Name: username,
	}, nil
}

// OfflineUUID returns the version 3 UUID of "OfflinePlayer:<username>".
func OfflineUUID(username string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	sum[6] = sum[6]&0x0f | 0x30
	sum[8] = sum[8]&0x3f | 0x80
	return uuid.UUID(sum)
}
