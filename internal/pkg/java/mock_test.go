//go:generate mockgen -destination=java_mock_test.go -package=java_test github.com/amethyst-mc/amethyst/internal/pkg/java Authenticator,Host
package java_test

import (
	"sync"

	"github.com/amethyst-mc/amethyst/internal/pkg/java"
	"github.com/amethyst-mc/amethyst/protocol"
	"github.com/amethyst-mc/amethyst/protocol/play"
	"github.com/amethyst-mc/amethyst/protocol/status"
	gomock "github.com/golang/mock/gomock"
)

var (
	testKeyPair     *java.KeyPair
	testKeyPairOnce sync.Once
)

func keyPair(t interface{ Fatal(...any) }) *java.KeyPair {
	testKeyPairOnce.Do(func() {
		kp, err := java.GenerateKeyPair()
		if err != nil {
			t.Fatal(err)
		}
		testKeyPair = kp
	})
	return testKeyPair
}

func mockHost(ctrl *gomock.Controller) *MockHost {
	h := NewMockHost(ctrl)
	h.EXPECT().StatusResponse().AnyTimes().Return(status.ResponseJSON{
		Version: status.VersionJSON{
			Name:     java.VersionName,
			Protocol: java.ProtocolVersion,
		},
		Players: status.PlayersJSON{
			Max: 10,
		},
	})
	h.EXPECT().JoinGame().AnyTimes().Return(play.ClientBoundJoinGame{
		EntityID:   1,
		GameMode:   play.GameModeCreative,
		Dimension:  play.DimensionOverworld,
		Difficulty: play.DifficultyPeaceful,
		MaxPlayers: 10,
		LevelType:  "default",
	})
	h.EXPECT().SpawnPosition().AnyTimes().Return(protocol.Position{X: 0, Y: 64, Z: 0})
	return h
}
