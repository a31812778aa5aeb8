package webhook

const (
	TopicPlayerJoin  = "PlayerJoin"
	TopicPlayerLeave = "PlayerLeave"
)

// Topics are all topics a webhook can subscribe to.
var Topics = []string{
	TopicPlayerJoin,
	TopicPlayerLeave,
}

func IsTopic(s string) bool {
	for _, t := range Topics {
		if t == s {
			return true
		}
	}
	return false
}

// PlayerEvent is the data of the player topics.
type PlayerEvent struct {
	Username      string `json:"username"`
	UUID          string `json:"uuid"`
	PlayersOnline int    `json:"playersOnline"`
}
