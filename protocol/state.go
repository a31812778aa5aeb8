package protocol

// State is the protocol phase of a connection. It selects the namespace of
// packet ids that may be decoded.
type State byte

const (
	StateHandshaking State = iota
	StateStatus
	StateLogin
	StatePlay
)

func (state State) String() string {
	switch state {
	case StateHandshaking:
		return "Handshaking"
	case StateStatus:
		return "Status"
	case StateLogin:
		return "Login"
	case StatePlay:
		return "Play"
	}
	return "Unknown"
}

func (state State) IsHandshaking() bool {
	return state == StateHandshaking
}

func (state State) IsStatus() bool {
	return state == StateStatus
}

func (state State) IsLogin() bool {
	return state == StateLogin
}

func (state State) IsPlay() bool {
	return state == StatePlay
}

// CanTransitionTo reports whether next directly follows state.
// Connections only ever move forward.
func (state State) CanTransitionTo(next State) bool {
	switch state {
	case StateHandshaking:
		return next == StateStatus || next == StateLogin
	case StateLogin:
		return next == StatePlay
	}
	return false
}
