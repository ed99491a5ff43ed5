package team

// State represents the classification of a team.
type State string

const (
	// StateNone is the state of a team before its first classification.
	StateNone State = ""

	// StateContender indicates a team still eligible to win.
	StateContender State = "contender"

	// StateWinner indicates the last remaining contender.
	StateWinner State = "winner"

	// StateLoser indicates a contender that lost its means to play.
	StateLoser State = "loser"

	// StateSpectator indicates a team that could not play when teams were created.
	StateSpectator State = "spectator"
)

// String returns the string representation of the state.
func (s State) String() string {
	if s == StateNone {
		return "none"
	}
	return string(s)
}

// IsTerminal returns true if this state ends the team's participation.
func (s State) IsTerminal() bool {
	return s == StateWinner || s == StateLoser || s == StateSpectator
}

// IsValid returns true if this is a recognized state value.
func (s State) IsValid() bool {
	switch s {
	case StateNone, StateContender, StateWinner, StateLoser, StateSpectator:
		return true
	default:
		return false
	}
}
