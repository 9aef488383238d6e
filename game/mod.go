package game

import (
	"errors"
	"fmt"
)

// Player identifies a seat at the table. Seats are numbered from 0.
type Player int

// NoPlayer is reported by Winner when a game is unfinished or drawn.
const NoPlayer Player = -1

// Key is a canonical fingerprint of a position and the player to move.
// Game-equivalent states must produce the same Key.
type Key uint64

// Action is a game specific move. Searchers only compare actions for
// equality, so implementations must be comparable values.
type Action interface {
	fmt.Stringer
}

// State should be immutable - Apply always returns a new state and never
// mutates the receiver.
type State interface {
	Player() Player
	LegalActions() []Action
	Validate(Action) bool
	// Apply returns ErrInvalidAction when the action is not legal in the state.
	Apply(Action) (State, error)
	IsTerminal() bool
	Winner() Player
	Clone() State
	Key() Key
}

// Evaluate scores a state for player; larger is better for player.
type Evaluate func(state State, player Player) (float64, error)

// ScoreAction scores a candidate action in state before it is played.
type ScoreAction func(state State, action Action) (float64, error)

var (
	ErrInvalidState  = errors.New("invalid state")
	ErrInvalidAction = errors.New("invalid action")
	ErrNoLegalAction = errors.New("no legal action")
)

// InvalidAction wraps ErrInvalidAction with the offending action.
func InvalidAction(action Action) error {
	return fmt.Errorf("%w: %v", ErrInvalidAction, action)
}

// Outcome is the result class of a finished game from one player's view.
type Outcome int

const (
	Loss Outcome = iota
	Draw
	Win
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "loss"
	}
}

// OutcomeFor classifies winner from player's perspective.
func OutcomeFor(winner, player Player) Outcome {
	switch winner {
	case player:
		return Win
	case NoPlayer:
		return Draw
	default:
		return Loss
	}
}
