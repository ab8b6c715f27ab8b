// Package tennis implements the scoring state machine of a single tennis game.
package tennis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEvent is returned by ParseEvent for input that names no player.
var ErrUnknownEvent = errors.New("unknown score event")

// Point is a player's score level within a game.
type Point int

// Point levels in the order a player climbs them.
const (
	Love Point = iota
	Fifteen
	Thirty
	Forty
	Advantage
)

func (p Point) String() string {
	switch p {
	case Love:
		return "Love"
	case Fifteen:
		return "15"
	case Thirty:
		return "30"
	case Forty:
		return "40"
	case Advantage:
		return "Ad"
	default:
		return fmt.Sprintf("Point(%d)", int(p))
	}
}

// Result is the outcome of a game. Player1Wins and Player2Wins are terminal.
type Result int

// Game outcomes.
const (
	InProgress Result = iota
	Player1Wins
	Player2Wins
)

func (r Result) String() string {
	switch r {
	case InProgress:
		return "in progress"
	case Player1Wins:
		return "player 1 wins"
	case Player2Wins:
		return "player 2 wins"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Done reports whether the game is decided.
func (r Result) Done() bool {
	return r != InProgress
}

// mirror swaps the winner; InProgress maps to itself.
func (r Result) mirror() Result {
	switch r {
	case Player1Wins:
		return Player2Wins
	case Player2Wins:
		return Player1Wins
	default:
		return r
	}
}

// Event is one point won by the named player.
type Event int

// Score events.
const (
	Player1Scores Event = iota
	Player2Scores
)

func (e Event) String() string {
	switch e {
	case Player1Scores:
		return "player1"
	case Player2Scores:
		return "player2"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// ParseEvent accepts "1", "p1", "player1" or "player 1" (and the player 2
// forms), ignoring case and surrounding space.
func ParseEvent(s string) (Event, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "") {
	case "1", "p1", "player1":
		return Player1Scores, nil
	case "2", "p2", "player2":
		return Player2Scores, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, s)
	}
}
