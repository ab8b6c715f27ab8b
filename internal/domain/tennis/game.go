package tennis

import "fmt"

// Game holds both players' points and the outcome. It is a plain value;
// callers own it and mutate it only through Apply.
type Game struct {
	Player1 Point
	Player2 Point
	Result  Result
}

// New returns a game at Love-All.
func New() Game {
	return Game{Player1: Love, Player2: Love, Result: InProgress}
}

// Apply advances the game by one event. Events after the game is decided
// are ignored.
func (g *Game) Apply(ev Event) {
	if g.Result.Done() {
		return
	}

	switch ev {
	case Player1Scores:
		g.player1Scores()
	case Player2Scores:
		*g = g.Mirror()
		g.player1Scores()
		*g = g.Mirror()
	}
}

// Mirror returns the game seen from the other side of the net: points
// swapped and any decided result handed to the other player.
func (g Game) Mirror() Game {
	return Game{Player1: g.Player2, Player2: g.Player1, Result: g.Result.mirror()}
}

// player1Scores is the only transition rule set; player 2 reuses it through
// Mirror. Case order matters: both deuce cases must precede the Forty win.
func (g *Game) player1Scores() {
	switch {
	case g.Player1 == Advantage:
		g.Result = Player1Wins
	case g.Player1 == Forty && g.Player2 == Advantage:
		g.Player2 = Forty
	case g.Player1 == Forty && g.Player2 == Forty:
		g.Player1 = Advantage
	case g.Player1 == Forty:
		g.Result = Player1Wins
	case g.Player1 == Thirty:
		g.Player1 = Forty
	case g.Player1 == Fifteen:
		g.Player1 = Thirty
	case g.Player1 == Love:
		g.Player1 = Fifteen
	}
}

// Winner returns 1 or 2 once the game is decided.
func (g Game) Winner() (int, bool) {
	switch g.Result {
	case Player1Wins:
		return 1, true
	case Player2Wins:
		return 2, true
	default:
		return 0, false
	}
}

// Deuce reports 40-40 with the game still open.
func (g Game) Deuce() bool {
	return !g.Result.Done() && g.Player1 == Forty && g.Player2 == Forty
}

// Call is the umpire's call for the current state, e.g. "30-15", "Deuce",
// "Advantage Player 2" or "Game Player 1".
func (g Game) Call() string {
	if w, ok := g.Winner(); ok {
		return fmt.Sprintf("Game Player %d", w)
	}
	switch {
	case g.Player1 == Advantage:
		return "Advantage Player 1"
	case g.Player2 == Advantage:
		return "Advantage Player 2"
	case g.Deuce():
		return "Deuce"
	case g.Player1 == g.Player2:
		return g.Player1.String() + "-All"
	default:
		return g.Player1.String() + "-" + g.Player2.String()
	}
}

func (g Game) String() string {
	return fmt.Sprintf("%s-%s %s", g.Player1, g.Player2, g.Result)
}
