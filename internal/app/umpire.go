// Package service wraps a single tennis game with logging, metrics and an
// event feed reader.
package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/deuce/internal/domain/tennis"
	"github.com/okian/deuce/pkg/logger"
	"github.com/okian/deuce/pkg/metrics"
)

// Recorder receives game metrics. *metrics.Manager implements it.
type Recorder interface {
	RecordEventApplied(event string)
	RecordEventIgnored()
	RecordDeuce()
	RecordGameCompleted(winner string, points int)
}

// Umpire owns one game. It is not safe for concurrent use; run one Umpire
// per game.
type Umpire struct {
	id       string
	game     tennis.Game
	played   int
	ignored  int
	logger   logger.Logger
	recorder Recorder
}

// Option applies a configuration option to the Umpire.
type Option func(*Umpire)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(u *Umpire) {
		if l != nil {
			u.logger = l
		}
	}
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(u *Umpire) {
		if id != "" {
			u.id = id
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(u *Umpire) {
		if r != nil {
			u.recorder = r
		}
	}
}

// WithGame starts the umpire from an existing game state instead of Love-All.
func WithGame(g tennis.Game) Option {
	return func(u *Umpire) {
		u.game = g
	}
}

// New constructs an Umpire at Love-All. Without options it logs through the
// global logger and records on whichever manager metrics.Configure installed
// most recently, resolved at each call.
func New(opts ...Option) *Umpire {
	u := &Umpire{
		id:   uuid.NewString(),
		game: tennis.New(),
	}

	for _, opt := range opts {
		opt(u)
	}

	if u.logger == nil {
		u.logger = logger.Named("umpire")
	}
	if u.recorder == nil {
		u.recorder = metrics.Global
	}
	return u
}

// ID returns the session id.
func (u *Umpire) ID() string { return u.id }

// Game returns the current game state.
func (u *Umpire) Game() tennis.Game { return u.game }

// Stats summarizes the session.
type Stats struct {
	ID      string
	Call    string
	Played  int
	Ignored int
	Done    bool
}

// Stats returns the session counters.
func (u *Umpire) Stats() Stats {
	return Stats{
		ID:      u.id,
		Call:    u.game.Call(),
		Played:  u.played,
		Ignored: u.ignored,
		Done:    u.game.Result.Done(),
	}
}

// Score applies one event and returns the resulting game.
func (u *Umpire) Score(ctx context.Context, ev tennis.Event) tennis.Game {
	if u.game.Result.Done() {
		u.ignored++
		u.recorder.RecordEventIgnored()
		u.logger.Warn(ctx, "game already decided, ignoring event",
			logger.String("game", u.id),
			logger.Stringer("event", ev),
			logger.String("call", u.game.Call()),
		)
		return u.game
	}

	before := u.game
	u.game.Apply(ev)
	u.played++
	u.recorder.RecordEventApplied(ev.String())

	u.logger.Debug(ctx, "point scored",
		logger.String("game", u.id),
		logger.Stringer("event", ev),
		logger.String("from", before.Call()),
		logger.String("to", u.game.Call()),
	)

	if u.game.Deuce() && !before.Deuce() {
		u.recorder.RecordDeuce()
	}

	if w, ok := u.game.Winner(); ok {
		u.recorder.RecordGameCompleted(fmt.Sprintf("player%d", w), u.played)
		u.logger.Info(ctx, "game decided",
			logger.String("game", u.id),
			logger.Int("winner", w),
			logger.Int("points", u.played),
		)
	}
	return u.game
}

// Replay reads one event per line from r, scores it and writes the call to w.
// Blank lines and lines starting with '#' are skipped. Events after the game
// is decided are read and ignored. It stops at the first line that is not an
// event, or when ctx is done, even while a read is pending.
func (u *Umpire) Replay(ctx context.Context, r io.Reader, w io.Writer) (tennis.Game, error) {
	lines, errc, stop := scanLines(r)
	defer close(stop)

	line := 0
	for {
		if err := ctx.Err(); err != nil {
			return u.game, fmt.Errorf("replay interrupted after line %d: %w", line, err)
		}

		var text string
		select {
		case <-ctx.Done():
			return u.game, fmt.Errorf("replay interrupted after line %d: %w", line, ctx.Err())
		case t, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return u.game, fmt.Errorf("read events: %w", err)
				}
				return u.game, nil
			}
			text = strings.TrimSpace(t)
		}
		line++

		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		ev, err := tennis.ParseEvent(text)
		if err != nil {
			return u.game, fmt.Errorf("line %d: %w", line, err)
		}

		g := u.Score(ctx, ev)
		if _, err := fmt.Fprintln(w, g.Call()); err != nil {
			return u.game, fmt.Errorf("write call: %w", err)
		}
	}
}

// scanLines reads r on its own goroutine so a blocked read never holds up
// the caller. The scanner's final error is sent on errc before lines is
// closed. Closing stop releases the goroutine at its next line; a read that
// never returns keeps it parked until r is closed.
func scanLines(r io.Reader) (<-chan string, <-chan error, chan<- struct{}) {
	lines := make(chan string)
	errc := make(chan error, 1)
	stop := make(chan struct{})

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
		errc <- sc.Err()
	}()

	return lines, errc, stop
}
