// Package session drives one player through a map: it feeds input lines to
// the player's current scene and hands back what the player should read.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/dungeon/pkg/scenario"
)

// ErrGameOver is returned by Turn once a scene has ended the game.
var ErrGameOver = errors.New("game is over")

const promptKey = "> "

// MaxLineLength caps a single line of input read by Run. Longer lines end
// Run with bufio.ErrTooLong.
const MaxLineLength = 1 << 20

// Entry is one recorded exchange. Seq 0 is the opening text, which has no
// input.
type Entry struct {
	SessionID uuid.UUID `json:"session_id"`
	Seq       int       `json:"seq"`
	Player    string    `json:"player"`
	Scene     string    `json:"scene"`
	Input     string    `json:"input"`
	Messages  []string  `json:"messages"`
	GameOn    bool      `json:"game_on"`
	At        time.Time `json:"at"`
}

// Recorder stores entries as they happen.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Result is what one turn produced.
type Result struct {
	Messages []string
	GameOn   bool
}

// Session is a single play-through. It is not safe for concurrent use.
type Session struct {
	id       uuid.UUID
	player   *scenario.Player
	recorder Recorder
	logger   *slog.Logger
	width    int
	now      func() time.Time

	seq  int
	over bool
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder records every turn to r. Recording failures are logged and
// do not interrupt play.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithLogger sets the session's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithWrap makes Run word-wrap messages at width columns. Zero disables
// wrapping.
func WithWrap(width int) Option {
	return func(s *Session) {
		s.width = width
	}
}

// WithClock overrides the time source used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New starts a session for a player who has already entered a map.
func New(p *scenario.Player, opts ...Option) (*Session, error) {
	if p.Map() == nil {
		return nil, fmt.Errorf("session for %q: %w", p.Name(), scenario.ErrNotInMap)
	}

	s := &Session{
		id:     uuid.New(),
		player: p,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.logger = s.logger.With("session_id", s.id.String(), "player", p.Name())
	return s, nil
}

// ID identifies the session in transcripts.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Player returns the session's player.
func (s *Session) Player() *scenario.Player {
	return s.player
}

// Over reports whether the game has ended.
func (s *Session) Over() bool {
	return s.over
}

// Opening drains whatever was queued before the first turn, typically the
// welcome line and the first scene's description.
func (s *Session) Opening(ctx context.Context) []string {
	msgs := s.player.Messages()
	s.record(ctx, "", msgs, true)
	return msgs
}

// Turn plays one line of input. The messages of a failed turn are still
// returned so nothing queued is lost.
func (s *Session) Turn(ctx context.Context, input string) (Result, error) {
	if s.over {
		return Result{}, ErrGameOver
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	gameOn, err := s.player.Do(input)
	msgs := s.player.Messages()
	if err != nil {
		s.logger.Error("Turn failed", "input", input, "error", err)
		return Result{Messages: msgs}, fmt.Errorf("turn %d: %w", s.seq+1, err)
	}

	s.seq++
	if !gameOn {
		s.over = true
		s.logger.Info("Game over", "turns", s.seq)
	}
	s.record(ctx, input, msgs, gameOn)
	return Result{Messages: msgs, GameOn: gameOn}, nil
}

func (s *Session) record(ctx context.Context, input string, msgs []string, gameOn bool) {
	if s.recorder == nil {
		return
	}
	scene := ""
	if sc := s.player.Scene(); sc != nil {
		scene = sc.Name()
	}
	e := Entry{
		SessionID: s.id,
		Seq:       s.seq,
		Player:    s.player.Name(),
		Scene:     scene,
		Input:     input,
		Messages:  msgs,
		GameOn:    gameOn,
		At:        s.now().UTC(),
	}
	if err := s.recorder.Record(ctx, e); err != nil {
		s.logger.Warn("Failed to record turn", "seq", e.Seq, "error", err)
	}
}

// Run plays the session over a line-oriented stream: it prints the opening,
// then prompts, reads a line and prints the turn's messages until the game
// ends, input runs out, or ctx is cancelled.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	prompt := promptKey
	if m := s.player.Map(); m != nil {
		prompt = m.T().Text(promptKey)
	}

	if err := s.print(out, s.Opening(ctx)); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineLength)
	for !s.over {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(out, prompt); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			s.logger.Debug("Input closed")
			return nil
		}

		res, err := s.Turn(ctx, scanner.Text())
		if perr := s.print(out, res.Messages); perr != nil {
			return perr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) print(out io.Writer, msgs []string) error {
	for _, msg := range msgs {
		if s.width > 0 {
			msg = wordwrap.String(msg, s.width)
		}
		if _, err := fmt.Fprintln(out, msg); err != nil {
			return fmt.Errorf("failed to write message: %w", err)
		}
	}
	return nil
}
