package scenario

import (
	"fmt"

	"github.com/google/uuid"
)

// SceneConfig describes a scene's behaviour. Zero fields fall back to the
// engine defaults.
type SceneConfig struct {
	// Commands are tried in order; the first whose pattern matches the whole
	// input wins. The exit command and the fallback come after them.
	Commands []Command

	// OnFirstEnter runs when a player arrives from elsewhere (or from nowhere).
	OnFirstEnter Hook
	// OnEnterAgain runs when Enter is called for a player already here.
	OnEnterAgain Hook
	// AfterEnter runs after either of the above.
	AfterEnter Hook

	// Fallback handles input nothing else matched. Defaults to CantParse,
	// which ends the game.
	Fallback Action
}

// Scene is one named location or moment of a story. State that must
// survive between visits belongs to the story type that builds the scene.
type Scene struct {
	name string
	id   uuid.UUID
	m    *Map

	commands []compiledCommand
	exit     compiledCommand

	onFirstEnter Hook
	onEnterAgain Hook
	afterEnter   Hook
	fallback     Action
}

// NewScene creates a scene and registers it in m. Patterns are translated
// with m's translator and compiled here, so a bad pattern fails
// construction. Nothing is registered when construction fails.
func NewScene(m *Map, name string, cfg SceneConfig) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene: %w", ErrInvalidName)
	}

	s := &Scene{
		name: name,
		id:   uuid.New(),
		m:    m,
	}

	for _, c := range cfg.Commands {
		if c.Action == nil {
			return nil, fmt.Errorf("scene %q: command %q has no action", name, c.Pattern)
		}
		src := m.T().Pattern(c.Pattern)
		re, err := compilePattern(src)
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", name, err)
		}
		s.commands = append(s.commands, compiledCommand{source: src, re: re, action: c.Action})
	}

	exitSrc := m.T().Pattern(PatternExit)
	exitRe, err := compilePattern(exitSrc)
	if err != nil {
		return nil, fmt.Errorf("scene %q: exit: %w", name, err)
	}
	s.exit = compiledCommand{source: exitSrc, re: exitRe, action: s.Exit}

	s.onFirstEnter = cfg.OnFirstEnter
	if s.onFirstEnter == nil {
		s.onFirstEnter = s.defaultFirstEnter
	}
	s.onEnterAgain = cfg.OnEnterAgain
	if s.onEnterAgain == nil {
		s.onEnterAgain = s.defaultEnterAgain
	}
	s.afterEnter = cfg.AfterEnter
	s.fallback = cfg.Fallback
	if s.fallback == nil {
		s.fallback = s.CantParse
	}

	if err := m.AddScene(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Name is the scene's identifier within its map.
func (s *Scene) Name() string {
	return s.name
}

// ID is the scene's handle.
func (s *Scene) ID() uuid.UUID {
	return s.id
}

// Map returns the map the scene belongs to.
func (s *Scene) Map() *Map {
	return s.m
}

// Commands returns the scene's own patterns, translated, in priority order.
func (s *Scene) Commands() []string {
	out := make([]string, len(s.commands))
	for i, c := range s.commands {
		out[i] = c.source
	}
	return out
}

// Enter brings a player into the scene. A player who is not already here
// gets the first-time hook and has this scene recorded as current; a player
// who is already here gets the repeat hook.
func (s *Scene) Enter(ref Ref) error {
	p, err := s.m.Player(ref)
	if err != nil {
		return err
	}

	if p.scene != s {
		from := ""
		if p.scene != nil {
			from = p.scene.name
		}
		p.scene = s
		s.m.logger.Debug("Player entered scene", "player", p.name, "scene", s.name, "from", from)
		s.onFirstEnter(p)
	} else {
		s.m.logger.Debug("Player re-entered scene", "player", p.name, "scene", s.name)
		s.onEnterAgain(p)
	}

	if s.afterEnter != nil {
		s.afterEnter(p)
	}
	return nil
}

// Do interprets one line of player input. It returns false when the game
// is over.
func (s *Scene) Do(ref Ref, input string) (bool, error) {
	return s.Dispatch(ref, input, Unhandled)
}

// Dispatch is Do for callers that may already have handled the input.
// When prior is Continue or Stop that outcome is returned untouched.
// Otherwise the scene's commands are tried in order, then the exit command,
// then the fallback.
//
// A transition performed by an action takes effect immediately, but the
// result returned is still the one this scene's action computed.
func (s *Scene) Dispatch(ref Ref, input string, prior Outcome) (bool, error) {
	if prior != Unhandled {
		return prior == Continue, nil
	}

	p, err := s.m.Player(ref)
	if err != nil {
		return false, err
	}

	normalized := s.m.normalizer.Normalize(input)

	for i := range s.commands {
		c := &s.commands[i]
		if m, ok := c.match(normalized); ok {
			s.m.logger.Debug("Command matched", "scene", s.name, "player", p.name, "pattern", c.source)
			return c.action(p, m)
		}
	}

	if m, ok := s.exit.match(normalized); ok {
		s.m.logger.Debug("Exit matched", "scene", s.name, "player", p.name)
		return s.exit.action(p, m)
	}

	s.m.logger.Debug("No command matched", "scene", s.name, "player", p.name, "input", normalized)
	return s.fallback(p, Match{Input: normalized})
}

// Exit is the default action for leaving the game.
func (s *Scene) Exit(p *Player, _ Match) (bool, error) {
	p.PushMessage(s.m.T().Text(MsgGoodbye))
	return false, nil
}

// CantParse is the default action for unrecognised input. It ends the
// game; scenes that want play to go on supply their own fallback.
func (s *Scene) CantParse(p *Player, _ Match) (bool, error) {
	p.PushMessage(s.m.T().Text(MsgCantParse))
	return false, nil
}

func (s *Scene) defaultFirstEnter(p *Player) {
	p.PushMessage(s.m.T().Text(MsgFirstEnter))
}

func (s *Scene) defaultEnterAgain(p *Player) {
	p.PushMessage(s.m.T().Text(MsgEnterAgain))
}
