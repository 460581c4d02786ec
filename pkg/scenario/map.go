package scenario

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/dungeon/pkg/l10n"
	"github.com/jwebster45206/dungeon/pkg/registry"
	"github.com/jwebster45206/dungeon/pkg/textfilter"
)

// Map holds every scene of one story instance and every player currently
// in it.
type Map struct {
	name     string
	id       uuid.UUID
	starting string

	scenes  *registry.Registry[*Scene]
	players *registry.Registry[*Player]

	tr         l10n.Translator
	logger     *slog.Logger
	normalizer *textfilter.InputNormalizer
}

// MapOption configures a Map.
type MapOption func(*Map)

// WithTranslator sets the translator used for every message and pattern of
// the map and its scenes.
func WithTranslator(tr l10n.Translator) MapOption {
	return func(m *Map) {
		m.tr = tr
	}
}

// WithLogger sets the map's logger.
func WithLogger(logger *slog.Logger) MapOption {
	return func(m *Map) {
		m.logger = logger
	}
}

// NewMap creates an empty map. The name is for display only.
func NewMap(name string, opts ...MapOption) (*Map, error) {
	if name == "" {
		return nil, fmt.Errorf("map: %w", ErrInvalidName)
	}

	m := &Map{
		name:       name,
		id:         uuid.New(),
		normalizer: textfilter.NewInputNormalizer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.tr == nil {
		m.tr = l10n.Source()
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	m.logger = m.logger.With("map", name)

	m.scenes = registry.New[*Scene]("scene", m.logger)
	m.players = registry.New[*Player]("player", m.logger)
	return m, nil
}

// Name returns the map's display name.
func (m *Map) Name() string {
	return m.name
}

// ID is the map's handle.
func (m *Map) ID() uuid.UUID {
	return m.id
}

// T returns the map's translator.
func (m *Map) T() l10n.Translator {
	return m.tr
}

// Logger returns the map's logger.
func (m *Map) Logger() *slog.Logger {
	return m.logger
}

// AddScene registers a scene. NewScene calls it; stories rarely need to.
func (m *Map) AddScene(s *Scene) error {
	if s.m != m {
		return fmt.Errorf("scene %q belongs to another map", s.name)
	}
	return m.scenes.Add(s)
}

// AddPlayer registers a player and welcomes them. Player.EnterMap calls
// it; a player already attached to a different map is refused.
func (m *Map) AddPlayer(p *Player) error {
	if p.m != nil && p.m != m {
		return fmt.Errorf("player %q: %w", p.name, ErrInAnotherMap)
	}
	if err := m.players.Add(p); err != nil {
		return err
	}
	p.m = m
	p.PushMessage(m.tr.Text(MsgWelcome, p.name, m.name))
	return nil
}

// Scene resolves a scene reference.
func (m *Map) Scene(ref Ref) (*Scene, error) {
	return m.scenes.Resolve(ref)
}

// Player resolves a player reference.
func (m *Map) Player(ref Ref) (*Player, error) {
	return m.players.Resolve(ref)
}

// RemoveScene removes a scene nobody is standing in.
func (m *Map) RemoveScene(ref Ref) error {
	s, err := m.scenes.Resolve(ref)
	if err != nil {
		return err
	}
	for _, p := range m.players.All() {
		if p.scene == s {
			return fmt.Errorf("scene %q used by player %q: %w", s.name, p.name, ErrSceneInUse)
		}
	}
	if _, err := m.scenes.Remove(ref); err != nil {
		return err
	}
	if m.starting == s.name {
		m.logger.Warn("Removed the starting scene", "scene", s.name)
	}
	return nil
}

// RemovePlayer deregisters a player and detaches them from the map.
func (m *Map) RemovePlayer(ref Ref) error {
	p, err := m.players.Remove(ref)
	if err != nil {
		return err
	}
	p.m = nil
	p.scene = nil
	return nil
}

// StartingScene returns the name of the scene new players enter.
func (m *Map) StartingScene() string {
	return m.starting
}

// SetStartingScene sets the scene new players enter. The scene must be
// registered. Only its name is kept, so a later replacement scene with the
// same name becomes the starting scene.
func (m *Map) SetStartingScene(ref Ref) error {
	s, err := m.scenes.Resolve(ref)
	if err != nil {
		return fmt.Errorf("setting starting scene: %w", err)
	}
	m.starting = s.name
	return nil
}

// Scenes returns the registered scenes sorted by name.
func (m *Map) Scenes() []*Scene {
	return m.scenes.All()
}

// Players returns the players in the map sorted by name.
func (m *Map) Players() []*Player {
	return m.players.All()
}
