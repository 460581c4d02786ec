package scenario

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jwebster45206/dungeon/pkg/chat"
)

// Player is one person's session in a story: who they are, what they carry,
// where they are, and what they have yet to read.
type Player struct {
	name string
	id   uuid.UUID

	// Inventory holds whatever the player picks up along the way.
	Inventory map[string]any
	// State is free-form engine-level data. Stories prefer Attach.
	State map[string]any

	attachments map[string]any

	m     *Map
	scene *Scene

	messages *chat.Queue
}

// NewPlayer creates an unattached player. Call EnterMap to start playing.
func NewPlayer(name string) (*Player, error) {
	if name == "" {
		return nil, fmt.Errorf("player: %w", ErrInvalidName)
	}
	return &Player{
		name:        name,
		id:          uuid.New(),
		Inventory:   map[string]any{},
		State:       map[string]any{},
		attachments: map[string]any{},
		messages:    chat.NewQueue(),
	}, nil
}

// Name returns the player's name.
func (p *Player) Name() string {
	return p.name
}

// ID is the player's handle.
func (p *Player) ID() uuid.UUID {
	return p.id
}

// Map returns the map the player is in, or nil.
func (p *Player) Map() *Map {
	return p.m
}

// Scene returns the scene whose Enter most recently claimed the player,
// or nil.
func (p *Player) Scene() *Scene {
	return p.scene
}

// EnterMap moves the player into m at its starting scene.
func (p *Player) EnterMap(m *Map) error {
	return p.EnterMapAt(m, ByName(m.StartingScene()))
}

// EnterMapAt moves the player into m at the given scene. The player first
// leaves any map they are in, so even re-entering the same scene counts as
// a first-time entry.
func (p *Player) EnterMapAt(m *Map, scene Ref) error {
	s, err := m.Scene(scene)
	if err != nil {
		return fmt.Errorf("entering map %q: %w", m.name, err)
	}

	p.LeaveMap()
	if err := m.AddPlayer(p); err != nil {
		return err
	}
	return s.Enter(ByHandle(p))
}

// LeaveMap detaches the player from their map. It does nothing for an
// unattached player.
func (p *Player) LeaveMap() {
	if p.m == nil {
		return
	}
	if err := p.m.RemovePlayer(ByHandle(p)); err != nil {
		p.m.logger.Warn("Player missing from map registry", "player", p.name, "error", err)
	}
	p.m = nil
	p.scene = nil
}

// Do forwards a line of input to the player's current scene.
func (p *Player) Do(input string) (bool, error) {
	if p.m == nil {
		return false, fmt.Errorf("player %q: %w", p.name, ErrNotInMap)
	}
	if p.scene == nil {
		return false, fmt.Errorf("player %q: %w", p.name, ErrNoScene)
	}
	return p.scene.Do(ByHandle(p), input)
}

// PushMessage queues text for the player to read.
func (p *Player) PushMessage(text string) {
	p.messages.Push(text)
}

// PopMessage returns the oldest unread message. The second value is false
// when there is nothing left.
func (p *Player) PopMessage() (string, bool) {
	return p.messages.Pop()
}

// Messages drains every unread message in order.
func (p *Player) Messages() []string {
	return p.messages.Drain()
}

// Attach stores a story-specific record on the player under key.
func (p *Player) Attach(key string, value any) {
	p.attachments[key] = value
}

// Attachment fetches a record stored with Attach. ok is false when nothing
// of type T is stored under key.
func Attachment[T any](p *Player, key string) (T, bool) {
	v, ok := p.attachments[key].(T)
	return v, ok
}
