package goldseekers

import (
	"fmt"

	"github.com/jwebster45206/d20"

	"github.com/jwebster45206/dungeon/pkg/scenario"
)

// Patience is how much boredom an adventurer can take. Boredom is kept as
// lost hit points, so an adventurer at full HP is as eager as they get.
const Patience = 15

const adventurerKey = "goldseekers.adventurer"

// Adventurer is the per-player record of the story.
type Adventurer struct {
	Actor *d20.Actor
}

// NewAdventurer builds a fresh, fully patient adventurer.
func NewAdventurer(name string) (*Adventurer, error) {
	actor, err := d20.NewActor(name).
		WithHP(Patience).
		WithAC(10).
		WithAttributes(map[string]int{"wisdom": 10}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build adventurer %q: %w", name, err)
	}
	return &Adventurer{Actor: actor}, nil
}

// Boredom is how much patience has been used up.
func (a *Adventurer) Boredom() int {
	return a.Actor.MaxHP() - a.Actor.HP()
}

// SetBoredom records a new boredom level. Levels that would leave no
// patience are rejected; they mean death, which the caller handles.
func (a *Adventurer) SetBoredom(level int) error {
	if level < 0 || level >= Patience {
		return fmt.Errorf("boredom %d out of range [0,%d)", level, Patience)
	}
	return a.Actor.SetHP(a.Actor.MaxHP() - level)
}

// NewPlayer creates a player carrying an Adventurer.
func NewPlayer(name string) (*scenario.Player, error) {
	p, err := scenario.NewPlayer(name)
	if err != nil {
		return nil, err
	}
	a, err := NewAdventurer(name)
	if err != nil {
		return nil, err
	}
	p.Attach(adventurerKey, a)
	return p, nil
}

// AdventurerOf returns the player's adventurer, attaching a new one to
// players created without NewPlayer.
func AdventurerOf(p *scenario.Player) (*Adventurer, error) {
	if a, ok := scenario.Attachment[*Adventurer](p, adventurerKey); ok {
		return a, nil
	}
	a, err := NewAdventurer(p.Name())
	if err != nil {
		return nil, err
	}
	p.Attach(adventurerKey, a)
	return a, nil
}
