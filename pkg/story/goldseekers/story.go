// Package goldseekers is a short sample story: find your way past a bear to
// a room of gold without being eaten, burnt, or bored to death.
package goldseekers

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/jwebster45206/dungeon/pkg/l10n"
	"github.com/jwebster45206/dungeon/pkg/scenario"
)

// Scene names.
const (
	SceneEntrance = "entrance"
	SceneFirst    = "first"
	SceneBear     = "bear"
	SceneCthulhu  = "cthulhu"
	SceneLava     = "lava"
	SceneGold     = "gold"
)

// Rand picks the nonsense line for unparsed input.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type options struct {
	tr     l10n.Translator
	logger *slog.Logger
	rand   Rand
}

// Option configures the story.
type Option func(*options)

// WithTranslator sets the story's translator.
func WithTranslator(tr l10n.Translator) Option {
	return func(o *options) {
		o.tr = tr
	}
}

// WithLogger sets the map's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRand overrides the random source.
func WithRand(r Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// realm holds the story's scenes and their state.
type realm struct {
	m    *scenario.Map
	tr   l10n.Translator
	rand Rand

	bear *bearScene
}

// bearScene remembers whether the bear has been taunted away from the
// door. The bear stays moved for every later visitor.
type bearScene struct {
	*scenario.Scene
	moved bool
}

// New builds the story's map with all its scenes; players start at the
// entrance.
func New(opts ...Option) (*scenario.Map, error) {
	r, err := newRealm(opts...)
	if err != nil {
		return nil, err
	}
	return r.m, nil
}

func newRealm(opts ...Option) (*realm, error) {
	o := options{rand: globalRand{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tr == nil {
		o.tr = l10n.Source()
	}

	mapOpts := []scenario.MapOption{scenario.WithTranslator(o.tr)}
	if o.logger != nil {
		mapOpts = append(mapOpts, scenario.WithLogger(o.logger))
	}
	m, err := scenario.NewMap(o.tr.Text(MapName), mapOpts...)
	if err != nil {
		return nil, err
	}

	r := &realm{m: m, tr: o.tr, rand: o.rand, bear: &bearScene{}}

	builders := []struct {
		name string
		cfg  scenario.SceneConfig
	}{
		{SceneEntrance, scenario.SceneConfig{
			Commands: []scenario.Command{
				{Pattern: patternDoor, Action: r.moveTo(msgDoorOpens, SceneFirst)},
			},
			OnFirstEnter: r.say(msgEntrance),
			OnEnterAgain: r.say(msgEntranceAgain),
			Fallback:     r.cantParse,
		}},
		{SceneFirst, scenario.SceneConfig{
			Commands: []scenario.Command{
				{Pattern: patternLeft, Action: r.moveTo(msgLeft, SceneBear)},
				{Pattern: patternRight, Action: r.moveTo(msgRight, SceneCthulhu)},
				{Pattern: patternCenter, Action: r.moveTo(msgCenter, SceneLava)},
			},
			OnFirstEnter: r.say(msgFirst),
			OnEnterAgain: r.say(msgFirstAgain),
			Fallback:     r.cantParse,
		}},
		{SceneBear, scenario.SceneConfig{
			Commands: []scenario.Command{
				{Pattern: patternHoney, Action: r.die(msgHoney)},
				{Pattern: patternTaunt, Action: r.taunt},
				{Pattern: patternDoor, Action: r.passBear},
			},
			OnFirstEnter: r.say(msgBear),
			OnEnterAgain: r.say(msgBearAgain),
			AfterEnter:   r.whereIsBear,
			Fallback:     r.cantParse,
		}},
		{SceneCthulhu, scenario.SceneConfig{
			Commands: []scenario.Command{
				{Pattern: patternFlee, Action: r.moveTo(msgFlee, SceneFirst)},
				{Pattern: patternHead, Action: r.die(msgHead)},
				{Pattern: patternAnything, Action: r.die(msgHeadAnyway)},
			},
			OnFirstEnter: r.say(msgCthulhu),
		}},
		{SceneLava, scenario.SceneConfig{
			Commands: []scenario.Command{
				{Pattern: patternAnything, Action: r.die(msgLavaDeath)},
			},
			OnFirstEnter: r.say(msgLava),
		}},
		{SceneGold, scenario.SceneConfig{
			Commands: []scenario.Command{
				{Pattern: patternAmount, Action: r.takeGold},
				{Pattern: patternAnything, Action: r.die(msgDumb)},
			},
			OnFirstEnter: r.say(msgGold),
		}},
	}

	for _, b := range builders {
		s, err := scenario.NewScene(m, b.name, b.cfg)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", MapName, err)
		}
		if b.name == SceneBear {
			r.bear.Scene = s
		}
	}

	if err := m.SetStartingScene(scenario.ByName(SceneEntrance)); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *realm) say(key string) scenario.Hook {
	return func(p *scenario.Player) {
		p.PushMessage(r.tr.Text(key))
	}
}

func (r *realm) die(key string) scenario.Action {
	return func(p *scenario.Player, _ scenario.Match) (bool, error) {
		p.PushMessage(r.tr.Text(key))
		return false, nil
	}
}

// moveTo says key, counts as progress and takes the player to scene.
func (r *realm) moveTo(key, scene string) scenario.Action {
	return func(p *scenario.Player, _ scenario.Match) (bool, error) {
		p.PushMessage(r.tr.Text(key))
		if err := r.somethingChanged(p); err != nil {
			return false, err
		}
		return r.enter(p, scene)
	}
}

func (r *realm) enter(p *scenario.Player, scene string) (bool, error) {
	s, err := r.m.Scene(scenario.ByName(scene))
	if err != nil {
		return false, err
	}
	if err := s.Enter(scenario.ByHandle(p)); err != nil {
		return false, err
	}
	return true, nil
}

// cantParse is the fallback of the scenes where play goes on after
// nonsense, at the cost of some boredom.
func (r *realm) cantParse(p *scenario.Player, _ scenario.Match) (bool, error) {
	p.PushMessage(r.tr.Text(nonsense[r.rand.IntN(len(nonsense))]))

	a, err := AdventurerOf(p)
	if err != nil {
		return false, err
	}
	level := a.Boredom()
	before, after := moodFor(level), moodFor(level+1)
	if after == "" {
		p.PushMessage(r.tr.Text(msgBoredToDeath))
		return false, nil
	}
	if err := a.SetBoredom(level + 1); err != nil {
		return false, err
	}
	if after != before {
		p.PushMessage(r.tr.Text(msgMoodChanged, r.tr.Text(after)))
	}

	if err := p.Scene().Enter(scenario.ByHandle(p)); err != nil {
		return false, err
	}
	return true, nil
}

// somethingChanged relieves boredom after progress.
func (r *realm) somethingChanged(p *scenario.Player) error {
	a, err := AdventurerOf(p)
	if err != nil {
		return err
	}
	level := a.Boredom()
	if level <= 2 {
		return nil
	}
	if level <= 10 {
		level = 0
	} else {
		level -= 10
	}
	if err := a.SetBoredom(level); err != nil {
		return err
	}
	p.PushMessage(r.tr.Text(msgRefreshed, r.tr.Text(moodFor(level))))
	return nil
}

func (r *realm) whereIsBear(p *scenario.Player) {
	if r.bear.moved {
		p.PushMessage(r.tr.Text(msgBearAside))
	} else {
		p.PushMessage(r.tr.Text(msgBearByDoor))
	}
}

func (r *realm) taunt(p *scenario.Player, _ scenario.Match) (bool, error) {
	if r.bear.moved {
		p.PushMessage(r.tr.Text(msgTauntAngry))
		return false, nil
	}
	r.bear.moved = true
	p.PushMessage(r.tr.Text(msgTauntMoved))
	if err := r.somethingChanged(p); err != nil {
		return false, err
	}
	return true, nil
}

func (r *realm) passBear(p *scenario.Player, _ scenario.Match) (bool, error) {
	if !r.bear.moved {
		p.PushMessage(r.tr.Text(msgDoorBlocked))
		return false, nil
	}
	p.PushMessage(r.tr.Text(msgDoorPassed))
	if err := r.somethingChanged(p); err != nil {
		return false, err
	}
	return r.enter(p, SceneGold)
}

func (r *realm) takeGold(p *scenario.Player, m scenario.Match) (bool, error) {
	amount, err := r.parseAmount(m.Group("amount"))
	if err != nil {
		return false, err
	}
	if amount <= greedyGoldAmount {
		p.PushMessage(r.tr.Text(msgNotGreedy))
	} else {
		p.PushMessage(r.tr.Text(msgGreedy))
	}
	p.Inventory["gold"] = amount
	return false, nil
}

// parseAmount reads a number with either decimal separator, or one of the
// words for nothing at all.
func (r *realm) parseAmount(s string) (float64, error) {
	for _, w := range []string{wordNone, wordNothing, wordZero} {
		if s == strings.ToLower(r.tr.Text(w)) {
			return 0, nil
		}
	}
	amount, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	// Out of range digits still parse to an infinity, which is plenty greedy.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("gold amount %q: %w", s, err)
	}
	return amount, nil
}
