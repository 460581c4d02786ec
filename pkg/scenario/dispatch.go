package scenario

import (
	"fmt"
	"regexp"

	"github.com/jwebster45206/dungeon/pkg/registry"
)

// Ref names a scene or player either by name or by handle.
type Ref = registry.Ref

// ByName refers to an entity by its registered name.
func ByName(name string) Ref {
	return registry.ByName(name)
}

// ByHandle refers to a specific scene or player. Resolution fails with
// ErrIdentityMismatch if another entity has since taken the name.
func ByHandle(e registry.Entity) Ref {
	return registry.ByHandle(e)
}

// Outcome is what earlier handling already decided about a line of input.
type Outcome int

const (
	Unhandled Outcome = iota // nothing has handled the input yet
	Continue                 // handled, the game goes on
	Stop                     // handled, the game is over
)

// OutcomeOf converts a game-on flag.
func OutcomeOf(gameOn bool) Outcome {
	if gameOn {
		return Continue
	}
	return Stop
}

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unhandled"
	}
}

// Action runs when a command matches. It returns whether the game goes on.
// Actions are where messages get queued, state changes, and transitions
// (another scene's Enter on the same player) happen.
type Action func(p *Player, m Match) (bool, error)

// Hook runs on scene entry.
type Hook func(p *Player)

// Command pairs a pattern catalog key with its action.
type Command struct {
	Pattern string
	Action  Action
}

// Match describes the input that selected an action.
type Match struct {
	Input  string
	groups map[string]string
}

// Group returns the text captured by a named group, or "" when the group
// did not participate.
func (m Match) Group(name string) string {
	return m.groups[name]
}

type compiledCommand struct {
	source string
	re     *regexp.Regexp
	action Action
}

// compilePattern anchors pattern so it must match the whole input.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`(?i)^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

func (c *compiledCommand) match(input string) (Match, bool) {
	sub := c.re.FindStringSubmatch(input)
	if sub == nil {
		return Match{}, false
	}
	m := Match{Input: input, groups: map[string]string{}}
	for i, name := range c.re.SubexpNames() {
		if name != "" {
			m.groups[name] = sub[i]
		}
	}
	return m, true
}
