package scenario

import (
	"errors"

	"github.com/jwebster45206/dungeon/pkg/registry"
)

// Registry failures, re-exported so callers need not import the registry.
var (
	ErrDuplicateName     = registry.ErrDuplicateName
	ErrAlreadyRegistered = registry.ErrAlreadyRegistered
	ErrNotFound          = registry.ErrNotFound
	ErrIdentityMismatch  = registry.ErrIdentityMismatch
)

var (
	ErrSceneInUse   = errors.New("scene is occupied by a player")
	ErrInvalidName  = errors.New("name is required")
	ErrNotInMap     = errors.New("player is not in a map")
	ErrNoScene      = errors.New("player has no current scene")
	ErrInAnotherMap = errors.New("player is already in another map")
)
