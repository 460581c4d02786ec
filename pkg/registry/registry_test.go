package registry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type room struct {
	name string
	id   uuid.UUID
}

func newRoom(name string) *room {
	return &room{name: name, id: uuid.New()}
}

func (r *room) Name() string  { return r.name }
func (r *room) ID() uuid.UUID { return r.id }

func TestRegistry_AddAndResolve(t *testing.T) {
	reg := New[*room]("scene", nil)
	names := []string{"entrance", "first", "bear", "gold"}

	for _, n := range names {
		r := newRoom(n)
		require.NoError(t, reg.Add(r))

		byName, err := reg.Resolve(ByName(n))
		require.NoError(t, err)
		assert.Same(t, r, byName)

		byHandle, err := reg.Resolve(ByHandle(r))
		require.NoError(t, err)
		assert.Same(t, r, byHandle)
	}

	assert.Equal(t, 4, reg.Len())
	assert.Equal(t, []string{"bear", "entrance", "first", "gold"}, reg.Names())
}

func TestRegistry_AddConflicts(t *testing.T) {
	tests := []struct {
		name     string
		second   func(first *room) *room
		expected error
	}{
		{
			name:     "distinct entity with same name",
			second:   func(first *room) *room { return newRoom(first.name) },
			expected: ErrDuplicateName,
		},
		{
			name:     "same entity twice",
			second:   func(first *room) *room { return first },
			expected: ErrAlreadyRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New[*room]("scene", nil)
			first := newRoom("lava")
			require.NoError(t, reg.Add(first))

			err := reg.Add(tt.second(first))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
			assert.Contains(t, err.Error(), `scene "lava"`)

			// Failed adds leave the original in place.
			got, err := reg.Resolve(ByName("lava"))
			require.NoError(t, err)
			assert.Same(t, first, got)
			assert.Equal(t, 1, reg.Len())
		})
	}
}

func TestRegistry_ResolveErrors(t *testing.T) {
	reg := New[*room]("player", nil)
	old := newRoom("James")
	require.NoError(t, reg.Add(old))

	_, err := reg.Resolve(ByName("Nobody"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = reg.Resolve(ByHandle(newRoom("Nobody")))
	assert.ErrorIs(t, err, ErrNotFound)

	// Replace James with a new entity of the same name; the stale handle must not resolve.
	_, err = reg.Remove(ByHandle(old))
	require.NoError(t, err)
	replacement := newRoom("James")
	require.NoError(t, reg.Add(replacement))

	_, err = reg.Resolve(ByHandle(old))
	assert.ErrorIs(t, err, ErrIdentityMismatch)

	got, err := reg.Resolve(ByName("James"))
	require.NoError(t, err)
	assert.Same(t, replacement, got)
}

func TestRegistry_Remove(t *testing.T) {
	reg := New[*room]("scene", nil)
	r := newRoom("cthulhu")
	require.NoError(t, reg.Add(r))

	removed, err := reg.Remove(ByName("cthulhu"))
	require.NoError(t, err)
	assert.Same(t, r, removed)
	assert.False(t, reg.Contains("cthulhu"))

	_, err = reg.Remove(ByName("cthulhu"))
	assert.ErrorIs(t, err, ErrNotFound)

	// A mismatched handle does not delete the current occupant.
	current := newRoom("cthulhu")
	require.NoError(t, reg.Add(current))
	_, err = reg.Remove(ByHandle(r))
	assert.ErrorIs(t, err, ErrIdentityMismatch)
	assert.True(t, reg.Contains("cthulhu"))
}

func TestRegistry_All(t *testing.T) {
	reg := New[*room]("scene", nil)
	b, a := newRoom("b"), newRoom("a")
	require.NoError(t, reg.Add(b))
	require.NoError(t, reg.Add(a))

	all := reg.All()
	require.Len(t, all, 2)
	assert.Same(t, a, all[0])
	assert.Same(t, b, all[1])
}

func TestRef_String(t *testing.T) {
	r := newRoom("gold")
	assert.Equal(t, "gold", ByName("gold").String())
	assert.Equal(t, "gold("+r.id.String()+")", ByHandle(r).String())
	assert.True(t, ByHandle(r).IsHandle())
	assert.False(t, ByName("gold").IsHandle())
}
