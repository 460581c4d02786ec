package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_PushPopOrder(t *testing.T) {
	q := NewQueue()
	msgs := []string{
		"You're at the entrance.",
		"The door opens. You leap into the doorway!",
		"You're in a dark room.",
	}
	for _, m := range msgs {
		q.Push(m)
	}
	assert.Equal(t, 3, q.Len())

	for _, want := range msgs {
		got, ok := q.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	got, ok := q.Pop()
	assert.False(t, ok)
	assert.Empty(t, got)

	// Popping an empty queue stays total.
	_, ok = q.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_Drain(t *testing.T) {
	tests := []struct {
		name     string
		pushed   []string
		expected []string
	}{
		{
			name:     "empty queue",
			pushed:   nil,
			expected: []string{},
		},
		{
			name:     "single message",
			pushed:   []string{"Goodbye!"},
			expected: []string{"Goodbye!"},
		},
		{
			name:     "keeps FIFO order",
			pushed:   []string{"a", "b", "c", "a"},
			expected: []string{"a", "b", "c", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Queue
			for _, m := range tt.pushed {
				q.Push(m)
			}
			assert.Equal(t, tt.expected, q.Drain())
			assert.Equal(t, 0, q.Len())
			assert.Equal(t, []string{}, q.Drain())
		})
	}
}

func TestQueue_PushAfterDrain(t *testing.T) {
	var q Queue
	q.Push("first")
	q.Drain()
	q.Push("second")

	got, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, "second", got)
}
