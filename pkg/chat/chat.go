package chat

// Queue holds the narrative lines waiting to be shown to a single player.
// Lines come out in the order they went in. The zero value is ready to use.
type Queue struct {
	messages []string
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a message to the back of the queue.
func (q *Queue) Push(message string) {
	q.messages = append(q.messages, message)
}

// Pop removes and returns the oldest message.
// The second return value is false when the queue is empty.
func (q *Queue) Pop() (string, bool) {
	if len(q.messages) == 0 {
		return "", false
	}
	msg := q.messages[0]
	q.messages[0] = ""
	q.messages = q.messages[1:]
	if len(q.messages) == 0 {
		q.messages = nil // release the backing array once drained
	}
	return msg, true
}

// Drain pops every queued message in FIFO order.
// It never returns nil.
func (q *Queue) Drain() []string {
	out := make([]string, 0, len(q.messages))
	for {
		msg, ok := q.Pop()
		if !ok {
			return out
		}
		out = append(out, msg)
	}
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	return len(q.messages)
}
