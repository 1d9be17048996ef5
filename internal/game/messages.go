package game

import "time"

// Severity controls the color of a message.
type Severity uint8

const (
	SeverityInfo    Severity = iota // plain text
	SeveritySuccess                 // green
	SeverityWarning                 // yellow
	SeverityError                   // red
	SeverityNight                   // night blue
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityNight:
		return "night"
	default:
		return "unknown"
	}
}

// Message is a single on-screen notice.
type Message struct {
	Text     string
	Severity Severity
	At       time.Time
}

// MessageQueue is a bounded FIFO of messages.
type MessageQueue struct {
	messages []Message
	maxSize  int
}

// NewMessageQueue creates a queue that keeps the most recent maxSize messages.
func NewMessageQueue(maxSize int) *MessageQueue {
	return &MessageQueue{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
	}
}

// Add appends a message, evicting the oldest if full.
func (q *MessageQueue) Add(text string, severity Severity, at time.Time) {
	msg := Message{Text: text, Severity: severity, At: at}
	if len(q.messages) >= q.maxSize {
		copy(q.messages, q.messages[1:])
		q.messages[len(q.messages)-1] = msg
		return
	}
	q.messages = append(q.messages, msg)
}

// Clear removes all messages.
func (q *MessageQueue) Clear() {
	q.messages = q.messages[:0]
}

// Messages returns the queued messages, oldest first.
func (q *MessageQueue) Messages() []Message {
	return q.messages
}

// Len returns the number of queued messages.
func (q *MessageQueue) Len() int {
	return len(q.messages)
}

// Expired returns true if the newest message is older than timeout.
// An empty queue never expires.
func (q *MessageQueue) Expired(now time.Time, timeout time.Duration) bool {
	if len(q.messages) == 0 {
		return false
	}
	return now.Sub(q.messages[len(q.messages)-1].At) > timeout
}
