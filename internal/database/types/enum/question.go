package enum

import "fmt"

// QuestionStatus represents the lifecycle state of a question.
type QuestionStatus int

const (
	// QuestionStatusOpen means the question has no accepted answer.
	QuestionStatusOpen QuestionStatus = iota
	// QuestionStatusResolved means an answer has been accepted.
	QuestionStatusResolved
)

// String returns the wire name of the question status.
func (s QuestionStatus) String() string {
	switch s {
	case QuestionStatusOpen:
		return "open"
	case QuestionStatusResolved:
		return "resolved"
	default:
		return fmt.Sprintf("QuestionStatus(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler so JSON responses carry the
// wire name instead of the storage integer.
func (s QuestionStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
