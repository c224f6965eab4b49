package enum

import "fmt"

// VoteType represents the polarity of a vote.
type VoteType int

const (
	// VoteTypeUp increases the target author's reputation.
	VoteTypeUp VoteType = iota
	// VoteTypeDown decreases the target author's reputation.
	VoteTypeDown
)

// String returns the wire name of the vote type.
func (t VoteType) String() string {
	switch t {
	case VoteTypeUp:
		return "up"
	case VoteTypeDown:
		return "down"
	default:
		return fmt.Sprintf("VoteType(%d)", int(t))
	}
}

// VoteTypeString parses a wire name into a VoteType.
func VoteTypeString(s string) (VoteType, error) {
	switch s {
	case "up":
		return VoteTypeUp, nil
	case "down":
		return VoteTypeDown, nil
	default:
		return 0, fmt.Errorf("%q does not belong to VoteType values", s)
	}
}

// VoteTarget represents the kind of content a vote applies to.
type VoteTarget int

const (
	// VoteTargetAnswer is a vote cast on an answer.
	VoteTargetAnswer VoteTarget = iota
	// VoteTargetQuestion is a vote cast on a question.
	VoteTargetQuestion
)

// String returns the wire name of the vote target.
func (t VoteTarget) String() string {
	switch t {
	case VoteTargetAnswer:
		return "answer"
	case VoteTargetQuestion:
		return "question"
	default:
		return fmt.Sprintf("VoteTarget(%d)", int(t))
	}
}
