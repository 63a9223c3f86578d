package models

// Status is the aggregate completion state of a response document.
//
// Transitions are not monotonic: the status is recomputed from the answers
// on every submission, so clearing an answer moves a document backwards.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// CalculateStatus derives the status of an answer list. An empty list is pending.
func CalculateStatus(answers []AnswerEntry) Status {
	answered := 0
	for _, a := range answers {
		if a.Response.IsSet() {
			answered++
		}
	}
	switch {
	case answered == 0:
		return StatusPending
	case answered == len(answers):
		return StatusCompleted
	default:
		return StatusInProgress
	}
}
