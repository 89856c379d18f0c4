package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/Kinship/internal/catalogue"
)

var (
	ErrNoAnswers           = errors.New("no answers provided")
	ErrInsufficientAnswers = errors.New("insufficient answers")
)

// AnswerIssue describes one rejected answer.
type AnswerIssue struct {
	QuestionID string `json:"question_id"`
	Value      int    `json:"value"`
	Reason     string `json:"reason"`
}

// ValidationError lists every answer that failed range validation.
type ValidationError struct {
	Issues []AnswerIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", is.QuestionID, is.Reason))
	}
	return "invalid answers: " + strings.Join(parts, "; ")
}

// CheckCount enforces the minimum number of answers a submission must carry
// before it is scored.
func CheckCount(answers []Answer, min int) error {
	if len(answers) == 0 {
		return ErrNoAnswers
	}
	if len(answers) < min {
		return fmt.Errorf("%w: received %d, minimum %d required", ErrInsufficientAnswers, len(answers), min)
	}
	return nil
}

// ValidateAnswers rejects answers to unknown questions, values outside a
// question's option range and repeated question ids. The analyzer itself
// accepts such input; this is the gate in front of it.
func ValidateAnswers(answers []Answer, cat *catalogue.Catalogue) error {
	var issues []AnswerIssue
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		if seen[a.QuestionID] {
			issues = append(issues, AnswerIssue{QuestionID: a.QuestionID, Value: a.Value, Reason: "duplicate answer"})
			continue
		}
		seen[a.QuestionID] = true
		q, ok := cat.Get(a.QuestionID)
		if !ok {
			issues = append(issues, AnswerIssue{QuestionID: a.QuestionID, Value: a.Value, Reason: "unknown question"})
			continue
		}
		if !q.InRange(a.Value) {
			lo, hi := q.Range()
			issues = append(issues, AnswerIssue{
				QuestionID: a.QuestionID,
				Value:      a.Value,
				Reason:     fmt.Sprintf("value %d outside range %d..%d", a.Value, lo, hi),
			})
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
