package scoring

// Answer is one submitted response.
type Answer struct {
	QuestionID string `json:"question_id"`
	Value      int    `json:"value"`
}

// AnswerSet maps question ids to submitted values.
type AnswerSet map[string]int

// NewAnswerSet builds an AnswerSet from a submission. Duplicate ids are not
// rejected; the last one wins.
func NewAnswerSet(answers []Answer) AnswerSet {
	set := make(AnswerSet, len(answers))
	for _, a := range answers {
		set[a.QuestionID] = a.Value
	}
	return set
}

// Value returns the answer for id, or def when the question was not answered.
func (s AnswerSet) Value(id string, def int) int {
	if v, ok := s[id]; ok {
		return v
	}
	return def
}

func (s AnswerSet) has(id string) bool {
	_, ok := s[id]
	return ok
}
