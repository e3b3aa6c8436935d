package entities

// Quiz is the ordered question sequence of one session.
// It is never modified after it has been built.
type Quiz struct {
	questions []Question
}

// NewQuiz builds a quiz from already ordered questions.
func NewQuiz(questions []Question) Quiz {
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return Quiz{questions: qs}
}

// Len returns the total number of questions.
func (q Quiz) Len() int {
	return len(q.questions)
}

// IsEmpty reports whether the quiz has no questions.
func (q Quiz) IsEmpty() bool {
	return len(q.questions) == 0
}

// Question returns the question at index i.
func (q Quiz) Question(i int) (Question, bool) {
	if i < 0 || i >= len(q.questions) {
		return Question{}, false
	}
	return q.questions[i], true
}

// Questions returns a copy of all questions.
func (q Quiz) Questions() []Question {
	out := make([]Question, len(q.questions))
	copy(out, q.questions)
	return out
}

// AnswerRecord maps a question index to the selected option key.
// An index is present only once the user has chosen an option for it.
type AnswerRecord map[int]string

// Answered reports whether index i has an answer.
func (a AnswerRecord) Answered(i int) bool {
	_, ok := a[i]
	return ok
}

// Clone returns an independent copy of the record.
func (a AnswerRecord) Clone() AnswerRecord {
	out := make(AnswerRecord, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
