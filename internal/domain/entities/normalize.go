package entities

// NormalizeQuiz merges multiple-choice and true/false questions into one quiz:
// all multiple-choice questions first, then all true/false ones, each group in
// its received order. Nil collections count as empty.
func NormalizeQuiz(mc []MultipleChoiceQuestion, tf []TrueFalseQuestion) Quiz {
	questions := make([]Question, 0, len(mc)+len(tf))

	for _, q := range mc {
		questions = append(questions, Question{
			Kind:             KindMultipleChoice,
			Prompt:           q.Question,
			Options:          q.Options,
			CorrectOptionKey: q.CorrectOption,
		})
	}

	for _, q := range tf {
		questions = append(questions, Question{
			Kind:             KindTrueFalse,
			Prompt:           q.Statement,
			Options:          q.Options,
			CorrectOptionKey: q.CorrectOption,
		})
	}

	return Quiz{questions: questions}
}

// NormalizePayload normalizes a loaded payload. A nil payload yields an empty quiz.
func NormalizePayload(p *QuizPayload) Quiz {
	if p == nil {
		return Quiz{}
	}
	return NormalizeQuiz(p.MultipleChoice, p.TrueFalse)
}
