package entities

// Score counts the questions whose recorded answer equals the correct option.
// Unanswered questions and answers for indices outside the quiz count as zero.
func Score(quiz Quiz, answers AnswerRecord) int {
	score := 0
	for i, key := range answers {
		q, ok := quiz.Question(i)
		if ok && q.IsCorrect(key) {
			score++
		}
	}
	return score
}
