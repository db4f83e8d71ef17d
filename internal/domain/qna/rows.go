package qna

// questionAccumulator folds the rows of a questions LEFT JOIN answers query,
// already sorted by the database, into nested questions without reordering them.
type questionAccumulator struct {
	questions []QuestionWithAnswers
}

// add appends a row. answer is nil for a question without answers.
func (a *questionAccumulator) add(q QuestionWithAnswers, answer *Answer) {
	n := len(a.questions)
	if n == 0 || a.questions[n-1].ID != q.ID {
		q.Answers = []Answer{}
		a.questions = append(a.questions, q)
		n++
	}
	if answer != nil {
		a.questions[n-1].Answers = append(a.questions[n-1].Answers, *answer)
	}
}

func (a *questionAccumulator) result() []QuestionWithAnswers {
	if a.questions == nil {
		return []QuestionWithAnswers{}
	}
	return a.questions
}
