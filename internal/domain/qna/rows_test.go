package qna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionAccumulator(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		var acc questionAccumulator
		got := acc.result()
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("groups consecutive rows and keeps order", func(t *testing.T) {
		var acc questionAccumulator
		acc.add(QuestionWithAnswers{ID: 3, Title: "c"}, &Answer{ID: 10, Text: "x"})
		acc.add(QuestionWithAnswers{ID: 3, Title: "c"}, &Answer{ID: 11, Text: "y"})
		acc.add(QuestionWithAnswers{ID: 2, Title: "b"}, nil)
		acc.add(QuestionWithAnswers{ID: 1, Title: "a"}, &Answer{ID: 7, Text: "z"})

		got := acc.result()
		require.Len(t, got, 3)

		assert.Equal(t, int64(3), got[0].ID)
		require.Len(t, got[0].Answers, 2)
		assert.Equal(t, int64(10), got[0].Answers[0].ID)
		assert.Equal(t, int64(11), got[0].Answers[1].ID)

		assert.Equal(t, int64(2), got[1].ID)
		assert.NotNil(t, got[1].Answers)
		assert.Empty(t, got[1].Answers)

		assert.Equal(t, int64(1), got[2].ID)
		require.Len(t, got[2].Answers, 1)
	})
}
