package main

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionPath(id int64) string {
	return "/api/questions/" + strconv.FormatInt(id, 10)
}

func TestCreateQuestion(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	t.Run("should create a question", func(t *testing.T) {
		rr := executeRequest(t, mux, http.MethodPost, "/api/questions", `{"title":"Why is the sky blue?"}`)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		q := decodeBody[questionBody](t, rr)
		assert.Positive(t, q.ID)
		assert.Equal(t, "Why is the sky blue?", q.Title)
		_, err := time.Parse(time.RFC3339Nano, q.CreatedAt)
		assert.NoError(t, err)
		assert.NotContains(t, rr.Body.String(), "answers")
	})

	t.Run("should trim the title", func(t *testing.T) {
		q := postQuestion(t, mux, "   padded   ")
		assert.Equal(t, "padded", q.Title)
	})

	t.Run("should accept a title of exactly 500 characters", func(t *testing.T) {
		q := postQuestion(t, mux, strings.Repeat("é", 500))
		assert.Equal(t, strings.Repeat("é", 500), q.Title)
	})

	badRequests := []struct {
		name string
		body string
		want string
	}{
		{"empty title", `{"title":""}`, "Title required"},
		{"whitespace title", `{"title":"  \t\n "}`, "Title required"},
		{"missing title", `{}`, "Title required"},
		{"null title", `{"title":null}`, "Title required"},
		{"empty body", ``, "Title required"},
		{"too long title", `{"title":"` + strings.Repeat("a", 501) + `"}`, "Title must be at most 500 characters"},
	}
	for _, tt := range badRequests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			rr := executeRequest(t, mux, http.MethodPost, "/api/questions", tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.want, decodeBody[errorBody](t, rr).Error)
		})
	}

	t.Run("should reject malformed JSON", func(t *testing.T) {
		rr := executeRequest(t, mux, http.MethodPost, "/api/questions", `{"title":`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.NotEmpty(t, decodeBody[errorBody](t, rr).Error)
	})
}

func TestListQuestions(t *testing.T) {
	t.Run("should return an empty array for an empty store", func(t *testing.T) {
		mux := newTestApplication(t).mount()

		rr := executeRequest(t, mux, http.MethodGet, "/api/questions", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("should include a new question with an empty answers array", func(t *testing.T) {
		mux := newTestApplication(t).mount()

		created := postQuestion(t, mux, "Why is the sky blue?")

		rr := executeRequest(t, mux, http.MethodGet, "/api/questions", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"answers":[]`)

		questions := decodeBody[[]questionBody](t, rr)
		require.Len(t, questions, 1)
		assert.Equal(t, created.ID, questions[0].ID)
		assert.Equal(t, created.Title, questions[0].Title)
		assert.Equal(t, created.CreatedAt, questions[0].CreatedAt)
	})

	t.Run("should list newest questions first and answers oldest first", func(t *testing.T) {
		mux := newTestApplication(t).mount()

		q1 := postQuestion(t, mux, "Q1")
		q2 := postQuestion(t, mux, "Q2")
		a1 := postAnswer(t, mux, q1.ID, "A1")
		a2 := postAnswer(t, mux, q1.ID, "A2")

		questions := listQuestions(t, mux)
		require.Len(t, questions, 2)
		assert.Equal(t, q2.ID, questions[0].ID)
		assert.Empty(t, questions[0].Answers)

		assert.Equal(t, q1.ID, questions[1].ID)
		require.Len(t, questions[1].Answers, 2)
		assert.Equal(t, a1.ID, questions[1].Answers[0].ID)
		assert.Equal(t, a2.ID, questions[1].Answers[1].ID)
	})
}

func TestDeleteQuestion(t *testing.T) {
	mux := newTestApplication(t).mount()

	q := postQuestion(t, mux, "temporary")
	a := postAnswer(t, mux, q.ID, "gone soon")
	kept := postQuestion(t, mux, "kept")

	rr := executeRequest(t, mux, http.MethodDelete, questionPath(q.ID), "")
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	questions := listQuestions(t, mux)
	require.Len(t, questions, 1)
	assert.Equal(t, kept.ID, questions[0].ID)

	t.Run("answers of a deleted question are gone", func(t *testing.T) {
		rr := executeRequest(t, mux, http.MethodPut, answerVotePath(a.ID), `{"vote":"up"}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("deleting twice is not found", func(t *testing.T) {
		rr := executeRequest(t, mux, http.MethodDelete, questionPath(q.ID), "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non-numeric id is not found", func(t *testing.T) {
		rr := executeRequest(t, mux, http.MethodDelete, "/api/questions/abc", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
