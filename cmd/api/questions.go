package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"qna/internal/domain/qna"

	"github.com/go-chi/chi/v5"
)

type CreateQuestionPayload struct {
	Title string `json:"title" validate:"question_title"`
}

var questionMessages = map[string]string{
	"Title.required": "Title required",
	"Title.max":      fmt.Sprintf("Title must be at most %d characters", qna.MaxTitleLength),
}

// parseIDParam reads a numeric path parameter. Malformed ids are reported as not found.
func parseIDParam(r *http.Request, name string, notFound error) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

// listQuestionsHandler godoc
//
//	@Summary		List questions
//	@Description	Every question newest first, each with its answers oldest first.
//	@Tags			questions
//	@Produce		json
//	@Success		200	{array}		qna.QuestionWithAnswers
//	@Failure		500	{object}	error
//	@Router			/questions [get]
func (app *application) listQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	questions, err := app.store.QnA.ListQuestions(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, questions); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createQuestionHandler godoc
//
//	@Summary		Create a question
//	@Tags			questions
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateQuestionPayload	true	"Question payload"
//	@Success		201		{object}	qna.Question
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Router			/questions [post]
func (app *application) createQuestionHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateQuestionPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	payload.Title = strings.TrimSpace(payload.Title)
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, validationError(err, questionMessages))
		return
	}

	question := &qna.Question{Title: payload.Title}
	if err := app.store.QnA.CreateQuestion(r.Context(), question); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Debugw("question created", "question_id", question.ID)

	if err := app.jsonResponse(w, http.StatusCreated, question); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteQuestionHandler godoc
//
//	@Summary		Delete a question
//	@Description	Deletes a question together with all of its answers.
//	@Tags			questions
//	@Param			questionID	path	int	true	"Question ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Failure		500	{object}	error
//	@Router			/questions/{questionID} [delete]
func (app *application) deleteQuestionHandler(w http.ResponseWriter, r *http.Request) {
	questionID, err := parseIDParam(r, "questionID", qna.ErrQuestionNotFound)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	if err := app.store.QnA.DeleteQuestion(r.Context(), questionID); err != nil {
		if errors.Is(err, qna.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
