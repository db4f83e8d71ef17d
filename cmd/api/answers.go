package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"qna/internal/domain/qna"
)

type CreateAnswerPayload struct {
	Text string `json:"text" validate:"answer_text"`
}

var answerMessages = map[string]string{
	"Text.required": "Answer text required",
	"Text.max":      fmt.Sprintf("Answer text must be at most %d characters", qna.MaxTextLength),
}

// VotePayload keeps vote raw so a number, boolean or array is reported as an
// invalid direction rather than a malformed body.
type VotePayload struct {
	Vote json.RawMessage `json:"vote" swaggertype:"string" enums:"up,down"`
}

// direction returns the requested vote, or "" when vote is not a JSON string.
func (p VotePayload) direction() qna.VoteType {
	var v string
	if err := json.Unmarshal(p.Vote, &v); err != nil {
		return ""
	}
	return qna.VoteType(v)
}

var errInvalidVote = errors.New("Invalid vote type")

// createAnswerHandler godoc
//
//	@Summary		Answer a question
//	@Tags			answers
//	@Accept			json
//	@Produce		json
//	@Param			questionID	path		int					true	"Question ID"
//	@Param			payload		body		CreateAnswerPayload	true	"Answer payload"
//	@Success		201			{object}	qna.Answer
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Router			/questions/{questionID}/answers [post]
func (app *application) createAnswerHandler(w http.ResponseWriter, r *http.Request) {
	questionID, err := parseIDParam(r, "questionID", qna.ErrQuestionNotFound)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	var payload CreateAnswerPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	payload.Text = strings.TrimSpace(payload.Text)
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, validationError(err, answerMessages))
		return
	}

	answer := &qna.Answer{
		QuestionID: questionID,
		Text:       payload.Text,
	}

	if err := app.store.QnA.CreateAnswer(r.Context(), answer); err != nil {
		if errors.Is(err, qna.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Debugw("answer created", "question_id", questionID, "answer_id", answer.ID)

	if err := app.jsonResponse(w, http.StatusCreated, answer); err != nil {
		app.internalServerError(w, r, err)
	}
}

// voteAnswerHandler godoc
//
//	@Summary		Vote on an answer
//	@Description	Adds one ("up") or removes one ("down") vote. Votes may go negative.
//	@Tags			answers
//	@Accept			json
//	@Produce		json
//	@Param			answerID	path		int			true	"Answer ID"
//	@Param			payload		body		VotePayload	true	"Vote payload"
//	@Success		200			{object}	qna.VoteResult
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Router			/answers/{answerID}/vote [put]
func (app *application) voteAnswerHandler(w http.ResponseWriter, r *http.Request) {
	answerID, err := parseIDParam(r, "answerID", qna.ErrAnswerNotFound)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	var payload VotePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	direction := payload.direction()
	if !direction.Valid() {
		// an unknown answer wins over a bad direction
		if _, err := app.store.QnA.GetAnswer(r.Context(), answerID); err != nil {
			if errors.Is(err, qna.ErrNotFound) {
				app.notFoundResponse(w, r, err)
				return
			}
			app.internalServerError(w, r, err)
			return
		}
		app.badRequestResponse(w, r, errInvalidVote)
		return
	}

	result, err := app.store.QnA.Vote(r.Context(), answerID, direction.Delta())
	if err != nil {
		if errors.Is(err, qna.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}
