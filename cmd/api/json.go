package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"qna/internal/domain/qna"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	Validate.RegisterAlias("question_title", fmt.Sprintf("required,max=%d", qna.MaxTitleLength))
	Validate.RegisterAlias("answer_text", fmt.Sprintf("required,max=%d", qna.MaxTextLength))
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// readJSON parses the body into data. An empty body leaves data untouched.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Error string `json:"error"`
	}

	return writeJSON(w, status, &envelope{Error: message})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	return writeJSON(w, status, data)
}

// validationError turns the first failed field of a validator error into a client message.
// messages is keyed by "Field.tag", where tag is the tag inside an alias that failed; a field without an entry for its tag falls back to the
// entry keyed by the field alone.
func validationError(err error, messages map[string]string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	if msg, ok := messages[fe.Field()+"."+fe.ActualTag()]; ok {
		return errors.New(msg)
	}
	if msg, ok := messages[fe.Field()]; ok {
		return errors.New(msg)
	}
	return fmt.Errorf("%s is invalid", fe.Field())
}
