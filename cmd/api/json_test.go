package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	messages := map[string]string{
		"Title.required": "Title required",
		"Text":           "text is wrong",
	}

	type payload struct {
		Title string `validate:"required,max=3"`
		Text  string `validate:"omitempty,max=1"`
	}

	t.Run("field and tag", func(t *testing.T) {
		err := validationError(Validate.Struct(payload{}), messages)
		assert.EqualError(t, err, "Title required")
	})

	t.Run("field fallback", func(t *testing.T) {
		err := validationError(Validate.Struct(payload{Title: "ok", Text: "long"}), messages)
		assert.EqualError(t, err, "text is wrong")
	})

	t.Run("no message registered", func(t *testing.T) {
		err := validationError(Validate.Struct(payload{Title: "long"}), messages)
		assert.EqualError(t, err, "Title is invalid")
	})

	t.Run("tag inside an alias", func(t *testing.T) {
		aliased := struct {
			Title string `validate:"question_title"`
		}{Title: strings.Repeat("x", 501)}

		err := validationError(Validate.Struct(aliased), map[string]string{
			"Title.required": "Title required",
			"Title.max":      "too long",
		})
		assert.EqualError(t, err, "too long")
	})

	t.Run("not a validation error", func(t *testing.T) {
		in := errors.New("boom")
		assert.Equal(t, in, validationError(in, messages))
	})
}

func TestReadJSON(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	t.Run("empty body leaves the target untouched", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		require.NoError(t, readJSON(httptest.NewRecorder(), r, &dst))
		assert.Empty(t, dst.Title)
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x","extra":1}`))
		require.NoError(t, readJSON(httptest.NewRecorder(), r, &dst))
		assert.Equal(t, "x", dst.Title)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[1,2`))
		assert.Error(t, readJSON(httptest.NewRecorder(), r, &dst))
	})
}
