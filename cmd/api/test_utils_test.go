package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"qna/internal/db"
	"qna/internal/domain/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	sqlDB, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.MigrateSQLite(sqlDB))

	store := storage.NewSQLiteContainer(sqlDB)
	t.Cleanup(func() { store.Close() })

	return &application{
		config: config{
			Addr:   ":0",
			Env:    "test",
			APIURL: "localhost:8000",
			CORS:   corsConfig{AllowedOrigins: []string{"*"}},
		},
		logger: zap.NewNop().Sugar(),
		store:  store,
	}
}

func executeRequest(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

type errorBody struct {
	Error string `json:"error"`
}

type questionBody struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	CreatedAt string       `json:"created_at"`
	Answers   []answerBody `json:"answers"`
}

type answerBody struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Votes     int    `json:"votes"`
	CreatedAt string `json:"created_at"`
}

func postQuestion(t *testing.T, mux http.Handler, title string) questionBody {
	t.Helper()

	body, err := json.Marshal(map[string]string{"title": title})
	require.NoError(t, err)

	rr := executeRequest(t, mux, http.MethodPost, "/api/questions", string(body))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBody[questionBody](t, rr)
}

func postAnswer(t *testing.T, mux http.Handler, questionID int64, text string) answerBody {
	t.Helper()

	body, err := json.Marshal(map[string]string{"text": text})
	require.NoError(t, err)

	rr := executeRequest(t, mux, http.MethodPost, questionPath(questionID)+"/answers", string(body))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBody[answerBody](t, rr)
}

func listQuestions(t *testing.T, mux http.Handler) []questionBody {
	t.Helper()

	rr := executeRequest(t, mux, http.MethodGet, "/api/questions", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decodeBody[[]questionBody](t, rr)
}
