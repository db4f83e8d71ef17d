package main

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

func (app *application) indexHandler(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Version string
	}{
		Version: version,
	}

	// Render into a buffer so a template error can still produce a clean 500.
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
