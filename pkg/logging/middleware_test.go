package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddleware_MintsRunIDWhenHeaderAbsent(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRunID(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	RequestIDMiddleware(next).ServeHTTP(rec, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Run-ID"))
}

func TestRequestIDMiddleware_PropagatesIncomingRunID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRunID(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	req.Header.Set("X-Run-ID", "run-existing")
	RequestIDMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, "run-existing", seen)
	assert.Equal(t, "run-existing", rec.Header().Get("X-Run-ID"))
}

func TestRequestIDMiddleware_ErrorStatusStillCompletes(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rules/missing", nil)
	RequestIDMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
