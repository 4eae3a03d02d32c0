package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_StoresLoggerInContext(t *testing.T) {
	var got *Logger
	handler := middleware.RequestID(RequestLogger(NewLogger(true))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetLoggerFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books", nil))

	require.NotNil(t, got)
	assert.NotSame(t, defaultLogger, got)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGetLoggerFromContext_FallsBack(t *testing.T) {
	assert.Same(t, defaultLogger, GetLoggerFromContext(context.Background()))

	logger := NewLogger(false)
	assert.Same(t, logger, GetLoggerFromContext(WithLogger(context.Background(), logger)))
}

func TestResponseWriter_CapturesFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	_, err := rw.Write([]byte("ok"))
	require.NoError(t, err)
	rw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusOK, rw.statusCode)
	assert.Equal(t, http.StatusOK, rec.Code)
}
