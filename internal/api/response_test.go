package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/afjrotc/logistics/internal/store"
)

func TestWriteErrorLogsUnhandledErrors(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rs := responder{log: zap.New(core)}

	w := httptest.NewRecorder()
	rs.writeError(w, errors.New("disk on fire"))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	entries := logs.FilterMessage("unhandled error").All()
	if len(entries) != 1 {
		t.Fatalf("expected one unhandled error log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["error"]; got != "disk on fire" {
		t.Errorf("expected logged error, got %v", got)
	}
}

func TestWriteErrorMapsKnownErrorsQuietly(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rs := responder{log: zap.New(core)}

	w := httptest.NewRecorder()
	rs.writeError(w, store.ErrDuplicateEmail)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if logs.Len() != 0 {
		t.Errorf("expected no logs, got %d", logs.Len())
	}
}
