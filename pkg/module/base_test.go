package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseModuleHealthRoute(t *testing.T) {
	m := NewBaseModule("industry", nil, nil)

	r := chi.NewRouter()
	m.RegisterHealthRoute(r)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Status string `json:"status"`
		Module string `json:"module"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "industry", body.Module)
}

func TestBaseModuleStopIsIdempotent(t *testing.T) {
	m := NewBaseModule("dataset", nil, nil)

	m.Stop()
	m.Stop()

	select {
	case <-m.StopChannel():
	default:
		t.Fatal("stop channel should be closed after Stop")
	}
}

func TestBaseModuleStopUnblocksBackgroundTasks(t *testing.T) {
	m := NewBaseModule("extractor", nil, nil)

	done := make(chan struct{})
	go func() {
		m.StartBackgroundTasks(context.Background())
		close(done)
	}()

	m.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background tasks did not stop")
	}
}

func TestBaseModuleDegradedAccessors(t *testing.T) {
	m := NewBaseModule("extractor", nil, nil)

	assert.Equal(t, "extractor", m.Name())
	assert.Nil(t, m.MongoDB())
	assert.Nil(t, m.Redis())
}
