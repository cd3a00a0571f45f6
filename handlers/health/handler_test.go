package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tau-lavender/graffity-report/store"
	"github.com/tau-lavender/graffity-report/testutils"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

type stubStorage struct {
	configured bool
	pingErr    error
}

func (s stubStorage) Configured() bool               { return s.configured }
func (s stubStorage) Ping(ctx context.Context) error { return s.pingErr }

func get(h *Handler, path string) *httptest.ResponseRecorder {
	r := testutils.SetupTestRouter()
	r.GET("/health", h.Live)
	r.GET("/api/db/health", h.Database)
	r.GET("/api/storage/health", h.Storage)

	req, _ := http.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestLive(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), stubStorage{configured: true})

	resp := get(h, "/health")

	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Equal(t, "ok", body["status"])
}

func TestDatabase_MemoryStoreAlwaysHealthy(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), stubStorage{configured: true})

	resp := get(h, "/api/db/health")

	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Equal(t, true, body["ok"])
}

func TestStorage_Unconfigured(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), stubStorage{configured: false})

	resp := get(h, "/api/storage/health")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)

	var body map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Equal(t, false, body["ok"])
	assert.NotEmpty(t, body["error"])
}

func TestStorage_PingFailure(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), stubStorage{configured: true, pingErr: fmt.Errorf("connection refused")})

	resp := get(h, "/api/storage/health")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestStorage_Healthy(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), stubStorage{configured: true})

	resp := get(h, "/api/storage/health")

	assert.Equal(t, http.StatusOK, resp.Code)
}
