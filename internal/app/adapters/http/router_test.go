package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	addrsvc "github.com/opfobo/taxmate-sub000/internal/app/adapters/address"
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/config"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/storage"
	"github.com/opfobo/taxmate-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken = "secret"
	sampleRU  = "Иванов Иван Иванович\nг. Москва, ул. Тверская, д. 1, кв. 5\n101000"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	m, err := config.New(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	require.NoError(t, m.Update(func(cfg *config.Config) {
		cfg.App.AuthToken = testToken
		cfg.Limiter = config.Limiter{}
		cfg.Storage.FilePath = filepath.Join(dir, "addresses.json")
	}))
	cfg := m.Get()

	sessions := storage.NewSessions(4, time.Minute, 10, 0)
	t.Cleanup(sessions.Close)

	store, err := storage.NewFileStore(cfg.Storage.FilePath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	return NewRouter(logger.Discard(), m, addrsvc.New(logger.Discard(), cfg.Parser, nil), sessions, store)
}

func call(t *testing.T, r *Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	return w
}

type sessionBody struct {
	SessionID string           `json:"session_id"`
	Strategy  string           `json:"strategy"`
	UndoDepth int              `json:"undo_depth"`
	Set       address.FieldSet `json:"set"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRouter_Detect(t *testing.T) {
	r := newTestRouter(t)

	w := call(t, r, http.MethodPost, "/api/v1/detect", gin.H{"text": "Москва, Tverskaya"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"script":"cyrillic","mixed_script":true}`, w.Body.String())

	w = call(t, r, http.MethodPost, "/api/v1/transliterate", gin.H{"text": "Щукино"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":"Щукино","result":"Shchukino"}`, w.Body.String())
}

func TestRouter_Auth(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/detect", strings.NewReader(`{"text":"x"}`))
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("admin", testToken)
	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "addr_http_requests_total")
}

func TestRouter_SessionFlow(t *testing.T) {
	r := newTestRouter(t)

	w := call(t, r, http.MethodPost, "/api/v1/parse", gin.H{"text": sampleRU})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	parsed := decode[sessionBody](t, w)
	require.NotEmpty(t, parsed.SessionID)
	assert.Equal(t, "cyrillic", parsed.Strategy)
	assert.Equal(t, "Тверская", parsed.Set.Value(address.KeyStreet))
	assert.Equal(t, "Москва", parsed.Set.Value(address.KeyCity))

	base := "/api/v1/sessions/" + parsed.SessionID

	w = call(t, r, http.MethodPost, base+"/edits", address.SetValueEdit(1, "Арбат"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	edited := decode[sessionBody](t, w)
	assert.Equal(t, "Арбат", edited.Set.Value(address.KeyStreet))
	assert.Equal(t, "Arbat", edited.Set.Translit(address.KeyStreet))
	assert.Equal(t, 1, edited.UndoDepth)

	w = call(t, r, http.MethodPost, base+"/edits", address.RemoveEdit(99))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = call(t, r, http.MethodPost, base+"/edits", gin.H{"op": "retype", "index": 0, "key": "zip"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, r, http.MethodPost, base+"/undo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Тверская", decode[sessionBody](t, w).Set.Value(address.KeyStreet))

	w = call(t, r, http.MethodPost, base+"/undo", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(t, r, http.MethodPost, base+"/commit", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":"`+parsed.SessionID+`"}`, w.Body.String())

	w = call(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(t, r, http.MethodGet, "/api/v1/addresses/"+parsed.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rec := decode[address.Record](t, w)
	assert.Equal(t, "Тверская", rec.Fields["street"])
	assert.Equal(t, "Tverskaya", rec.Translit["street"])
	assert.Equal(t, sampleRU, rec.Source)

	w = call(t, r, http.MethodGet, "/api/v1/addresses?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[struct {
		Count int `json:"count"`
	}](t, w).Count)

	w = call(t, r, http.MethodGet, "/api/v1/addresses?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, r, http.MethodGet, "/api/v1/addresses/export.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func TestRouter_Errors(t *testing.T) {
	r := newTestRouter(t)

	w := call(t, r, http.MethodPost, "/api/v1/parse", gin.H{"text": "x", "strategy": "greek"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, r, http.MethodGet, "/api/v1/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"session not found"}`, w.Body.String())

	w = call(t, r, http.MethodGet, "/api/v1/addresses/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Status(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sessions":0`)
}

func TestRouter_Preview(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t).Handler())
	defer srv.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+testToken)
	ws, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/preview", header)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer ws.Close()

	for _, tc := range []struct{ text, city string }{
		{"г. Москва", "Москва"},
		{"12 Main Street\nSpringfield, IL 62704", "Springfield"},
	} {
		require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(tc.text)))

		var set address.FieldSet
		require.NoError(t, ws.ReadJSON(&set))
		assert.Equal(t, tc.city, set.Value(address.KeyCity))
	}
}
