package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/server/storage"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("backend down")
}
func (failingStorage) Set(context.Context, string, string) error { return errors.New("backend down") }
func (failingStorage) Close() error                              { return nil }

func do(t *testing.T, h http.Handler, rawPath string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, rawPath, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp Response
	if rec.Header().Get("Content-Type") != "" && rec.Code != http.StatusTooManyRequests {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestRouter_SetThenGet(t *testing.T) {
	store := storage.NewMemoryStorage()
	r := NewRouter(Options{Storage: store})

	rec, resp := do(t, r, "/set/dnt0042/hello%20world")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Response{Status: common.StatusSuccess, Key: "dnt0042", Val: "hello world"}, resp)

	rec, resp = do(t, r, "/get/dnt0042")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Response{Status: common.StatusSuccess, Key: "dnt0042", Val: "hello world"}, resp)
}

func TestRouter_EncodedSlashesAndJSON(t *testing.T) {
	store := storage.NewMemoryStorage()
	r := NewRouter(Options{Storage: store})

	// [{"id":"A/B","title":"x y"}]
	encoded := "%5B%7B%22id%22%3A%22A%2FB%22%2C%22title%22%3A%22x%20y%22%7D%5D"
	rec, resp := do(t, r, "/set/a%2Fb/"+encoded)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a/b", resp.Key)
	assert.Equal(t, `[{"id":"A/B","title":"x y"}]`, resp.Val)

	v, ok, err := store.Get(context.Background(), "a/b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"A/B","title":"x y"}]`, v)
}

func TestRouter_EmptyValue(t *testing.T) {
	store := storage.NewMemoryStorage()
	require.NoError(t, store.Set(context.Background(), "dnt03012001_ABCDE", "old"))
	r := NewRouter(Options{Storage: store})

	rec, resp := do(t, r, "/set/dnt03012001_ABCDE/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, common.StatusSuccess, resp.Status)
	assert.Empty(t, resp.Val)

	v, _, err := store.Get(context.Background(), "dnt03012001_ABCDE")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestRouter_GetMissing(t *testing.T) {
	r := NewRouter(Options{Storage: storage.NewMemoryStorage()})

	rec, resp := do(t, r, "/get/nothing")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Response{Status: common.StatusSuccess, Key: "nothing"}, resp)
}

func TestRouter_TooLong(t *testing.T) {
	store := storage.NewMemoryStorage()
	r := NewRouter(Options{Storage: store, MaxKeyLength: 5, MaxValueLength: 3})

	rec, resp := do(t, r, "/set/abc/abcd")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, common.StatusTooLong, resp.Status)

	_, resp = do(t, r, "/set/abcdef/a")
	assert.Equal(t, common.StatusTooLong, resp.Status)

	// three runes, six bytes
	_, resp = do(t, r, "/set/abc/%C3%A9%C3%A9%C3%A9")
	assert.Equal(t, common.StatusSuccess, resp.Status)

	_, ok, err := store.Get(context.Background(), "abcdef")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRouter_StorageFailure(t *testing.T) {
	r := NewRouter(Options{Storage: failingStorage{}})

	rec, resp := do(t, r, "/set/k/v")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, StatusError, resp.Status)

	rec, resp = do(t, r, "/get/k")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, StatusError, resp.Status)
}

func TestRouter_NotFound(t *testing.T) {
	r := NewRouter(Options{Storage: storage.NewMemoryStorage()})

	rec, resp := do(t, r, "/delete/k")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, StatusNotFound, resp.Status)
}

func TestRouter_RequestID(t *testing.T) {
	r := NewRouter(Options{Storage: storage.NewMemoryStorage()})

	rec, _ := do(t, r, "/get/k")
	assert.NotEmpty(t, rec.Header().Get(common.RequestIDHeaderName))

	req := httptest.NewRequest(http.MethodGet, "/get/k", nil)
	req.Header.Set(common.RequestIDHeaderName, "req-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req-1", rec.Header().Get(common.RequestIDHeaderName))
}

func TestRouter_RateLimit(t *testing.T) {
	r := NewRouter(Options{Storage: storage.NewMemoryStorage(), RateLimit: 0.001, RateBurst: 2})

	for i := 0; i < 2; i++ {
		rec, _ := do(t, r, "/get/k")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, _ := do(t, r, "/get/k")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	srv := httptest.NewServer(NewRouter(Options{Storage: storage.NewMemoryStorage()}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/set/k/v")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `kvserver_http_requests_total{method="GET",path="/set/:key/*value",status="200"} 1`)
	assert.Contains(t, string(body), `kvserver_storage_operations_total{op="set",result="ok"} 1`)
}
