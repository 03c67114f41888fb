package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Jeomhps/hotelbooking-api/internal/booking"
	"github.com/Jeomhps/hotelbooking-api/internal/store"
	"github.com/Jeomhps/hotelbooking-api/internal/store/jsonstore"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newRouter(repo store.Repository) *gin.Engine {
	h := New(repo, quietLogger())
	r := gin.New()
	r.GET("/Hotelbooking", h.List)
	r.GET("/Hotelbooking/:id", h.Get)
	r.POST("/Hotelbooking", h.Create)
	r.PUT("/Hotelbooking/:id", h.Update)
	r.DELETE("/Hotelbooking/:id", h.Delete)
	return r
}

func newJSONRouter(t *testing.T) *gin.Engine {
	t.Helper()
	s, err := jsonstore.Open(filepath.Join(t.TempDir(), "db.json"), quietLogger())
	require.NoError(t, err)
	return newRouter(s)
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestBookingLifecycle(t *testing.T) {
	r := newJSONRouter(t)

	w := do(r, http.MethodGet, "/Hotelbooking", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(r, http.MethodPost, "/Hotelbooking", `{"email":"mailtomeveera@gmail.com","name":"A Veerappan"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), `{"id":`), w.Body.String())
	created := decodeObject(t, w)
	id, _ := created["id"].(string)
	assert.Len(t, id, store.IDLength)
	assert.Equal(t, "A Veerappan", created["name"])
	assert.Equal(t, "mailtomeveera@gmail.com", created["email"])
	assert.Len(t, created, 3)

	w = do(r, http.MethodGet, "/Hotelbooking/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decodeObject(t, w))

	w = do(r, http.MethodPut, "/Hotelbooking/"+id, `{"email":"new@x.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeObject(t, w)
	assert.Equal(t, id, updated["id"])
	assert.Equal(t, "A Veerappan", updated["name"])
	assert.Equal(t, "new@x.com", updated["email"])

	w = do(r, http.MethodDelete, "/Hotelbooking/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, http.MethodGet, "/Hotelbooking/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestListInCreationOrder(t *testing.T) {
	r := newJSONRouter(t)

	var ids []string
	for _, n := range []string{"first", "second", "third"} {
		w := do(r, http.MethodPost, "/Hotelbooking", `{"name":"`+n+`","email":"`+n+`@x.com"}`)
		require.Equal(t, http.StatusOK, w.Code)
		ids = append(ids, decodeObject(t, w)["id"].(string))
	}

	w := do(r, http.MethodGet, "/Hotelbooking", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), `[{"id":`), w.Body.String())
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	for i, b := range list {
		assert.Equal(t, ids[i], b["id"])
	}
}

func TestCreateKeepsExtraFieldsAndIgnoresID(t *testing.T) {
	r := newJSONRouter(t)

	w := do(r, http.MethodPost, "/Hotelbooking", `{"id":"mine","name":"A","email":"a@x.com","nights":12345678901234567890,"guests":[{"n":"x"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"nights":12345678901234567890`)

	created := decodeObject(t, w)
	assert.NotEqual(t, "mine", created["id"])
	assert.Equal(t, []any{map[string]any{"n": "x"}}, created["guests"])
}

func TestUpdateCannotOverrideID(t *testing.T) {
	r := newJSONRouter(t)

	w := do(r, http.MethodPost, "/Hotelbooking", `{"name":"A","email":"a@x.com"}`)
	id := decodeObject(t, w)["id"].(string)

	w = do(r, http.MethodPut, "/Hotelbooking/"+id, `{"id":"other","room":"12"}`)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeObject(t, w)
	assert.Equal(t, map[string]any{"id": id, "name": "A", "email": "a@x.com", "room": "12"}, got)

	w = do(r, http.MethodGet, "/Hotelbooking/other", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotFound(t *testing.T) {
	r := newJSONRouter(t)

	tests := []struct {
		method, body string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"name":"x"}`},
		{http.MethodDelete, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := do(r, tt.method, "/Hotelbooking/nope", tt.body)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Empty(t, w.Body.String())
		})
	}
}

func TestDeleteTwice(t *testing.T) {
	r := newJSONRouter(t)

	w := do(r, http.MethodPost, "/Hotelbooking", `{"name":"A","email":"a@x.com"}`)
	id := decodeObject(t, w)["id"].(string)

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/Hotelbooking/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/Hotelbooking/"+id, "").Code)
}

func TestInvalidBodies(t *testing.T) {
	r := newJSONRouter(t)

	w := do(r, http.MethodPost, "/Hotelbooking", `{"name":"A","email":"a@x.com"}`)
	id := decodeObject(t, w)["id"].(string)

	tests := []struct {
		name, method, path, body string
	}{
		{"create empty body", http.MethodPost, "/Hotelbooking", ""},
		{"create array", http.MethodPost, "/Hotelbooking", `[{"name":"A"}]`},
		{"create null", http.MethodPost, "/Hotelbooking", `null`},
		{"create malformed", http.MethodPost, "/Hotelbooking", `{"name":`},
		{"create missing email", http.MethodPost, "/Hotelbooking", `{"name":"A"}`},
		{"create two objects", http.MethodPost, "/Hotelbooking", `{"name":"A","email":"a@x.com"} {}`},
		{"update empty name", http.MethodPut, "/Hotelbooking/" + id, `{"name":""}`},
		{"update not object", http.MethodPut, "/Hotelbooking/" + id, `"x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "invalid_request", decodeObject(t, w)["error"])
		})
	}

	// nothing extra was stored
	w = do(r, http.MethodGet, "/Hotelbooking", "")
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

// failingRepo fails every call with a storage error.
type failingRepo struct{ err error }

func (f failingRepo) List(context.Context) ([]booking.Booking, error) { return nil, f.err }
func (f failingRepo) FindByID(context.Context, string) (booking.Booking, error) {
	return nil, f.err
}
func (f failingRepo) Create(context.Context, map[string]any) (booking.Booking, error) {
	return nil, f.err
}
func (f failingRepo) Update(context.Context, string, map[string]any) (booking.Booking, error) {
	return nil, f.err
}
func (f failingRepo) Delete(context.Context, string) error { return f.err }
func (f failingRepo) Ping(context.Context) error           { return f.err }
func (f failingRepo) Close() error                         { return nil }

func TestStorageFailuresReturn500(t *testing.T) {
	r := newRouter(failingRepo{err: store.Storage("write", errors.New("disk full"))})

	tests := []struct {
		name, method, path, body string
	}{
		{"list", http.MethodGet, "/Hotelbooking", ""},
		{"get", http.MethodGet, "/Hotelbooking/x", ""},
		{"create", http.MethodPost, "/Hotelbooking", `{"name":"A","email":"a@x.com"}`},
		{"update", http.MethodPut, "/Hotelbooking/x", `{"name":"B"}`},
		{"delete", http.MethodDelete, "/Hotelbooking/x", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "storage: write: disk full", decodeObject(t, w)["error"])
		})
	}
}
