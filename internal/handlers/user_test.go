package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-usuarios/httpx"
	"github.com/diewo77/go-usuarios/internal/models"
	"github.com/diewo77/go-usuarios/internal/services"
	"github.com/diewo77/go-usuarios/internal/testutil"
)

func setupUserHandler(t *testing.T) *UserHandler {
	t.Helper()
	p, _ := testutil.OpenInMemoryDB(t)
	return NewUserHandler(p, services.NewUserService(zerolog.Nop()))
}

func postUser(t *testing.T, h *UserHandler, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/usuarios/?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	h.Create(w, req)
	return w
}

func TestUserCreateFromQuery(t *testing.T) {
	h := setupUserHandler(t)

	w := postUser(t, h, url.Values{"nombre": {"Ana"}, "email": {"ana@example.com"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var u models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, models.UserStatusActive, u.Status)
	assert.False(t, u.Premium)
}

func TestUserCreateFromJSON(t *testing.T) {
	h := setupUserHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/usuarios/", strings.NewReader(`{"name":"Bea","email":"bea@example.com","premium":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var u models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, "Bea", u.Name)
	assert.True(t, u.Premium)
}

func TestUserCreateFromForm(t *testing.T) {
	h := setupUserHandler(t)

	form := url.Values{"nombre": {"Cris"}, "email": {"cris@example.com"}, "premium": {"1"}}
	req := httptest.NewRequest(http.MethodPost, "/usuarios/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Create(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"premium":true`)
}

func TestUserCreateBadInput(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
	}{
		{"missing email", url.Values{"nombre": {"Ana"}}},
		{"bad premium", url.Values{"nombre": {"Ana"}, "email": {"ana@example.com"}, "premium": {"maybe"}}},
		{"long email", url.Values{"nombre": {"Ana"}, "email": {strings.Repeat("a", 95) + "@example.com"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupUserHandler(t)
			w := postUser(t, h, tt.query)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body httpx.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Detail)
		})
	}
}

func TestUserCreateMalformedJSON(t *testing.T) {
	h := setupUserHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/usuarios/", strings.NewReader(`{"nombre":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserCreateDuplicate(t *testing.T) {
	h := setupUserHandler(t)
	q := url.Values{"nombre": {"Ana"}, "email": {"ana@example.com"}}
	require.Equal(t, http.StatusCreated, postUser(t, h, q).Code)

	w := postUser(t, h, q)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestUserViewAndList(t *testing.T) {
	h := setupUserHandler(t)
	w := postUser(t, h, url.Values{"nombre": {"Ana"}, "email": {"ana@example.com"}})
	var created models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/usuarios/"+strconv.Itoa(int(created.ID)), nil)
	req.SetPathValue("id", strconv.Itoa(int(created.ID)))
	w = httptest.NewRecorder()
	h.View(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":`+strconv.Itoa(int(created.ID))+`,"nombre":"Ana","email":"ana@example.com","estado":"Activo","premium":false}`, w.Body.String())

	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/usuarios/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestUserListEmptyIsArray(t *testing.T) {
	h := setupUserHandler(t)
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/usuarios/", nil))
	assert.Equal(t, "[]", w.Body.String())
}

func TestUserViewNotFound(t *testing.T) {
	h := setupUserHandler(t)
	for _, id := range []string{"42", "abc", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/usuarios/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		h.View(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, "id %s", id)
		assert.JSONEq(t, `{"detail":"Usuario no encontrado"}`, w.Body.String())
	}
}

func TestUserDelete(t *testing.T) {
	h := setupUserHandler(t)
	w := postUser(t, h, url.Values{"nombre": {"Ana"}, "email": {"ana@example.com"}})
	var created models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := strconv.Itoa(int(created.ID))

	del := func() int {
		req := httptest.NewRequest(http.MethodDelete, "/usuarios/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		h.Delete(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusNoContent, del())
	assert.Equal(t, http.StatusNotFound, del())

	req := httptest.NewRequest(http.MethodGet, "/usuarios/"+id, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	h.View(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
