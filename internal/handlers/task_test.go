package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-usuarios/internal/models"
	"github.com/diewo77/go-usuarios/internal/services"
	"github.com/diewo77/go-usuarios/internal/testutil"
)

func setupTaskHandler(t *testing.T) (*TaskHandler, *models.User) {
	t.Helper()
	p, conn := testutil.OpenInMemoryDB(t)
	users := services.NewUserService(zerolog.Nop())
	owner := models.User{Name: "Ana", Email: "ana@example.com", Status: models.UserStatusActive}
	require.NoError(t, conn.Create(&owner).Error)
	return NewTaskHandler(p, services.NewTaskService(zerolog.Nop(), users)), &owner
}

func jsonRequest(method, target, id, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", id)
	return req
}

func TestTaskCreateListView(t *testing.T) {
	h, owner := setupTaskHandler(t)
	ownerID := strconv.Itoa(int(owner.ID))

	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/usuarios/"+ownerID+"/tareas", ownerID, `{"nombre":"Compras","descripcion":"pan"}`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.Contains(t, w.Body.String(), `"fecha_modificacion":null`)

	w = httptest.NewRecorder()
	h.ListByUser(w, jsonRequest(http.MethodGet, "/usuarios/"+ownerID+"/tareas", ownerID, ""))
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	taskID := strconv.Itoa(int(task.ID))
	w = httptest.NewRecorder()
	h.View(w, jsonRequest(http.MethodGet, "/tareas/"+taskID, taskID, ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"nombre":"Compras"`)
}

func TestTaskCreateUnknownOwner(t *testing.T) {
	h, _ := setupTaskHandler(t)
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/usuarios/77/tareas", "77", `{"nombre":"x"}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), msgUserNotFound)
}

func TestTaskCreateMissingName(t *testing.T) {
	h, owner := setupTaskHandler(t)
	id := strconv.Itoa(int(owner.ID))
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/usuarios/"+id+"/tareas", id, `{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskUpdateStatus(t *testing.T) {
	h, owner := setupTaskHandler(t)
	id := strconv.Itoa(int(owner.ID))
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/usuarios/"+id+"/tareas", id, `{"nombre":"x"}`))
	require.Equal(t, http.StatusCreated, w.Code)
	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	taskID := strconv.Itoa(int(task.ID))

	w = httptest.NewRecorder()
	h.UpdateStatus(w, jsonRequest(http.MethodPatch, "/tareas/"+taskID, taskID, `{"estado":"Realizada"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.TaskStatusDone, updated.Status)
	assert.NotNil(t, updated.ModifiedAt)

	w = httptest.NewRecorder()
	h.UpdateStatus(w, jsonRequest(http.MethodPatch, "/tareas/"+taskID, taskID, `{"estado":"Perdida"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.UpdateStatus(w, jsonRequest(http.MethodPatch, "/tareas/999", "999", `{"estado":"Realizada"}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), msgTaskNotFound)
}

func TestReadParamsEmptyJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x?nombre=q", nil)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	p, err := readParams(req)
	require.NoError(t, err)
	v, ok := p.first("name", "nombre")
	assert.True(t, ok)
	assert.Equal(t, "q", v)
}

func TestReadParamsRejectsNested(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"nombre":{"a":1}}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := readParams(req)
	assert.ErrorIs(t, err, errInvalidRequestBody)
}
