package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/go-usuarios/httpx"
	"github.com/diewo77/go-usuarios/internal/db"
	"github.com/diewo77/go-usuarios/internal/models"
	"github.com/diewo77/go-usuarios/internal/services"
)

type TaskHandler struct {
	db    *db.Provider
	tasks *services.TaskService
}

func NewTaskHandler(p *db.Provider, tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{db: p, tasks: tasks}
}

// Create adds a task to the user in the path.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, msgUserNotFound, nil)
		return
	}
	p, err := readParams(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	in := services.NewTask{}
	in.Name, _ = p.first("nombre", "name")
	if d, ok := p.first("descripcion", "description"); ok {
		in.Description = &d
	}

	var task *models.Task
	err = h.db.Session(r.Context(), func(tx *gorm.DB) error {
		var err error
		task, err = h.tasks.Create(tx, ownerID, in)
		return err
	})
	if err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}
	httpx.JSON(w, http.StatusCreated, task)
}

// ListByUser lists the tasks of the user in the path.
func (h *TaskHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, msgUserNotFound, nil)
		return
	}

	var tasks []models.Task
	err := h.db.Session(r.Context(), func(tx *gorm.DB) error {
		var err error
		tasks, err = h.tasks.ListByUser(tx, ownerID)
		return err
	})
	if err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, msgTaskNotFound, nil)
		return
	}

	var task *models.Task
	err := h.db.Session(r.Context(), func(tx *gorm.DB) error {
		var err error
		task, err = h.tasks.Get(tx, id)
		return err
	})
	if err != nil {
		writeError(w, r, err, msgTaskNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, task)
}

// UpdateStatus changes the estado of a task.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, msgTaskNotFound, nil)
		return
	}
	p, err := readParams(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	status, _ := p.first("estado", "status")

	var task *models.Task
	err = h.db.Session(r.Context(), func(tx *gorm.DB) error {
		var err error
		task, err = h.tasks.UpdateStatus(tx, id, models.TaskStatus(status))
		return err
	})
	if err != nil {
		writeError(w, r, err, msgTaskNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, task)
}
