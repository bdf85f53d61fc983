package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/go-usuarios/httpx"
	"github.com/diewo77/go-usuarios/internal/db"
	"github.com/diewo77/go-usuarios/internal/models"
	"github.com/diewo77/go-usuarios/internal/services"
)

type UserHandler struct {
	db    *db.Provider
	users *services.UserService
}

func NewUserHandler(p *db.Provider, users *services.UserService) *UserHandler {
	return &UserHandler{db: p, users: users}
}

// Create accepts nombre (or name), email and premium from the query string,
// a form body or a JSON body.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	name, _ := p.first("nombre", "name")
	email, _ := p.first("email")
	premium, err := p.boolean("premium", false)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	var user *models.User
	err = h.db.Session(r.Context(), func(tx *gorm.DB) error {
		var err error
		user, err = h.users.Create(tx, services.NewUser{Name: name, Email: email, Premium: premium})
		return err
	})
	if err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	err := h.db.Session(r.Context(), func(tx *gorm.DB) error {
		var err error
		users, err = h.users.List(tx)
		return err
	})
	if err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, msgUserNotFound, nil)
		return
	}

	var user *models.User
	err := h.db.Session(r.Context(), func(tx *gorm.DB) error {
		var err error
		user, err = h.users.Get(tx, id)
		return err
	})
	if err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// Delete moves the user to the deleted state.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, msgUserNotFound, nil)
		return
	}

	err := h.db.Session(r.Context(), func(tx *gorm.DB) error {
		return h.users.Delete(tx, id)
	})
	if err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}
	httpx.NoContent(w)
}
