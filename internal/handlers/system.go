package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-usuarios/httpx"
	"github.com/diewo77/go-usuarios/internal/db"
)

type messageResponse struct {
	Message string `json:"message"`
}

// SystemHandler serves the endpoints that are not about users or tasks.
type SystemHandler struct {
	db *db.Provider
}

func NewSystemHandler(p *db.Provider) *SystemHandler {
	return &SystemHandler{db: p}
}

//revive:disable:unused-parameter simple handlers ignore *http.Request

func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "API de Gestión de Usuarios"})
}

func (h *SystemHandler) Hello(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "Hola " + name + ", bienvenido al sistema de usuarios"})
}

// Healthz pings the database.
func (h *SystemHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DebugDB reports which engine the service is talking to.
func (h *SystemHandler) DebugDB(w http.ResponseWriter, r *http.Request) {
	info, err := db.Probe(r.Context(), h.db.DB(r.Context()))
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("database probe failed")
		httpx.JSONError(w, http.StatusInternalServerError,
			"Error grave: No se pudo conectar a ninguna base de datos. "+err.Error(), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}
