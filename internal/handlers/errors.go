package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-usuarios/httpx"
	"github.com/diewo77/go-usuarios/internal/services"
)

const (
	msgUserNotFound = "Usuario no encontrado"
	msgTaskNotFound = "Tarea no encontrada"
	msgInternal     = "Error interno del servidor"
)

// writeError translates a service error into a status code. Only constraint
// violations are the caller's fault; anything unexpected is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), verr.Violations)
	case errors.Is(err, services.ErrConstraintViolation):
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, notFound, nil)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		httpx.JSONError(w, http.StatusInternalServerError, msgInternal, nil)
	}
}
