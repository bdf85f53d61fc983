package main

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-usuarios/internal/db"
	"github.com/diewo77/go-usuarios/internal/handlers"
	"github.com/diewo77/go-usuarios/internal/middleware"
	"github.com/diewo77/go-usuarios/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	handler http.Handler
	db      *db.Provider
	log     zerolog.Logger
}

// NewApp creates a new application with all routes configured.
func NewApp(p *db.Provider, log zerolog.Logger) *App {
	app := &App{
		mux: http.NewServeMux(),
		db:  p,
		log: log,
	}
	app.setupRoutes()
	app.handler = middleware.RequestID(middleware.Logging(log)(app.mux))
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	users := services.NewUserService(a.log)
	tasks := services.NewTaskService(a.log, users)

	sh := handlers.NewSystemHandler(a.db)
	uh := handlers.NewUserHandler(a.db, users)
	th := handlers.NewTaskHandler(a.db, tasks)

	a.mux.HandleFunc("GET /{$}", sh.Root)
	a.mux.HandleFunc("GET /hello/{name}", sh.Hello)
	a.mux.HandleFunc("GET /debug-db", sh.DebugDB)
	a.mux.HandleFunc("GET /healthz", sh.Healthz)

	// Users
	a.mux.HandleFunc("POST /usuarios/{$}", uh.Create)
	a.mux.HandleFunc("GET /usuarios/{$}", uh.List)
	a.mux.HandleFunc("GET /usuarios/{id}", uh.View)
	a.mux.HandleFunc("DELETE /usuarios/{id}", uh.Delete)

	// Tasks
	a.mux.HandleFunc("POST /usuarios/{id}/tareas", th.Create)
	a.mux.HandleFunc("GET /usuarios/{id}/tareas", th.ListByUser)
	a.mux.HandleFunc("GET /tareas/{id}", th.View)
	a.mux.HandleFunc("PATCH /tareas/{id}", th.UpdateStatus)
}
