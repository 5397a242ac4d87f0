package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/krishimitra/leafscan/internal/httpserver/deps"
	"github.com/krishimitra/leafscan/internal/httpserver/handlers"
)

func init() { Register(registerClasses) }

func registerClasses(r chi.Router, d deps.Deps) {
	r.Get("/classes", handlers.Classes(d))
}
