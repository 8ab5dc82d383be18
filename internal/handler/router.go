package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ouwenyi03/Jay-Agent/internal/handler/chat"
	"github.com/ouwenyi03/Jay-Agent/internal/handler/page"
	"github.com/ouwenyi03/Jay-Agent/internal/handler/persona"
	middlewarePkg "github.com/ouwenyi03/Jay-Agent/internal/middleware"
	"github.com/ouwenyi03/Jay-Agent/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(posts persona.PostSource, chatSvc chat.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	page.New(chatSvc.Profile()).RegisterRoutes(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		persona.New(posts).RegisterRoutes(api)
		chat.New(chatSvc).RegisterRoutes(api)
	})

	return r
}
