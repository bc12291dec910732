package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mbolis/quick-forms/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	root.Get("/health", Health(app))

	root.Route("/forms", func(r chi.Router) {
		r.Get("/", ListForms(app))
		r.Post("/", CreateForm(app))
		r.Get("/{id}", GetForm(app))
		r.Put("/{id}", UpdateForm(app))
		r.Put("/{id}/schema", ReplaceSchema(app))
		r.Delete("/{id}", DeleteForm(app))

		r.Get("/{id}/submissions", ListSubmissions(app))
		r.Post("/{id}/submissions", CreateSubmission(app))
	})

	root.Get("/submissions/{id}", GetSubmission(app))

	root.Mount("/", servePublicFiles())

	return root
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
