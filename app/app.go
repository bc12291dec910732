package app

import (
	"database/sql"

	"github.com/mbolis/quick-forms/config"
	"github.com/mbolis/quick-forms/repository"
)

// App bundles the shared store handle and the repositories built over it,
// so handlers receive their dependencies instead of reaching for globals.
type App struct {
	DB          *sql.DB
	Forms       *repository.Forms
	Submissions *repository.Submissions
	config.Config
}

func New(db *sql.DB, cfg config.Config) App {
	return App{
		DB:          db,
		Forms:       repository.NewForms(db),
		Submissions: repository.NewSubmissions(db),
		Config:      cfg,
	}
}
