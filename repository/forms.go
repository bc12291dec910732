// Package repository holds the data access layer. Repositories are the only
// code that touches SQL; they serialize config and payload values on write
// and parse them back on every read, so raw stored text never leaks out.
// A missing row is reported as a nil result, not an error.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/model"
)

type Forms struct {
	db *sql.DB
}

func NewForms(db *sql.DB) *Forms {
	return &Forms{db: db}
}

const formColumns = "id, name, description, status, createdAt, updatedAt"

// List returns all forms, newest first, without their fields.
func (r *Forms) List(ctx context.Context) ([]model.Form, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+formColumns+`
		FROM forms
		ORDER BY createdAt DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "db.list_forms")
	}
	defer rows.Close()

	forms := []model.Form{}
	for rows.Next() {
		var f model.Form
		err = scanForm(rows, &f)
		if err != nil {
			return nil, errors.Wrap(err, "db.list_forms.scan")
		}
		forms = append(forms, f)
	}
	return forms, errors.Wrap(rows.Err(), "db.list_forms.rows")
}

// Create inserts a new form with a fresh id and server-side timestamps.
func (r *Forms) Create(ctx context.Context, name string, description *string) (*model.Form, error) {
	id := database.NewID()
	now := database.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO forms (id, name, description, status, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, description, model.StatusActive, now, now,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.insert_form")
	}

	return r.getRow(ctx, id)
}

// Get returns a form with its fields ordered by ord, or nil when absent.
func (r *Forms) Get(ctx context.Context, id string) (*model.FormDetail, error) {
	form, err := r.getRow(ctx, id)
	if form == nil || err != nil {
		return nil, err
	}

	fields, err := r.listFields(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.FormDetail{Form: *form, Fields: fields}, nil
}

// Update applies the keys present in the patch. An empty patch returns the
// current row untouched, updatedAt included.
func (r *Forms) Update(ctx context.Context, id string, patch model.UpdateFormRequest) (*model.Form, error) {
	current, err := r.getRow(ctx, id)
	if current == nil || err != nil {
		return nil, err
	}
	if patch.Empty() {
		return current, nil
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description.Set {
		sets = append(sets, "description = ?")
		args = append(args, patch.Description.Value)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	sets = append(sets, "updatedAt = ?")
	args = append(args, database.Now(), id)

	_, err = r.db.ExecContext(ctx, `
		UPDATE forms
		SET `+strings.Join(sets, ", ")+`
		WHERE id = ?`,
		args...,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.update_form")
	}

	return r.getRow(ctx, id)
}

// ReplaceSchema overwrites the form's name/description/status and its whole
// field list in one transaction: update the form row, delete every existing
// field, reinsert the supplied ones in order. Field ids are minted anew on
// every call. On any failure the transaction rolls back and the previous
// fields stay in place.
func (r *Forms) ReplaceSchema(ctx context.Context, id string, schema model.ReplaceSchemaRequest) (*model.FormDetail, error) {
	current, err := r.getRow(ctx, id)
	if current == nil || err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "db.begin_tx")
	}
	defer tx.Rollback()

	now := database.Now()

	status := current.Status
	if schema.Status != nil && *schema.Status != "" {
		status = *schema.Status
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE forms
		SET name = ?, description = ?, status = ?, updatedAt = ?
		WHERE id = ?`,
		schema.Name, schema.Description, status, now, id,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.replace_schema.update_form")
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM form_fields
		WHERE formId = ?`,
		id,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.replace_schema.delete_fields")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO form_fields (id, formId, type, name, label, required, ord, config, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, errors.Wrap(err, "db.replace_schema.fields.prepare")
	}
	defer stmt.Close()

	for _, f := range schema.Fields {
		ord := 0
		if f.Ord != nil {
			ord = *f.Ord
		}
		required := f.Required != nil && *f.Required

		var config any
		if f.Config != nil {
			configJson, err := json.Marshal(f.Config)
			if err != nil {
				return nil, errors.Wrap(err, "db.replace_schema.fields.encode_config")
			}
			config = string(configJson)
		}

		_, err = stmt.ExecContext(ctx, database.NewID(), id, f.Type, f.Name, f.Label, required, ord, config, now, now)
		if err != nil {
			return nil, errors.Wrap(err, "db.replace_schema.fields.insert")
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, errors.Wrap(err, "db.replace_schema.commit")
	}

	return r.Get(ctx, id)
}

// Delete removes a form; the store cascades to its fields and submissions.
// The returned bool tells whether a row was actually deleted.
func (r *Forms) Delete(ctx context.Context, id string) (bool, error) {
	current, err := r.getRow(ctx, id)
	if current == nil || err != nil {
		return false, err
	}

	_, err = r.db.ExecContext(ctx, `
		DELETE FROM forms
		WHERE id = ?`,
		id,
	)
	if err != nil {
		return false, errors.Wrap(err, "db.delete_form")
	}

	return true, nil
}

func (r *Forms) getRow(ctx context.Context, id string) (*model.Form, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+formColumns+`
		FROM forms
		WHERE id = ?`,
		id,
	)

	var f model.Form
	err := scanForm(row, &f)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "db.get_form")
	}
	return &f, nil
}

func (r *Forms) listFields(ctx context.Context, formID string) ([]model.FormField, error) {
	// rowid breaks ord ties in insertion order
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, formId, type, name, label, required, ord, config, createdAt, updatedAt
		FROM form_fields
		WHERE formId = ?
		ORDER BY ord ASC, rowid ASC`,
		formID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.list_fields")
	}
	defer rows.Close()

	fields := []model.FormField{}
	for rows.Next() {
		var f model.FormField
		var config sql.NullString
		err = rows.Scan(&f.ID, &f.FormID, &f.Type, &f.Name, &f.Label, &f.Required, &f.Ord, &config, &f.CreatedAt, &f.UpdatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "db.list_fields.scan")
		}

		if config.Valid && config.String != "" {
			err = json.Unmarshal([]byte(config.String), &f.Config)
			if err != nil {
				return nil, errors.Wrap(err, "db.list_fields.parse_config")
			}
		}

		fields = append(fields, f)
	}
	return fields, errors.Wrap(rows.Err(), "db.list_fields.rows")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanForm(row scanner, f *model.Form) error {
	return row.Scan(&f.ID, &f.Name, &f.Description, &f.Status, &f.CreatedAt, &f.UpdatedAt)
}
