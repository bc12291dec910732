package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolis/quick-forms/config"
	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/model"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(config.Config{
		DBUrl: filepath.Join(t.TempDir(), "test.sqlite"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func TestCreateForm(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	form, err := forms.Create(ctx, "Contact", strPtr("reach out"))
	require.NoError(t, err)

	assert.NotEmpty(t, form.ID)
	assert.Equal(t, "Contact", form.Name)
	require.NotNil(t, form.Description)
	assert.Equal(t, "reach out", *form.Description)
	assert.Equal(t, model.StatusActive, form.Status)
	assert.NotEmpty(t, form.CreatedAt)
	assert.Equal(t, form.CreatedAt, form.UpdatedAt)
}

func TestCreateFormWithoutDescription(t *testing.T) {
	forms := NewForms(testDB(t))

	form, err := forms.Create(context.Background(), "Bare", nil)
	require.NoError(t, err)
	assert.Nil(t, form.Description)
}

func TestListFormsNewestFirst(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	_, err := forms.Create(ctx, "first", nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond) // distinct createdAt at ms precision
	_, err = forms.Create(ctx, "second", nil)
	require.NoError(t, err)

	list, err := forms.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)
	assert.Equal(t, "first", list[1].Name)
}

func TestListFormsEmpty(t *testing.T) {
	forms := NewForms(testDB(t))

	list, err := forms.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGetMissingForm(t *testing.T) {
	forms := NewForms(testDB(t))

	form, err := forms.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, form)
}

func TestGetFormOrdersFieldsByOrd(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	form, err := forms.Create(ctx, "Survey", nil)
	require.NoError(t, err)

	_, err = forms.ReplaceSchema(ctx, form.ID, model.ReplaceSchemaRequest{
		Name: "Survey",
		Fields: []model.FieldDefinition{
			{Type: model.FieldText, Name: "third", Ord: intPtr(3)},
			{Type: model.FieldText, Name: "first", Ord: intPtr(1)},
			{Type: model.FieldText, Name: "second", Ord: intPtr(2)},
		},
	})
	require.NoError(t, err)

	detail, err := forms.Get(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, detail.Fields, 3)
	assert.Equal(t, "first", detail.Fields[0].Name)
	assert.Equal(t, "second", detail.Fields[1].Name)
	assert.Equal(t, "third", detail.Fields[2].Name)
}

func TestGetFormOrdTiesKeepInsertionOrder(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	form, err := forms.Create(ctx, "Survey", nil)
	require.NoError(t, err)

	_, err = forms.ReplaceSchema(ctx, form.ID, model.ReplaceSchemaRequest{
		Name: "Survey",
		Fields: []model.FieldDefinition{
			{Type: model.FieldText, Name: "a"},
			{Type: model.FieldText, Name: "b"},
			{Type: model.FieldText, Name: "c"},
		},
	})
	require.NoError(t, err)

	detail, err := forms.Get(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, detail.Fields, 3)
	assert.Equal(t, "a", detail.Fields[0].Name)
	assert.Equal(t, "b", detail.Fields[1].Name)
	assert.Equal(t, "c", detail.Fields[2].Name)
	for _, f := range detail.Fields {
		assert.Zero(t, f.Ord)
	}
}

func TestUpdateFormEmptyPatch(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	form, err := forms.Create(ctx, "Original", strPtr("desc"))
	require.NoError(t, err)

	updated, err := forms.Update(ctx, form.ID, model.UpdateFormRequest{})
	require.NoError(t, err)
	assert.Equal(t, form, updated)
}

func TestUpdateFormPatchesOnlyGivenKeys(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	form, err := forms.Create(ctx, "Original", strPtr("desc"))
	require.NoError(t, err)

	updated, err := forms.Update(ctx, form.ID, model.UpdateFormRequest{
		Name: strPtr("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "desc", *updated.Description)
	assert.Equal(t, model.StatusActive, updated.Status)
}

func TestUpdateFormNullClearsDescription(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	form, err := forms.Create(ctx, "Form", strPtr("to be removed"))
	require.NoError(t, err)

	updated, err := forms.Update(ctx, form.ID, model.UpdateFormRequest{
		Description: model.OptString{Set: true},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
}

func TestUpdateMissingForm(t *testing.T) {
	forms := NewForms(testDB(t))

	updated, err := forms.Update(context.Background(), "nope", model.UpdateFormRequest{
		Name: strPtr("x"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestReplaceSchemaMintsNewIDs(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	form, err := forms.Create(ctx, "Survey", nil)
	require.NoError(t, err)

	first, err := forms.ReplaceSchema(ctx, form.ID, model.ReplaceSchemaRequest{
		Name: "Survey",
		Fields: []model.FieldDefinition{
			{Type: model.FieldText, Name: "keep", Ord: intPtr(1)},
		},
	})
	require.NoError(t, err)
	require.Len(t, first.Fields, 1)

	second, err := forms.ReplaceSchema(ctx, form.ID, model.ReplaceSchemaRequest{
		Name: "Survey",
		Fields: []model.FieldDefinition{
			{Type: model.FieldText, Name: "keep", Ord: intPtr(1)},
			{Type: model.FieldRating, Name: "score", Ord: intPtr(2)},
		},
	})
	require.NoError(t, err)
	require.Len(t, second.Fields, 2)

	// identity resets on replace, even for a field with identical content
	assert.NotEqual(t, first.Fields[0].ID, second.Fields[0].ID)
}

func TestReplaceSchemaRollsBackOnFailure(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	form, err := forms.Create(ctx, "Survey", nil)
	require.NoError(t, err)

	before, err := forms.ReplaceSchema(ctx, form.ID, model.ReplaceSchemaRequest{
		Name: "Survey",
		Fields: []model.FieldDefinition{
			{Type: model.FieldText, Name: "stable", Ord: intPtr(1)},
		},
	})
	require.NoError(t, err)

	// a config value that cannot be serialized fails the insert loop after
	// the old fields were already deleted inside the transaction
	_, err = forms.ReplaceSchema(ctx, form.ID, model.ReplaceSchemaRequest{
		Name: "Broken",
		Fields: []model.FieldDefinition{
			{Type: model.FieldText, Name: "ok"},
			{Type: model.FieldSelect, Name: "bad", Config: make(chan int)},
		},
	})
	require.Error(t, err)

	after, err := forms.Get(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Name, after.Name)
	require.Len(t, after.Fields, 1)
	assert.Equal(t, before.Fields[0].ID, after.Fields[0].ID)
	assert.Equal(t, "stable", after.Fields[0].Name)
}

func TestReplaceSchemaStatusFallback(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	form, err := forms.Create(ctx, "Survey", nil)
	require.NoError(t, err)
	_, err = forms.Update(ctx, form.ID, model.UpdateFormRequest{
		Status: strPtr(model.StatusArchived),
	})
	require.NoError(t, err)

	detail, err := forms.ReplaceSchema(ctx, form.ID, model.ReplaceSchemaRequest{
		Name:   "Survey",
		Fields: []model.FieldDefinition{},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, detail.Status)

	detail, err = forms.ReplaceSchema(ctx, form.ID, model.ReplaceSchemaRequest{
		Name:   "Survey",
		Status: strPtr(""),
		Fields: []model.FieldDefinition{},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, detail.Status)
}

func TestReplaceSchemaMissingForm(t *testing.T) {
	forms := NewForms(testDB(t))

	detail, err := forms.ReplaceSchema(context.Background(), "nope", model.ReplaceSchemaRequest{
		Name:   "x",
		Fields: []model.FieldDefinition{},
	})
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestReplaceSchemaFieldDefaults(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	form, err := forms.Create(ctx, "Survey", nil)
	require.NoError(t, err)

	detail, err := forms.ReplaceSchema(ctx, form.ID, model.ReplaceSchemaRequest{
		Name: "Survey",
		Fields: []model.FieldDefinition{
			{Type: model.FieldCheckbox, Name: "opt_in"},
		},
	})
	require.NoError(t, err)
	require.Len(t, detail.Fields, 1)

	f := detail.Fields[0]
	assert.Equal(t, form.ID, f.FormID)
	assert.False(t, f.Required)
	assert.Zero(t, f.Ord)
	assert.Nil(t, f.Label)
	assert.Nil(t, f.Config)
	assert.NotEmpty(t, f.CreatedAt)
	assert.Equal(t, f.CreatedAt, f.UpdatedAt)
}

func TestConfigRoundTrip(t *testing.T) {
	forms := NewForms(testDB(t))
	ctx := context.Background()

	form, err := forms.Create(ctx, "Survey", nil)
	require.NoError(t, err)

	fieldConfig := map[string]any{
		"options": []any{"USA", "Canada", "UK"},
		"extra":   map[string]any{"multi": true},
	}
	detail, err := forms.ReplaceSchema(ctx, form.ID, model.ReplaceSchemaRequest{
		Name: "Survey",
		Fields: []model.FieldDefinition{
			{Type: model.FieldSelect, Name: "country", Required: boolPtr(true), Config: fieldConfig},
		},
	})
	require.NoError(t, err)

	require.Len(t, detail.Fields, 1)
	assert.Equal(t, fieldConfig, detail.Fields[0].Config)
	assert.True(t, detail.Fields[0].Required)
}

func TestDeleteFormCascades(t *testing.T) {
	db := testDB(t)
	forms := NewForms(db)
	submissions := NewSubmissions(db)
	ctx := context.Background()

	form, err := forms.Create(ctx, "Survey", nil)
	require.NoError(t, err)
	_, err = forms.ReplaceSchema(ctx, form.ID, model.ReplaceSchemaRequest{
		Name: "Survey",
		Fields: []model.FieldDefinition{
			{Type: model.FieldText, Name: "q1"},
		},
	})
	require.NoError(t, err)
	sub, err := submissions.Create(ctx, form.ID, map[string]any{"q1": "hi"})
	require.NoError(t, err)

	deleted, err := forms.Delete(ctx, form.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	detail, err := forms.Get(ctx, form.ID)
	require.NoError(t, err)
	assert.Nil(t, detail)

	list, err := submissions.ListByForm(ctx, form.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	gone, err := submissions.Get(ctx, sub.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestDeleteMissingForm(t *testing.T) {
	forms := NewForms(testDB(t))

	deleted, err := forms.Delete(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, deleted)
}
