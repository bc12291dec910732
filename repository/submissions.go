package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/model"
)

type Submissions struct {
	db *sql.DB
}

func NewSubmissions(db *sql.DB) *Submissions {
	return &Submissions{db: db}
}

const submissionColumns = "id, formId, payload, status, createdAt, updatedAt"

// ListByForm returns a form's submissions, newest first, with parsed
// payloads. The caller is responsible for checking the form exists.
func (r *Submissions) ListByForm(ctx context.Context, formID string) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE formId = ?
		ORDER BY createdAt DESC`,
		formID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.list_submissions")
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *s)
	}
	return submissions, errors.Wrap(rows.Err(), "db.list_submissions.rows")
}

// Create inserts a submission for a form the route layer has already
// confirmed to exist.
func (r *Submissions) Create(ctx context.Context, formID string, payload map[string]any) (*model.Submission, error) {
	id := database.NewID()
	now := database.Now()

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "db.insert_submission.encode_payload")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO submissions (id, formId, payload, status, createdAt, updatedAt)
		VALUES (?, ?, ?, 'pending', ?, ?)`,
		id, formID, string(payloadJson), now, now,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.insert_submission")
	}

	return r.Get(ctx, id)
}

// Get returns a single submission with its parsed payload, or nil when
// absent.
func (r *Submissions) Get(ctx context.Context, id string) (*model.Submission, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE id = ?`,
		id,
	)

	s, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func scanSubmission(row scanner) (*model.Submission, error) {
	var s model.Submission
	var payload string
	err := row.Scan(&s.ID, &s.FormID, &payload, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "db.get_submission.scan")
	}

	err = json.Unmarshal([]byte(payload), &s.Payload)
	if err != nil {
		return nil, errors.Wrap(err, "db.get_submission.parse_payload")
	}
	return &s, nil
}
