package model

const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

const (
	FieldText     = "text"
	FieldSelect   = "select"
	FieldCheckbox = "checkbox"
	FieldRating   = "rating"
)

type Form struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// FormDetail is a form together with its ordered field list, as returned by
// single-form reads. Fields is never nil.
type FormDetail struct {
	Form
	Fields []FormField `json:"fields"`
}

type FormField struct {
	ID        string  `json:"id"`
	FormID    string  `json:"formId"`
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Label     *string `json:"label"`
	Required  bool    `json:"required"`
	Ord       int     `json:"ord"`
	Config    any     `json:"config"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type Submission struct {
	ID        string         `json:"id"`
	FormID    string         `json:"formId"`
	Payload   map[string]any `json:"payload"`
	Status    string         `json:"status"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}
