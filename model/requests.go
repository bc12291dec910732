package model

import "encoding/json"

type CreateFormRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// UpdateFormRequest is a partial update: only keys present in the request
// body are applied. Description uses OptString so an explicit null can clear
// the stored value.
type UpdateFormRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1"`
	Description OptString `json:"description"`
	Status      *string   `json:"status" validate:"omitempty,oneof=active archived"`
}

func (r UpdateFormRequest) Empty() bool {
	return r.Name == nil && !r.Description.Set && r.Status == nil
}

type FieldDefinition struct {
	Type     string  `json:"type" validate:"required,oneof=text select checkbox rating"`
	Name     string  `json:"name" validate:"required"`
	Label    *string `json:"label"`
	Required *bool   `json:"required"`
	Ord      *int    `json:"ord"`
	Config   any     `json:"config"`
}

type ReplaceSchemaRequest struct {
	Name        string            `json:"name" validate:"required"`
	Description *string           `json:"description"`
	Status      *string           `json:"status"`
	Fields      []FieldDefinition `json:"fields" validate:"dive"`
}

type CreateSubmissionRequest struct {
	Payload map[string]any `json:"payload"`
}

// OptString remembers whether its JSON key was present at all, which plain
// *string cannot: absent, null and "value" are three different states.
type OptString struct {
	Set   bool
	Value *string
}

func (o *OptString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptString) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}
