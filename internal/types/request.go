package types

import "github.com/go-playground/validator/v10"

// AnalyzeRequest is the inbound payload for an analysis run. Resume content
// arrives as plain text; conversion from binary formats happens upstream.
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,min=1"`
	JobDescription string `json:"job_description" validate:"required,min=1"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
