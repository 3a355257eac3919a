package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ExtractionResult(t *testing.T) {
	valid := `{
		"skills": [{"name": "Python", "confidence": 0.9}],
		"statements": ["Built ETL pipelines"]
	}`
	assert.NoError(t, Validate(ExtractionResult, valid))
}

func TestValidate_ExtractionResultMissingSkills(t *testing.T) {
	err := Validate(ExtractionResult, `{"statements": []}`)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ExtractionResult, verr.Schema)
	assert.NotEmpty(t, verr.Errors)
}

func TestValidate_ExtractionResultWrongTypes(t *testing.T) {
	err := Validate(ExtractionResult, `{"skills": "python, sql", "statements": []}`)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidate_ConfidenceOutOfRange(t *testing.T) {
	err := Validate(ExtractionResult, `{
		"skills": [{"name": "Python", "confidence": 1.5}],
		"statements": []
	}`)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidate_RewriteResult(t *testing.T) {
	valid := `{"suggestions": [{"source_index": 0, "text": "Led migration to Kubernetes"}]}`
	assert.NoError(t, Validate(RewriteResult, valid))

	err := Validate(RewriteResult, `{"suggestions": [{"text": "missing index"}]}`)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidate_PlanResult(t *testing.T) {
	valid := `{"recommendations": [{"skill": "kubernetes", "instead_of": "", "use": "", "guidance": "Take a course."}]}`
	assert.NoError(t, Validate(PlanResult, valid))

	err := Validate(PlanResult, `{"recommendations": [{"guidance": "no skill field"}]}`)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidate_UnparseableDocument(t *testing.T) {
	err := Validate(ExtractionResult, `not json at all`)
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "parse failures are plain errors, not schema violations")
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("no_such_schema", `{}`)
	assert.Error(t, err)
}
