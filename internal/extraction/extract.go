// Package extraction turns raw resume and job-description text into
// structured entities via the capability provider.
package extraction

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DocType identifies which kind of document is being extracted.
type DocType string

// Document types accepted by Extract.
const (
	DocTypeResume DocType = "resume"
	DocTypeJob    DocType = "job_description"
)

const (
	// minConfidence drops low-confidence extraction candidates as noise.
	minConfidence = 0.3
	// minSkillLength drops one-character fragments the provider sometimes emits.
	minSkillLength = 2
)

// Result holds the structured entities extracted from one document.
type Result struct {
	Skills     *types.SkillSet
	Statements []string
}

// extractionResult mirrors the provider's JSON output shape.
type extractionResult struct {
	Skills []struct {
		Name       string   `json:"name"`
		Confidence *float64 `json:"confidence"`
	} `json:"skills"`
	Statements []string `json:"statements"`
}

// Extract pulls a skill set and free-text statements out of raw document
// text. Empty input fails with *InvalidInputError before any provider call;
// provider failures and unusable output fail with *ExtractionError.
func Extract(ctx context.Context, client llm.Client, text string, docType DocType) (*Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &InvalidInputError{
			Field:   string(docType),
			Message: "text is empty",
		}
	}

	prompt := buildExtractionPrompt(trimmed, docType)

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &ExtractionError{
			Message: "capability provider call failed",
			Cause:   err,
		}
	}

	if err := schemas.Validate(schemas.ExtractionResult, raw); err != nil {
		return nil, &ExtractionError{
			Message: "provider returned output that does not match the extraction schema",
			Cause:   err,
		}
	}

	var parsed extractionResult
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &ExtractionError{
			Message: "provider returned unparseable JSON",
			Cause:   err,
		}
	}

	return normalizeResult(&parsed), nil
}

// buildExtractionPrompt renders the extraction template with the document
// quoted as non-executable content.
func buildExtractionPrompt(text string, docType DocType) string {
	template := prompts.MustGet("extraction.json", "extract-entities")
	return prompts.Format(template, map[string]string{
		"DocType": string(docType),
		"Text":    prompts.QuoteExternal(string(docType), text),
	})
}

// normalizeResult folds provider skills into a deduplicated SkillSet and
// drops noise candidates.
func normalizeResult(parsed *extractionResult) *Result {
	skills := types.NewSkillSet()
	for _, candidate := range parsed.Skills {
		if candidate.Confidence != nil && *candidate.Confidence < minConfidence {
			continue
		}
		canonical := CanonicalSkill(candidate.Name)
		if len(canonical) < minSkillLength {
			continue
		}
		skills.Add(canonical)
	}

	statements := make([]string, 0, len(parsed.Statements))
	for _, statement := range parsed.Statements {
		if s := strings.TrimSpace(statement); s != "" {
			statements = append(statements, s)
		}
	}

	return &Result{Skills: skills, Statements: statements}
}
