// Package rewriting proposes improved resume phrasing targeted at the
// computed skill gaps.
package rewriting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// rewriteResult mirrors the provider's JSON output shape.
type rewriteResult struct {
	Suggestions []struct {
		SourceIndex int    `json:"source_index"`
		Text        string `json:"text"`
	} `json:"suggestions"`
}

// Rewrite asks the provider to rewrite the resume's experience statements
// toward the missing skills. Every returned suggestion is traceable to one
// of the input statements; suggestions referencing a statement that does
// not exist are dropped rather than surfaced as fabricated content.
//
// Errors here are non-fatal for the run: the coordinator records a warning
// and continues with an empty suggestion list.
func Rewrite(ctx context.Context, client llm.Client, statements []string, missing *types.SkillSet) ([]types.BulletSuggestion, error) {
	if len(statements) == 0 || missing.IsEmpty() {
		return nil, nil
	}

	prompt := buildRewritePrompt(statements, missing)

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("capability provider call failed: %w", err)
	}
	if err := schemas.Validate(schemas.RewriteResult, raw); err != nil {
		return nil, fmt.Errorf("provider output does not match rewrite schema: %w", err)
	}

	var parsed rewriteResult
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("provider returned unparseable JSON: %w", err)
	}

	suggestions := make([]types.BulletSuggestion, 0, len(parsed.Suggestions))
	for _, s := range parsed.Suggestions {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		if s.SourceIndex < 0 || s.SourceIndex >= len(statements) {
			// untraceable suggestion
			continue
		}
		suggestions = append(suggestions, types.BulletSuggestion{
			SourceIndex: s.SourceIndex,
			SourceText:  statements[s.SourceIndex],
			Text:        text,
		})
	}
	return suggestions, nil
}

func buildRewritePrompt(statements []string, missing *types.SkillSet) string {
	var numbered strings.Builder
	for i, statement := range statements {
		fmt.Fprintf(&numbered, "%d. %s\n", i, statement)
	}

	template := prompts.MustGet("rewriting.json", "rewrite-bullets")
	return prompts.Format(template, map[string]string{
		"Statements":    prompts.QuoteExternal("resume statements", strings.TrimRight(numbered.String(), "\n")),
		"MissingSkills": strings.Join(missing.Slice(), ", "),
	})
}
