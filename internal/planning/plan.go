// Package planning proposes learning and project recommendations that close
// missing-skill gaps.
package planning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// planResult mirrors the provider's JSON output shape.
type planResult struct {
	Recommendations []struct {
		Skill     string `json:"skill"`
		InsteadOf string `json:"instead_of"`
		Use       string `json:"use"`
		Guidance  string `json:"guidance"`
	} `json:"recommendations"`
}

// Plan asks the provider for one recommendation per missing skill. Items
// that do not name a skill from the missing set are dropped before
// returning; generic filler never reaches the report.
//
// Errors here are non-fatal for the run: the coordinator records a warning
// and continues with an empty recommendation list.
func Plan(ctx context.Context, client llm.Client, missing *types.SkillSet) ([]types.Recommendation, error) {
	if missing.IsEmpty() {
		return nil, nil
	}

	template := prompts.MustGet("planning.json", "plan-gaps")
	prompt := prompts.Format(template, map[string]string{
		"MissingSkills": strings.Join(missing.Slice(), ", "),
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("capability provider call failed: %w", err)
	}
	if err := schemas.Validate(schemas.PlanResult, raw); err != nil {
		return nil, fmt.Errorf("provider output does not match plan schema: %w", err)
	}

	var parsed planResult
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("provider returned unparseable JSON: %w", err)
	}

	recommendations := make([]types.Recommendation, 0, len(parsed.Recommendations))
	for _, r := range parsed.Recommendations {
		skill := extraction.CanonicalSkill(r.Skill)
		if !missing.Contains(skill) {
			continue
		}
		instead := strings.TrimSpace(r.InsteadOf)
		use := strings.TrimSpace(r.Use)
		guidance := strings.TrimSpace(r.Guidance)
		if instead == "" && use == "" && guidance == "" {
			continue
		}
		recommendations = append(recommendations, types.Recommendation{
			Skill:     skill,
			InsteadOf: instead,
			Use:       use,
			Guidance:  guidance,
		})
	}
	return recommendations, nil
}
