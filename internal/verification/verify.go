// Package verification audits generated content against the source resume
// before it reaches the user. Checks are local and deterministic; the
// verifier never calls the capability provider.
package verification

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Verify audits rewritten bullets and gap recommendations.
//
// For each bullet, numeric claims and job-skill mentions are checked for
// attribution in the original resume text; unattributable claims produce
// "unverified" notes referencing the bullet's index. Each recommendation is
// checked for consistency: its named skill must genuinely be in the missing
// set. Notes are advisory only; flagged items stay in the report.
func Verify(resumeText string, bullets []types.BulletSuggestion, recommendations []types.Recommendation, jobSkills, missing *types.SkillSet) []types.VerificationNote {
	notes := make([]types.VerificationNote, 0)
	source := tokenizeWords(resumeText)

	for i, bullet := range bullets {
		bulletWords := tokenizeWords(bullet.Text)

		for _, quantity := range extractQuantities(bullet.Text) {
			if !containsQuantity(source, quantity) {
				notes = append(notes, types.VerificationNote{
					Target: types.NoteTargetBullet,
					Index:  i,
					Claim:  quantity,
					Status: types.NoteStatusUnverified,
					Reason: fmt.Sprintf("quantity %q not found in source resume", quantity),
				})
			}
		}

		for _, skill := range jobSkills.Slice() {
			if containsTerm(bulletWords, skill) && !containsTerm(source, skill) {
				notes = append(notes, types.VerificationNote{
					Target: types.NoteTargetBullet,
					Index:  i,
					Claim:  skill,
					Status: types.NoteStatusUnverified,
					Reason: fmt.Sprintf("technology %q not found in source resume", skill),
				})
			}
		}
	}

	for i, rec := range recommendations {
		if !missing.Contains(rec.Skill) {
			notes = append(notes, types.VerificationNote{
				Target: types.NoteTargetRecommendation,
				Index:  i,
				Claim:  rec.Skill,
				Status: types.NoteStatusInconsistent,
				Reason: fmt.Sprintf("skill %q is not in the missing-skill set", rec.Skill),
			})
		}
	}

	return notes
}
