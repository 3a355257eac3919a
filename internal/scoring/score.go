// Package scoring compares extracted resume skills to job requirements.
// Scoring is a pure function of its inputs: no provider calls, no hidden
// state, so two identical calls always produce identical output.
package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Match holds the deterministic output of scoring a resume against a job.
type Match struct {
	Score   int
	Matched []string
	Missing []string
}

// Score partitions the job's required skills into matched and missing and
// computes the 0-100 match score.
//
// Score is round(100 * |matched| / |required|); an empty requirement set
// scores 0 by convention (no requirements means no evidence of fit, not a
// perfect fit). Matched and missing are ordered by how often each skill is
// mentioned in the raw job text, descending, ties broken by first
// appearance in the job's skill set.
func Score(resume, required *types.SkillSet, jobText string) Match {
	matched := required.Intersect(resume).Slice()
	missing := required.Difference(resume).Slice()

	orderByFrequency(matched, jobText)
	orderByFrequency(missing, jobText)

	score := 0
	if required.Len() > 0 {
		score = int(math.Round(100 * float64(len(matched)) / float64(required.Len())))
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Match{Score: score, Matched: matched, Missing: missing}
}

// orderByFrequency sorts skills by mention count in the job text,
// descending. The input order (first appearance in the job skill set) is
// preserved for ties via stable sort.
func orderByFrequency(skills []string, jobText string) {
	if len(skills) < 2 {
		return
	}
	lowerText := strings.ToLower(jobText)
	counts := make(map[string]int, len(skills))
	for _, skill := range skills {
		counts[skill] = strings.Count(lowerText, skill)
	}
	sort.SliceStable(skills, func(i, j int) bool {
		return counts[skills[i]] > counts[skills[j]]
	})
}
