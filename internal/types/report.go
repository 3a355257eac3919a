package types

// Verification note statuses. Notes are advisory: a flagged item is still
// returned to the caller, annotated rather than dropped.
const (
	NoteStatusUnverified   = "unverified"
	NoteStatusInconsistent = "inconsistent"
)

// Verification note targets, identifying which report field a note audits.
const (
	NoteTargetBullet         = "bullet"
	NoteTargetRecommendation = "recommendation"
)

// BulletSuggestion is a rewritten resume bullet. Every suggestion is
// traceable to the resume statement it improves via SourceIndex.
type BulletSuggestion struct {
	SourceIndex int    `json:"source_index"`
	SourceText  string `json:"source_text,omitempty"`
	Text        string `json:"text"`
}

// Recommendation is a single gap-closing recommendation. Skill always names
// a missing skill; InsteadOf/Use carry the structured "instead of X, use Y"
// framing when it applies, Guidance carries free-form advice otherwise.
type Recommendation struct {
	Skill     string `json:"skill"`
	InsteadOf string `json:"instead_of,omitempty"`
	Use       string `json:"use,omitempty"`
	Guidance  string `json:"guidance,omitempty"`
}

// VerificationNote flags a rewritten bullet or recommendation whose content
// could not be supported by the source resume or the computed skill gaps.
type VerificationNote struct {
	Target string `json:"target"`
	Index  int    `json:"index"`
	Claim  string `json:"claim,omitempty"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// StageWarning records a non-fatal stage failure attached to an otherwise
// valid report.
type StageWarning struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// MatchReport is the pipeline's terminal artifact. It is assembled only by
// the pipeline coordinator and is immutable once returned.
//
// MatchedSkills and MissingSkills partition the job's required-skill set,
// and Score is a deterministic function of their cardinalities.
type MatchReport struct {
	RunID             string             `json:"run_id"`
	Score             int                `json:"score"`
	MatchedSkills     []string           `json:"matched_skills"`
	MissingSkills     []string           `json:"missing_skills"`
	RewrittenBullets  []BulletSuggestion `json:"rewritten_bullets"`
	Recommendations   []Recommendation   `json:"recommendations"`
	VerificationNotes []VerificationNote `json:"verification_notes"`
	Warnings          []StageWarning     `json:"warnings,omitempty"`
}
