package types

// ResumeDocument holds a candidate's resume text plus the entities extracted
// from it. Constructed once per run and discarded when the run ends.
type ResumeDocument struct {
	RawText    string    `json:"raw_text"`
	Skills     *SkillSet `json:"skills"`
	Experience []string  `json:"experience"`
	Education  []string  `json:"education,omitempty"`
}

// JobRequirements holds a job description's text plus its extracted entities.
// Same per-run lifecycle as ResumeDocument.
type JobRequirements struct {
	RawText          string    `json:"raw_text"`
	RequiredSkills   *SkillSet `json:"required_skills"`
	Responsibilities []string  `json:"responsibilities"`
	Qualifications   []string  `json:"qualifications,omitempty"`
}
