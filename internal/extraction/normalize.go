package extraction

import "github.com/jonathan/resume-matcher/internal/types"

// skillVariants maps common skill name variants to one canonical form so
// that a resume saying "golang" matches a job asking for "Go". Keys and
// values are already in types.NormalizeSkill form.
var skillVariants = map[string]string{
	"golang":      "go",
	"go lang":     "go",
	"js":          "javascript",
	"ts":          "typescript",
	"k8s":         "kubernetes",
	"reactjs":     "react",
	"react.js":    "react",
	"vuejs":       "vue",
	"vue.js":      "vue",
	"nodejs":      "node.js",
	"node":        "node.js",
	"postgres":    "postgresql",
	"psql":        "postgresql",
	"ml":          "machine learning",
	"cicd":        "ci cd",
	"gcloud":      "gcp",
	"amazon web services": "aws",
	"google cloud":        "gcp",
	"google cloud platform": "gcp",
}

// CanonicalSkill normalizes a raw skill string and folds known variants
// into their canonical name.
func CanonicalSkill(raw string) string {
	normalized := types.NormalizeSkill(raw)
	if canonical, ok := skillVariants[normalized]; ok {
		return canonical
	}
	return normalized
}
