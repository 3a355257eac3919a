// Package types provides type definitions for structured data used throughout the resume-matcher system.
package types

import (
	"encoding/json"
	"strings"
	"unicode"
)

// NormalizeSkill folds a raw skill string into its canonical set form:
// lowercased, surrounding punctuation stripped, inner whitespace collapsed.
// Characters meaningful in technology names (+ # .) are preserved so that
// "C++", "C#" and "Node.js" survive normalization.
func NormalizeSkill(raw string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.':
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '/':
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimRight(strings.TrimSpace(b.String()), ".")
}

// SkillSet is a normalized, deduplicated set of skill strings.
// Elements keep first-appearance order, but equality and set operations
// are independent of the order elements were added.
type SkillSet struct {
	items []string
	index map[string]int
}

// NewSkillSet builds a SkillSet from raw skill strings, normalizing and
// deduplicating as it goes. Strings that normalize to empty are dropped.
func NewSkillSet(skills ...string) *SkillSet {
	s := &SkillSet{index: make(map[string]int)}
	for _, skill := range skills {
		s.Add(skill)
	}
	return s
}

// Add inserts a skill after normalization. Duplicates are ignored.
func (s *SkillSet) Add(skill string) {
	normalized := NormalizeSkill(skill)
	if normalized == "" {
		return
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, exists := s.index[normalized]; exists {
		return
	}
	s.index[normalized] = len(s.items)
	s.items = append(s.items, normalized)
}

// Contains reports whether the set holds the skill (after normalization).
func (s *SkillSet) Contains(skill string) bool {
	if s == nil || s.index == nil {
		return false
	}
	_, ok := s.index[NormalizeSkill(skill)]
	return ok
}

// Len returns the number of skills in the set.
func (s *SkillSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// IsEmpty reports whether the set has no skills.
func (s *SkillSet) IsEmpty() bool {
	return s.Len() == 0
}

// Slice returns the skills in first-appearance order. The caller owns the copy.
func (s *SkillSet) Slice() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Intersect returns the skills present in both sets, ordered by their
// first appearance in the receiver.
func (s *SkillSet) Intersect(other *SkillSet) *SkillSet {
	result := NewSkillSet()
	if s == nil || other == nil {
		return result
	}
	for _, skill := range s.items {
		if other.Contains(skill) {
			result.Add(skill)
		}
	}
	return result
}

// Difference returns the skills present in the receiver but not in other,
// ordered by their first appearance in the receiver.
func (s *SkillSet) Difference(other *SkillSet) *SkillSet {
	result := NewSkillSet()
	if s == nil {
		return result
	}
	for _, skill := range s.items {
		if !other.Contains(skill) {
			result.Add(skill)
		}
	}
	return result
}

// Equal reports whether both sets hold the same skills, regardless of the
// order they were added.
func (s *SkillSet) Equal(other *SkillSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s == nil || other == nil {
		return true // both empty
	}
	for _, skill := range s.items {
		if !other.Contains(skill) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a JSON array in first-appearance order.
func (s *SkillSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON decodes a JSON array of skill strings into the set.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = *NewSkillSet(raw...)
	return nil
}
