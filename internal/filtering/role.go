package filtering

import (
	"strings"

	"github.com/joblyst/joblyst/internal/job"
)

type roleFilter struct {
	allowed []string
}

// NewRole creates a filter accepting jobs whose title or description mentions
// a configured allowed role or anything from the tech-stack vocabulary.
func NewRole(allowed []string) Filter {
	lowered := make([]string, 0, len(allowed))
	for _, role := range allowed {
		role = strings.ToLower(strings.TrimSpace(role))
		if role != "" {
			lowered = append(lowered, role)
		}
	}
	return &roleFilter{allowed: lowered}
}

func (f *roleFilter) Name() string { return "role" }

func (f *roleFilter) Match(j *job.Job) (bool, string) {
	combined := j.Title + " " + j.Description

	if containsAny(combined, f.allowed) {
		return true, ""
	}
	if containsAny(combined, techStackVocabulary) {
		return true, ""
	}

	return false, "no allowed role or tech stack keyword"
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
