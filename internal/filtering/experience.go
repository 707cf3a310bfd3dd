package filtering

import (
	"strings"

	"github.com/joblyst/joblyst/internal/job"
)

type experienceFilter struct{}

// NewExperience creates the two-tier seniority filter. Hard exclusion markers
// ("senior", "5+ years", ...) reject unconditionally, before fresh-graduate
// markers are even consulted. With no markers at all, a generic role noun in
// the title is accepted as long as the title itself is not senior/lead.
func NewExperience() Filter {
	return &experienceFilter{}
}

func (f *experienceFilter) Name() string { return "experience" }

func (f *experienceFilter) Match(j *job.Job) (bool, string) {
	combined := j.Title + " " + j.Description

	for _, marker := range experienceRejectMarkers {
		if strings.Contains(combined, marker) {
			return false, "exclusion marker: " + marker
		}
	}

	if containsAny(combined, freshMarkers) {
		return true, ""
	}

	if containsAny(j.Title, entryTitleNouns) &&
		!strings.Contains(j.Title, "senior") &&
		!strings.Contains(j.Title, "lead") {
		return true, ""
	}

	return false, "no fresh-graduate marker"
}
