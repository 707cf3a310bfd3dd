package filtering

import (
	"strings"

	"github.com/joblyst/joblyst/internal/job"
)

// emphasisThreshold is how many mentions of an excluded technology across
// title and description imply a hard requirement rather than an incidental
// one.
const emphasisThreshold = 2

type excludedSkillsFilter struct{}

// NewExcludedSkills creates a filter rejecting jobs built around technologies
// outside the candidate's stack. A title mention is a primary-requirement
// signal; repeated mentions anywhere count as emphasis.
func NewExcludedSkills() Filter {
	return &excludedSkillsFilter{}
}

func (f *excludedSkillsFilter) Name() string { return "excluded_skills" }

func (f *excludedSkillsFilter) Match(j *job.Job) (bool, string) {
	combined := j.Title + " " + j.Description

	for _, tech := range excludedTech {
		if strings.Contains(j.Title, tech) {
			return false, "excluded tech in title: " + tech
		}
	}

	for _, tech := range excludedTech {
		if strings.Count(combined, tech) >= emphasisThreshold {
			return false, "excluded tech emphasis: " + tech
		}
	}

	return true, ""
}
