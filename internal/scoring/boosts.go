package scoring

import (
	"strings"

	"github.com/joblyst/joblyst/internal/job"
)

const (
	freshGradBoostValue = 0.15
	highPriorityBoost   = 0.20
	mediumPriorityBoost = 0.10
	lowPriorityBoost    = 0.05
)

// freshBoostKeywords mark entry-level positions worth a flat boost.
var freshBoostKeywords = []string{
	"fresh", "junior", "entry", "graduate", "intern", "trainee", "associate",
}

// Role priority tables, first match wins: full-stack and web work outranks
// generic software engineering, which outranks AI/ML roles.
var (
	highPriorityRoles = []string{
		"mern", "mean", "full stack", "fullstack", "full-stack",
		"web developer", "react", "next.js", "nextjs", "node.js", "nodejs",
		"javascript developer", "typescript developer", "frontend", "backend",
	}
	mediumPriorityRoles = []string{
		"software engineer", "software developer", "programmer",
	}
	lowPriorityRoles = []string{
		"ai engineer", "ml engineer", "data science", "machine learning",
	}
)

func freshGradBoost(j *job.Job) float64 {
	for _, keyword := range freshBoostKeywords {
		if strings.Contains(j.Title, keyword) || strings.Contains(j.Description, keyword) {
			return freshGradBoostValue
		}
	}
	return 0
}

func rolePriorityBoost(j *job.Job) float64 {
	combined := j.Title + " " + j.Description

	switch {
	case anyInText(combined, highPriorityRoles):
		return highPriorityBoost
	case anyInText(combined, mediumPriorityRoles):
		return mediumPriorityBoost
	case anyInText(combined, lowPriorityRoles):
		return lowPriorityBoost
	default:
		return 0
	}
}
