package filtering

import (
	"strings"

	"github.com/joblyst/joblyst/internal/job"
)

const remoteToken = "remote"

type locationFilter struct {
	allowed []string
}

// NewLocation creates a filter accepting jobs located in one of the allowed
// locations, or remote ones.
func NewLocation(allowed []string) Filter {
	lowered := make([]string, 0, len(allowed))
	for _, location := range allowed {
		location = strings.ToLower(strings.TrimSpace(location))
		if location != "" {
			lowered = append(lowered, location)
		}
	}
	return &locationFilter{allowed: lowered}
}

func (f *locationFilter) Name() string { return "location" }

func (f *locationFilter) Match(j *job.Job) (bool, string) {
	if strings.Contains(j.Location, remoteToken) {
		return true, ""
	}
	if containsAny(j.Location, f.allowed) {
		return true, ""
	}

	return false, "location not allowed: " + j.Location
}
