// Package filtering holds the admission-control chain that runs ahead of
// scoring: only jobs surviving every predicate are worth the cost of an
// embedding.
package filtering

import (
	"go.uber.org/zap"

	"github.com/joblyst/joblyst/internal/job"
)

// Filter is a single boolean predicate over a normalized job. Match returns
// whether the job is accepted and, on rejection, a short reason for the logs.
type Filter interface {
	Name() string
	Match(j *job.Job) (ok bool, reason string)
}

// Step describes the result of executing one filter over the current list.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Chain applies filters in order. A job is dropped at the first filter that
// rejects it, so later (more expensive) filters only see survivors.
type Chain struct {
	filters []Filter
	logger  *zap.Logger
}

// NewChain builds a chain from the given filters, applied in order.
func NewChain(logger *zap.Logger, filters ...Filter) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{filters: filters, logger: logger}
}

// Default returns the standard chain ordered cheapest-first:
// role, location, experience, excluded skills.
func Default(logger *zap.Logger, allowedRoles, allowedLocations []string) *Chain {
	return NewChain(logger,
		NewRole(allowedRoles),
		NewLocation(allowedLocations),
		NewExperience(),
		NewExcludedSkills(),
	)
}

// Run passes the jobs through every filter and returns the survivors. Per-step
// accounting is logged at info level, individual rejections at debug.
func (c *Chain) Run(jobs *job.Jobs) *job.Jobs {
	current := jobs
	for _, filter := range c.filters {
		initial := current.Len()
		kept := &job.Jobs{}

		for _, j := range current.Items {
			ok, reason := filter.Match(j)
			if !ok {
				c.logger.Debug("job rejected",
					zap.String("filter", filter.Name()),
					zap.String("job_title", j.Title),
					zap.String("reason", reason),
				)
				continue
			}
			kept.Append(j)
		}

		c.logger.Info("filter step",
			zap.String("name", filter.Name()),
			zap.Int("initial", initial),
			zap.Int("dropped", initial-kept.Len()),
			zap.Int("left", kept.Len()),
		)

		current = kept
	}

	return current
}

// Steps returns the names of the configured filters in execution order.
func (c *Chain) Steps() []string {
	names := make([]string, 0, len(c.filters))
	for _, filter := range c.filters {
		names = append(names, filter.Name())
	}
	return names
}
