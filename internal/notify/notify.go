// Package notify delivers match notifications to an external channel. The
// pipeline's contract with a Notifier is fire-and-forget: a delivery attempt
// counts, its outcome is only logged.
package notify

import (
	"context"

	"github.com/joblyst/joblyst/internal/job"
)

// Notifier receives one qualifying job and its match score.
type Notifier interface {
	Notify(ctx context.Context, j *job.Job, score int) error
}
