// Package pipeline drives one end-to-end run: cleanup, collect, dedupe,
// filter, score, dispatch. The pipeline holds no state between runs beyond
// what it delegates to the history store.
package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/joblyst/joblyst/internal/filtering"
	"github.com/joblyst/joblyst/internal/history"
	"github.com/joblyst/joblyst/internal/job"
	"github.com/joblyst/joblyst/internal/notify"
	"github.com/joblyst/joblyst/internal/scoring"
	"github.com/joblyst/joblyst/internal/source"
	"github.com/joblyst/joblyst/internal/utils"
)

// Scorer is what the pipeline needs from the scoring package.
type Scorer interface {
	Score(ctx context.Context, j *job.Job) (scoring.Result, error)
}

// Config carries the run parameters consumed by the pipeline.
type Config struct {
	// MinScore is the dispatch threshold in [0,100].
	MinScore int
	// DispatchPause paces consecutive notifications.
	DispatchPause time.Duration
}

// Deps aggregates the pipeline's collaborators.
type Deps struct {
	Store      *history.Store
	Providers  []source.Provider
	Normalizer *job.Normalizer
	Chain      *filtering.Chain
	Scorer     Scorer
	Notifier   notify.Notifier
	Logger     *zap.Logger
}

// Match is one job that cleared the filters and the score threshold.
type Match struct {
	Job    *job.Job       `json:"job"`
	Result scoring.Result `json:"result"`
}

// Matches is the outcome of the collect phase, ready for review or dispatch.
type Matches struct {
	Items []*Match
}

func (m *Matches) Len() int {
	return len(m.Items)
}

// ReportByCompany groups matches by company for the interactive report.
func (m *Matches) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, match := range m.Items {
		report[match.Job.Company] = append(report[match.Job.Company], map[string]string{
			"title":      match.Job.Title,
			"location":   match.Job.Location,
			"score":      strconv.Itoa(match.Result.Total),
			"apply_link": match.Job.ApplyLink,
		})
	}
	return report
}

// DumpToTmpFile writes the matches as indented JSON to a temporary file and
// returns its name.
func (m *Matches) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Pipeline is the per-run orchestrator.
type Pipeline struct {
	cfg    *Config
	deps   *Deps
	logger *zap.Logger
}

// New builds a Pipeline from its configuration and collaborators.
func New(cfg *Config, deps *Deps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, deps: deps, logger: logger}
}

// Collect runs cleanup, gathers postings from every provider, drops already
// sent jobs, applies the filter chain, scores the survivors and returns the
// matches at or above the threshold. A run with zero collected jobs is not an
// error; it logs a warning and returns an empty result.
func (p *Pipeline) Collect(ctx context.Context) (*Matches, error) {
	removed := p.deps.Store.CleanupOldEntries()
	stats := p.deps.Store.Stats()
	p.logger.Info("history cleanup",
		zap.Int("tracked", stats.TotalJobs),
		zap.Int("removed", removed),
	)

	collected := p.collect(ctx)
	p.logger.Info("total jobs collected", zap.Int("count", collected.Len()))

	if collected.Len() == 0 {
		p.logger.Warn("no jobs collected; sources may be empty or unreachable")
		return &Matches{}, nil
	}

	fresh := p.dropAlreadySent(collected)
	survivors := p.deps.Chain.Run(fresh)

	matches := &Matches{}
	for _, j := range survivors.Items {
		result, err := p.deps.Scorer.Score(ctx, j)
		if err != nil {
			if ctx.Err() != nil {
				return matches, ctx.Err()
			}
			p.logger.Warn("scoring failed, skipping job",
				zap.String("job_title", j.Title),
				zap.Error(err),
			)
			continue
		}

		if result.Total < p.cfg.MinScore {
			p.logger.Info("score below threshold",
				zap.String("job_title", j.Title),
				zap.Int("score", result.Total),
				zap.Int("min_score", p.cfg.MinScore),
			)
			continue
		}

		matches.Items = append(matches.Items, &Match{Job: j, Result: result})
	}

	p.logger.Info("matches found", zap.Int("count", matches.Len()))
	return matches, nil
}

// Dispatch notifies every match and records its fingerprint in the history
// store. Delivery failures are logged; the attempt still counts and the
// fingerprint is recorded, so a flaky channel cannot cause duplicate sends.
func (p *Pipeline) Dispatch(ctx context.Context, matches *Matches) error {
	for i, match := range matches.Items {
		if err := p.deps.Notifier.Notify(ctx, match.Job, match.Result.Total); err != nil {
			p.logger.Warn("notification failed",
				zap.String("job_title", match.Job.Title),
				zap.String("company", match.Job.Company),
				zap.Error(err),
			)
		}

		p.deps.Store.MarkAsSent(match.Job.Fingerprint)

		if i < matches.Len()-1 {
			if err := utils.WaitFor(ctx, p.cfg.DispatchPause); err != nil {
				return err
			}
		}
	}

	p.logger.Info("run completed", zap.Int("dispatched", matches.Len()))
	return nil
}

// collect normalizes every provider's postings and deduplicates them by
// fingerprint within the run. Provider failures cost only that provider's
// postings.
func (p *Pipeline) collect(ctx context.Context) *job.Jobs {
	jobs := &job.Jobs{}
	seen := make(map[string]struct{})

	for _, provider := range p.deps.Providers {
		postings, err := provider.Fetch(ctx)
		if err != nil {
			p.logger.Warn("provider failed",
				zap.String("provider", provider.Name()),
				zap.Error(err),
			)
		}

		accepted := 0
		for _, posting := range postings {
			j := p.deps.Normalizer.Normalize(
				posting.Title,
				posting.Company,
				posting.Location,
				posting.Description,
				posting.ApplyLink,
				posting.Email,
			)
			if j == nil {
				continue
			}
			if _, dup := seen[j.Fingerprint]; dup {
				continue
			}
			seen[j.Fingerprint] = struct{}{}
			jobs.Append(j)
			accepted++
		}

		p.logger.Info("provider postings",
			zap.String("provider", provider.Name()),
			zap.Int("raw", len(postings)),
			zap.Int("accepted", accepted),
		)
	}

	return jobs
}

func (p *Pipeline) dropAlreadySent(jobs *job.Jobs) *job.Jobs {
	fresh := &job.Jobs{}
	for _, j := range jobs.Items {
		if p.deps.Store.IsSent(j.Fingerprint) {
			p.logger.Debug("skipping already sent job",
				zap.String("job_title", j.Title),
				zap.String("fingerprint", j.Fingerprint),
			)
			continue
		}
		fresh.Append(j)
	}

	if dropped := jobs.Len() - fresh.Len(); dropped > 0 {
		p.logger.Info("skipped already sent jobs", zap.Int("count", dropped))
	}

	return fresh
}

