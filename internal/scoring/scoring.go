// Package scoring implements the hybrid match score: semantic similarity
// between profile and job embeddings, keyword overlap against the profile
// skills, and additive rule-based boosts.
package scoring

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/joblyst/joblyst/internal/job"
	"github.com/joblyst/joblyst/internal/profile"
)

const (
	semanticWeight = 0.70
	keywordWeight  = 0.30
	maxScore       = 100
)

// Embedder computes a fixed-length vector for the given text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Result carries the final integer score in [0,100] plus its breakdown for
// logging and reports.
type Result struct {
	Total      int
	Semantic   float64
	Keyword    float64
	FreshBoost float64
	RoleBoost  float64
}

// Scorer scores jobs against one candidate profile. The profile embedding is
// computed once per run; every job gets a fresh embedding. With a nil
// embedder the semantic component is zero and only keywords and boosts
// contribute.
type Scorer struct {
	profile  *profile.Profile
	embedder Embedder
	synonyms []SynonymFamily
	logger   *zap.Logger
}

// New builds a Scorer. Extra synonym families from configuration are appended
// after the built-in table, preserving lookup order.
func New(p *profile.Profile, embedder Embedder, extraSynonyms []SynonymFamily, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}

	synonyms := make([]SynonymFamily, 0, len(defaultSynonyms)+len(extraSynonyms))
	synonyms = append(synonyms, defaultSynonyms...)
	synonyms = append(synonyms, extraSynonyms...)

	return &Scorer{
		profile:  p,
		embedder: embedder,
		synonyms: synonyms,
		logger:   logger,
	}
}

// Score computes the hybrid score for one job. An embedding failure is an
// error for this job only; callers skip the job and continue the batch.
func (s *Scorer) Score(ctx context.Context, j *job.Job) (Result, error) {
	semantic, err := s.semanticScore(ctx, j)
	if err != nil {
		return Result{}, fmt.Errorf("embedding job text: %w", err)
	}

	keyword := keywordScore(j, s.profile.Skills, s.synonyms)
	fresh := freshGradBoost(j)
	role := rolePriorityBoost(j)

	base := semantic*semanticWeight + keyword*keywordWeight
	total := int(math.Round((base + fresh + role) * 100))
	if total > maxScore {
		total = maxScore
	}

	result := Result{
		Total:      total,
		Semantic:   semantic,
		Keyword:    keyword,
		FreshBoost: fresh,
		RoleBoost:  role,
	}

	s.logger.Info("score computed",
		zap.String("job_title", j.Title),
		zap.String("company", j.Company),
		zap.Int("score", result.Total),
		zap.Int("semantic_pct", int(semantic*100)),
		zap.Int("keyword_pct", int(keyword*100)),
	)

	return result, nil
}

func (s *Scorer) semanticScore(ctx context.Context, j *job.Job) (float64, error) {
	if s.embedder == nil || len(s.profile.Embedding) == 0 {
		return 0, nil
	}

	jobEmbedding, err := s.embedder.Embed(ctx, j.Title+" "+j.Description+" "+j.Company)
	if err != nil {
		return 0, err
	}

	similarity := cosineSimilarity(s.profile.Embedding, jobEmbedding)
	// Only positive alignment counts.
	if similarity < 0 {
		return 0, nil
	}
	return similarity, nil
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
