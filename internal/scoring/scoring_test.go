package scoring

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/joblyst/joblyst/internal/job"
	"github.com/joblyst/joblyst/internal/profile"
)

type stubEmbedder struct {
	vector []float64
	err    error
	calls  int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vector, nil
}

func newProfile(skills []string, embedding []float64) *profile.Profile {
	return &profile.Profile{
		Text:      "candidate text",
		Skills:    skills,
		Embedding: embedding,
	}
}

func TestScoreBoostsOnlyWithoutOverlapOrSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		job    *job.Job
		expect int
	}{
		{
			name:   "nothing applies",
			job:    &job.Job{Title: "office assistant", Description: "filing and scheduling"},
			expect: 0,
		},
		{
			name:   "fresh boost only",
			job:    &job.Job{Title: "junior office clerk", Description: "filing and scheduling"},
			expect: 15,
		},
		{
			name:   "medium role boost only",
			job:    &job.Job{Title: "programmer", Description: "maintain legacy cobol"},
			expect: 10,
		},
		{
			name:   "ai role boost only",
			job:    &job.Job{Title: "data science specialist", Description: "model pipelines"},
			expect: 5,
		},
	}

	scorer := New(newProfile([]string{"rust"}, nil), nil, nil, zap.NewNop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := scorer.Score(context.Background(), tt.job)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Total != tt.expect {
				t.Fatalf("expected %d, got %d (%+v)", tt.expect, result.Total, result)
			}
			if result.Total < 0 || result.Total > 100 {
				t.Fatalf("score out of range: %d", result.Total)
			}
		})
	}
}

func TestScoreCapsAtHundred(t *testing.T) {
	t.Parallel()

	embedding := []float64{1, 0, 0}
	embedder := &stubEmbedder{vector: embedding}
	scorer := New(newProfile([]string{"python", "react"}, embedding), embedder, nil, zap.NewNop())

	j := &job.Job{
		Title:       "junior full stack developer",
		Description: "entry level python and react role",
		Company:     "acme",
	}

	result, err := scorer.Score(context.Background(), j)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// semantic 1.0, keyword 1.0, fresh 0.15, role 0.20 => well above the cap
	if result.Total != 100 {
		t.Fatalf("expected capped score 100, got %d", result.Total)
	}
}

func TestScoreClampsNegativeSimilarity(t *testing.T) {
	t.Parallel()

	embedder := &stubEmbedder{vector: []float64{-1, 0, 0}}
	scorer := New(newProfile([]string{"rust"}, []float64{1, 0, 0}), embedder, nil, zap.NewNop())

	result, err := scorer.Score(context.Background(), &job.Job{Title: "office assistant", Description: "nothing technical"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Semantic != 0 {
		t.Fatalf("expected clamped semantic 0, got %v", result.Semantic)
	}
	if result.Total != 0 {
		t.Fatalf("expected 0, got %d", result.Total)
	}
}

func TestScoreSpecScenario(t *testing.T) {
	t.Parallel()

	scorer := New(newProfile([]string{"python", "react"}, nil), nil, nil, zap.NewNop())

	j := &job.Job{
		Title:       "junior python developer",
		Description: "entry level role using python and react",
		Company:     "acme",
	}

	result, err := scorer.Score(context.Background(), j)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Keyword != 1.0 {
		t.Fatalf("expected full keyword overlap, got %v", result.Keyword)
	}
	if result.FreshBoost != 0.15 {
		t.Fatalf("expected fresh boost, got %v", result.FreshBoost)
	}
	if result.RoleBoost != 0.20 {
		t.Fatalf("expected high-priority role boost, got %v", result.RoleBoost)
	}
	// 0.30*1.0 + 0.15 + 0.20 = 0.65
	if result.Total != 65 {
		t.Fatalf("expected 65, got %d", result.Total)
	}
	if result.Total < 40 {
		t.Fatal("score must clear the default threshold")
	}
}

func TestKeywordScoreSynonymPartialCredit(t *testing.T) {
	t.Parallel()

	j := &job.Job{Title: "nextjs developer", Description: "ship fast"}

	score := keywordScore(j, []string{"next.js"}, defaultSynonyms)
	if score != 0.8 {
		t.Fatalf("expected 0.8 synonym credit, got %v", score)
	}
}

func TestKeywordScoreNoSkills(t *testing.T) {
	t.Parallel()

	j := &job.Job{Title: "python developer", Description: "python everywhere"}
	if score := keywordScore(j, nil, defaultSynonyms); score != 0 {
		t.Fatalf("expected 0 for empty profile, got %v", score)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	t.Parallel()

	embedder := &stubEmbedder{vector: []float64{0.5, 0.5, 0}}
	scorer := New(newProfile([]string{"python", "next.js"}, []float64{1, 0, 0}), embedder, nil, zap.NewNop())

	j := &job.Job{Title: "junior nextjs developer", Description: "python services", Company: "acme"}

	first, err := scorer.Score(context.Background(), j)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := scorer.Score(context.Background(), j)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestScoreEmbeddingFailure(t *testing.T) {
	t.Parallel()

	embedder := &stubEmbedder{err: errors.New("quota exceeded")}
	scorer := New(newProfile([]string{"python"}, []float64{1}), embedder, nil, zap.NewNop())

	if _, err := scorer.Score(context.Background(), &job.Job{Title: "python developer"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestExtraSynonymFamilies(t *testing.T) {
	t.Parallel()

	extra := []SynonymFamily{{Key: "django", Synonyms: []string{"drf", "django rest"}}}
	scorer := New(newProfile([]string{"django"}, nil), nil, extra, zap.NewNop())

	result, err := scorer.Score(context.Background(), &job.Job{Title: "clerk", Description: "drf experience useful"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Keyword != 0.8 {
		t.Fatalf("expected 0.8 via configured family, got %v", result.Keyword)
	}
}

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		a, b   []float64
		expect float64
	}{
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, expect: 1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, expect: 0},
		{name: "opposite", a: []float64{1, 0}, b: []float64{-1, 0}, expect: -1},
		{name: "length mismatch", a: []float64{1, 0}, b: []float64{1}, expect: 0},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 1}, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.expect; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}
