package scoring

import (
	"strings"

	"github.com/joblyst/joblyst/internal/job"
)

// synonymCredit is the partial credit for a skill matched through a synonym
// family rather than verbatim.
const synonymCredit = 0.8

// SynonymFamily groups a canonical skill key with terms that imply it in job
// text. Families are an ordered slice, not a map, so partial-credit lookups
// are deterministic.
type SynonymFamily struct {
	Key      string   `mapstructure:"key"`
	Synonyms []string `mapstructure:"synonyms"`
}

// defaultSynonyms is the curated built-in table. Matching between a profile
// skill and a family key is bidirectional substring containment.
var defaultSynonyms = []SynonymFamily{
	{Key: "next.js", Synonyms: []string{"nextjs", "next js", "react framework"}},
	{Key: "nest.js", Synonyms: []string{"nestjs", "nest js"}},
	{Key: "react", Synonyms: []string{"reactjs", "react.js"}},
	{Key: "node", Synonyms: []string{"nodejs", "node.js"}},
	{Key: "mongodb", Synonyms: []string{"mongo", "nosql", "database"}},
	{Key: "typescript", Synonyms: []string{"ts", "javascript"}},
	{Key: "python", Synonyms: []string{"py"}},
	{Key: "fastapi", Synonyms: []string{"fast api", "python backend"}},
	{Key: "ai", Synonyms: []string{"artificial intelligence", "machine learning", "ml"}},
	{Key: "full stack", Synonyms: []string{"fullstack", "full-stack", "frontend", "backend"}},
}

// keywordScore awards 1.0 per skill found verbatim in the job text and 0.8
// per skill matched through a synonym family, normalized by the skill count.
// A profile with no skills scores 0.
func keywordScore(j *job.Job, skills []string, synonyms []SynonymFamily) float64 {
	if len(skills) == 0 {
		return 0
	}

	text := j.Title + " " + j.Description

	var matches float64
	for _, skill := range skills {
		if strings.Contains(text, skill) {
			matches++
			continue
		}

		for _, family := range synonyms {
			if !strings.Contains(family.Key, skill) && !strings.Contains(skill, family.Key) {
				continue
			}
			if anyInText(text, family.Synonyms) {
				matches += synonymCredit
				break
			}
		}
	}

	return matches / float64(len(skills))
}

func anyInText(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
