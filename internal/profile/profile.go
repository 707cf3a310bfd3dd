// Package profile derives the candidate profile consumed by the scorer from
// a structured profile document (cv.json).
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joblyst/joblyst/internal/job"
)

// Profile is the per-run candidate context: computed once at startup,
// read-only afterwards.
type Profile struct {
	// Text is the flattened, lower-cased concatenation of all free-text
	// fields of the profile document, used as the embedding input.
	Text string
	// Skills are the lower-cased skill tokens used for keyword overlap.
	Skills []string
	// Embedding is the profile vector, computed once by the caller and
	// reused for every job in the run. Nil when embeddings are disabled.
	Embedding []float64
}

type document struct {
	Basics *struct {
		Name     string `json:"name"`
		Headline string `json:"headline"`
	} `json:"basics"`
	Summary    string      `json:"summary"`
	Skills     skillsField `json:"skills"`
	Experience []struct {
		Title        string   `json:"title"`
		Company      string   `json:"company"`
		Description  string   `json:"description"`
		Technologies []string `json:"technologies"`
	} `json:"experience"`
	Education []struct {
		Institution string `json:"institution"`
		Degree      string `json:"degree"`
	} `json:"education"`
	Projects []struct {
		Title           string   `json:"title"`
		Description     string   `json:"description"`
		FullDescription string   `json:"fullDescription"`
		TechStack       []string `json:"techStack"`
	} `json:"projects"`
	Certifications []struct {
		Name string `json:"name"`
	} `json:"certifications"`
	Awards       []string `json:"awards"`
	Achievements []string `json:"achievements"`
}

// skillsField accepts both profile schemas: a flat list of skill strings, or
// the structured {"items": [{"name": ..., "keywords": [...]}]} form.
type skillsField struct {
	flat  []string
	items []skillItem
}

type skillItem struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

func (s *skillsField) UnmarshalJSON(data []byte) error {
	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil {
		s.flat = flat
		return nil
	}

	var structured struct {
		Items []skillItem `json:"items"`
	}
	if err := json.Unmarshal(data, &structured); err != nil {
		return fmt.Errorf("skills must be a list of strings or an items object: %w", err)
	}
	s.items = structured.Items

	return nil
}

// tokens flattens both schemas into one ordered lower-cased list. For the
// structured schema each item contributes its name and all keywords.
func (s *skillsField) tokens() []string {
	var tokens []string
	for _, skill := range s.flat {
		if skill = strings.ToLower(strings.TrimSpace(skill)); skill != "" {
			tokens = append(tokens, skill)
		}
	}
	for _, item := range s.items {
		if name := strings.ToLower(strings.TrimSpace(item.Name)); name != "" {
			tokens = append(tokens, name)
		}
		for _, keyword := range item.Keywords {
			if keyword = strings.ToLower(strings.TrimSpace(keyword)); keyword != "" {
				tokens = append(tokens, keyword)
			}
		}
	}
	return tokens
}

// Load reads and flattens the profile document at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile document: %w", err)
	}
	return Parse(data)
}

// Parse builds a Profile from raw profile document bytes.
func Parse(data []byte) (*Profile, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding profile document: %w", err)
	}

	return &Profile{
		Text:   flatten(&doc),
		Skills: doc.Skills.tokens(),
	}, nil
}

func flatten(doc *document) string {
	var parts []string
	add := func(values ...string) {
		for _, value := range values {
			if strings.TrimSpace(value) != "" {
				parts = append(parts, value)
			}
		}
	}

	if doc.Basics != nil {
		add(doc.Basics.Headline, doc.Basics.Name)
	}
	add(doc.Summary)

	add(doc.Skills.flat...)
	for _, item := range doc.Skills.items {
		add(item.Name)
	}

	for _, exp := range doc.Experience {
		add(exp.Title, exp.Company, exp.Description)
		add(exp.Technologies...)
	}
	for _, edu := range doc.Education {
		add(edu.Institution, edu.Degree)
	}
	for _, proj := range doc.Projects {
		add(proj.Title, proj.Description, proj.FullDescription)
		add(proj.TechStack...)
	}
	for _, cert := range doc.Certifications {
		add(cert.Name)
	}
	add(doc.Awards...)
	add(doc.Achievements...)

	return strings.ToLower(job.CleanText(strings.Join(parts, " ")))
}
