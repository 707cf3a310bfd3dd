package profile

import (
	"strings"
	"testing"
)

const flatSkillsDoc = `{
	"basics": {"name": "Jamie Dev", "headline": "Full Stack Developer"},
	"summary": "Builds <b>web applications</b>",
	"skills": ["Python", "React", " "],
	"projects": [
		{"title": "Portfolio", "description": "personal site", "fullDescription": "built with Next.js", "techStack": ["Next.js", "Vercel"]}
	],
	"awards": ["Hackathon Winner"],
	"achievements": ["Dean's List"]
}`

const structuredSkillsDoc = `{
	"skills": {
		"items": [
			{"name": "Web Development", "keywords": ["React", "Node.js"]},
			{"name": "Databases", "keywords": ["MongoDB"]}
		]
	},
	"experience": [
		{"title": "Intern", "company": "Acme", "description": "backend work", "technologies": ["FastAPI"]}
	],
	"education": [
		{"institution": "Punjab University", "degree": "BSCS"}
	],
	"certifications": [{"name": "AWS Cloud Practitioner"}]
}`

func TestParseFlatSkillsSchema(t *testing.T) {
	t.Parallel()

	prof, err := Parse([]byte(flatSkillsDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectSkills := []string{"python", "react"}
	if len(prof.Skills) != len(expectSkills) {
		t.Fatalf("expected %d skills, got %v", len(expectSkills), prof.Skills)
	}
	for i, skill := range expectSkills {
		if prof.Skills[i] != skill {
			t.Fatalf("skill %d: expected %q, got %q", i, skill, prof.Skills[i])
		}
	}
}

func TestParseStructuredSkillsSchema(t *testing.T) {
	t.Parallel()

	prof, err := Parse([]byte(structuredSkillsDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := []string{"web development", "react", "node.js", "databases", "mongodb"}
	if len(prof.Skills) != len(expect) {
		t.Fatalf("expected %v, got %v", expect, prof.Skills)
	}
	for i, skill := range expect {
		if prof.Skills[i] != skill {
			t.Fatalf("skill %d: expected %q, got %q", i, skill, prof.Skills[i])
		}
	}
}

func TestFlattenedTextIsNormalized(t *testing.T) {
	t.Parallel()

	prof, err := Parse([]byte(flatSkillsDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prof.Text != strings.ToLower(prof.Text) {
		t.Fatal("profile text must be lower-cased")
	}
	if strings.Contains(prof.Text, "<b>") {
		t.Fatal("profile text must be HTML-stripped")
	}

	for _, fragment := range []string{
		"full stack developer", "jamie dev", "web applications",
		"portfolio", "built with next.js", "vercel",
		"hackathon winner", "dean's list",
	} {
		if !strings.Contains(prof.Text, fragment) {
			t.Fatalf("expected text to contain %q, got %q", fragment, prof.Text)
		}
	}
}

func TestFlattenIncludesExperienceAndEducation(t *testing.T) {
	t.Parallel()

	prof, err := Parse([]byte(structuredSkillsDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, fragment := range []string{"intern", "acme", "fastapi", "punjab university", "bscs", "aws cloud practitioner"} {
		if !strings.Contains(prof.Text, fragment) {
			t.Fatalf("expected text to contain %q", fragment)
		}
	}
}

func TestParseRejectsInvalidDocument(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte(`{"skills": 42}`)); err == nil {
		t.Fatal("expected error for invalid skills schema")
	}
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid json")
	}
}

func TestParseEmptyDocument(t *testing.T) {
	t.Parallel()

	prof, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prof.Skills) != 0 {
		t.Fatalf("expected no skills, got %v", prof.Skills)
	}
	if prof.Text != "" {
		t.Fatalf("expected empty text, got %q", prof.Text)
	}
}
