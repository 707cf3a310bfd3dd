package job

import (
	"html"
	"regexp"
	"strings"
)

// DefaultLocation is assumed when a posting carries no location at all.
const DefaultLocation = "pakistan"

const (
	fingerprintCompanyLen = 30
	fingerprintTitleLen   = 40
	fingerprintSeparator  = "-"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalizer converts raw scraped fields into canonical Job records.
type Normalizer struct {
	// FallbackLocation replaces an absent location field. Defaults to
	// DefaultLocation when empty.
	FallbackLocation string
}

// Normalize builds a Job from raw source fields. It returns nil when title or
// company is empty after trimming; both are mandatory identity fields. All
// other fields may be absent.
func (n *Normalizer) Normalize(title, company, location, description, applyLink, email string) *Job {
	title = CleanText(title)
	company = CleanText(company)
	if title == "" || company == "" {
		return nil
	}

	location = CleanText(location)
	if location == "" {
		location = n.fallbackLocation()
	}

	title = strings.ToLower(title)
	company = strings.ToLower(company)

	return &Job{
		Title:       title,
		Company:     company,
		Location:    strings.ToLower(location),
		Description: strings.ToLower(CleanText(description)),
		ApplyLink:   applyLink,
		Email:       email,
		Fingerprint: Fingerprint(company, title),
	}
}

func (n *Normalizer) fallbackLocation() string {
	if n != nil && strings.TrimSpace(n.FallbackLocation) != "" {
		return strings.TrimSpace(n.FallbackLocation)
	}
	return DefaultLocation
}

// CleanText strips HTML markup, decodes entities and collapses whitespace
// runs to a single space. Case is preserved.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Fingerprint derives the deduplication key from a job's company and title:
// the first 30 characters of the company and 40 of the title, lower-cased and
// joined with a dash. Postings sharing the same company/title prefix map to
// the same fingerprint even when descriptions differ; that coarse identity is
// intentional.
func Fingerprint(company, title string) string {
	return truncateRunes(strings.ToLower(company), fingerprintCompanyLen) +
		fingerprintSeparator +
		truncateRunes(strings.ToLower(title), fingerprintTitleLen)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
