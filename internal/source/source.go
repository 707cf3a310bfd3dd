// Package source defines the contract for job posting providers. Providers
// return raw tuples; normalization, deduplication and filtering all happen
// downstream in the pipeline.
package source

import "context"

// UserAgent mimics a desktop browser; the guest endpoints and most career
// pages refuse obvious bot agents.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// RawPosting is one scraped posting before normalization. Any field except
// the ones the normalizer requires may be empty.
type RawPosting struct {
	Title       string
	Company     string
	Location    string
	Description string
	ApplyLink   string
	Email       string
}

// Provider supplies an unordered batch of raw postings. Fetch errors abort
// only that provider's contribution, never the run.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) ([]RawPosting, error)
}
