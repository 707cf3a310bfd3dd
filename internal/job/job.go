package job

import (
	"encoding/json"
	"os"
)

// Job is one normalized posting candidate. All text fields except ApplyLink
// are HTML-stripped, whitespace-collapsed and lower-cased by the normalizer.
// A Job is immutable once built.
type Job struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	ApplyLink   string `json:"apply_link,omitempty"`
	Email       string `json:"email,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Jobs is a list of postings moving through the pipeline.
type Jobs struct {
	Items []*Job
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) Append(items ...*Job) {
	j.Items = append(j.Items, items...)
}

func (j *Jobs) FindByFingerprint(fingerprint string) *Job {
	for _, item := range j.Items {
		if item.Fingerprint == fingerprint {
			return item
		}
	}
	return nil
}

// Fingerprints returns the fingerprints of all jobs in order.
func (j *Jobs) Fingerprints() []string {
	fingerprints := make([]string, 0, len(j.Items))
	for _, item := range j.Items {
		fingerprints = append(fingerprints, item.Fingerprint)
	}
	return fingerprints
}

// ReportByCompany groups jobs by company for human-readable reports.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range j.Items {
		report[item.Company] = append(report[item.Company], map[string]string{
			"title":      item.Title,
			"location":   item.Location,
			"apply_link": item.ApplyLink,
		})
	}
	return report
}

// DumpToTmpFile writes the list as indented JSON to a temporary file and
// returns its name.
func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}
