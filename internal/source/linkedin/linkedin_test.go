package linkedin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const searchFixture = `
<ul>
  <li>
    <div class="base-card">
      <h3 class="base-search-card__title"> Junior Python Developer </h3>
      <h4 class="base-search-card__subtitle">Acme</h4>
      <span class="job-search-card__location">Lahore, Pakistan</span>
      <a class="base-card__full-link" href="https://example.com/jobs/1">view</a>
    </div>
  </li>
  <li>
    <div class="base-card">
      <h3 class="base-search-card__title">Frontend Intern</h3>
      <h4 class="base-search-card__subtitle">Globex</h4>
      <a class="base-card__full-link" href="https://example.com/jobs/2">view</a>
    </div>
  </li>
  <li>
    <div class="base-card">
      <h3 class="base-search-card__title">No Company Card</h3>
    </div>
  </li>
</ul>`

func TestFetchParsesJobCards(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	client := New([]string{"python developer"}, []string{"Pakistan"}, zap.NewNop())
	client.APIURL = server.URL
	client.Pause = 0

	postings, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(postings))
	}

	first := postings[0]
	if first.Title != "Junior Python Developer" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.Company != "Acme" {
		t.Fatalf("unexpected company: %q", first.Company)
	}
	if first.Location != "Lahore, Pakistan" {
		t.Fatalf("unexpected location: %q", first.Location)
	}
	if first.ApplyLink != "https://example.com/jobs/1" {
		t.Fatalf("unexpected link: %q", first.ApplyLink)
	}
	if first.Description == "" {
		t.Fatal("expected synthesized description")
	}

	// Card without its own location falls back to the search location.
	if postings[1].Location != "Pakistan" {
		t.Fatalf("unexpected fallback location: %q", postings[1].Location)
	}

	for _, param := range []string{"keywords=python+developer", "f_TPR=r86400"} {
		if !strings.Contains(gotQuery, param) {
			t.Fatalf("expected query to contain %q, got %q", param, gotQuery)
		}
	}
}

func TestFetchSkipsFailedRequests(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New([]string{"python"}, []string{"Pakistan"}, zap.NewNop())
	client.APIURL = server.URL
	client.Pause = 0

	postings, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("request failures must not abort the fetch: %v", err)
	}
	if len(postings) != 0 {
		t.Fatalf("expected no postings, got %d", len(postings))
	}
}

func TestFetchLimitsLocationFanOut(t *testing.T) {
	t.Parallel()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.Write([]byte("<ul></ul>"))
	}))
	defer server.Close()

	client := New([]string{"python"}, []string{"Pakistan", "Lahore", "Karachi", "Islamabad"}, zap.NewNop())
	client.APIURL = server.URL
	client.Pause = 0

	if _, err := client.Fetch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 2 {
		t.Fatalf("expected 2 requests, got %d", requests)
	}
}
