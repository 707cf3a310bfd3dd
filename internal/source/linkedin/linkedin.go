// Package linkedin collects postings from the LinkedIn guest jobs API, which
// serves HTML fragments without authentication.
package linkedin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/joblyst/joblyst/internal/source"
	"github.com/joblyst/joblyst/internal/utils"
)

const (
	guestAPIURL = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"
	// pastDay limits results to postings from the last 24 hours.
	pastDay      = "r86400"
	requestPause = time.Second
	// Search terms multiply with locations; keep location fan-out small.
	maxLocations = 2
)

// Client queries the guest jobs API for every configured search term and
// location pair.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	// Pause between consecutive requests.
	Pause time.Duration

	terms     []string
	locations []string
	logger    *zap.Logger
}

// New creates a Client for the given search terms and locations.
func New(terms, locations []string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
		UserAgent:  source.UserAgent,
		APIURL:     guestAPIURL,
		Pause:      requestPause,
		terms:      terms,
		locations:  locations,
		logger:     logger,
	}
}

func (c *Client) Name() string { return "linkedin" }

// Fetch queries every term/location pair and parses the returned job cards.
// Individual request failures are logged and skipped; only context
// cancellation aborts the whole fetch.
func (c *Client) Fetch(ctx context.Context) ([]source.RawPosting, error) {
	locations := c.locations
	if len(locations) > maxLocations {
		locations = locations[:maxLocations]
	}

	var postings []source.RawPosting
	for _, term := range c.terms {
		for _, location := range locations {
			found, err := c.searchOnce(ctx, term, location)
			if err != nil {
				if ctx.Err() != nil {
					return postings, ctx.Err()
				}
				c.logger.Warn("linkedin search failed",
					zap.String("term", term),
					zap.String("location", location),
					zap.Error(err),
				)
				continue
			}
			postings = append(postings, found...)

			if err := utils.WaitFor(ctx, c.Pause); err != nil {
				return postings, err
			}
		}
	}

	c.logger.Info("linkedin postings collected", zap.Int("count", len(postings)))
	return postings, nil
}

func (c *Client) searchOnce(ctx context.Context, term, location string) ([]source.RawPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL, nil)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("keywords", term)
	q.Set("location", location)
	q.Set("f_TPR", pastDay)
	q.Set("start", "0")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return parseCards(doc, location), nil
}

func parseCards(doc *goquery.Document, searchLocation string) []source.RawPosting {
	var postings []source.RawPosting

	doc.Find("div.base-card, li.result-card, div.job-search-card").Each(func(_ int, card *goquery.Selection) {
		title := cardText(card, "h3.base-search-card__title")
		company := cardText(card, "h4.base-search-card__subtitle")
		location := cardText(card, "span.job-search-card__location")
		link, _ := card.Find("a.base-card__full-link").First().Attr("href")

		if title == "" || company == "" {
			return
		}
		if location == "" {
			location = searchLocation
		}

		postings = append(postings, source.RawPosting{
			Title:       title,
			Company:     company,
			Location:    location,
			Description: fmt.Sprintf("%s position at %s. Location: %s", title, company, location),
			ApplyLink:   link,
		})
	})

	return postings
}

func cardText(card *goquery.Selection, selector string) string {
	return strings.TrimSpace(card.Find(selector).First().Text())
}
