// Package careers collects postings from configured company career pages.
// The markup varies wildly between companies, so extraction is heuristic:
// job-looking links plus job-looking cards.
package careers

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
)

const (
	jobLinkSelector = "a[href*='job'], a[href*='career'], a[href*='position'], a[href*='opening'], a[href*='apply'], a[href*='vacanc']"
	jobCardSelector = "div[class*='job'], div[class*='position'], article[class*='career'], li[class*='opening'], div[class*='vacancy'], div[class*='listing']"

	minLinkTextLen = 5
	maxTitleLen    = 100
)

// genericLinkTexts are navigation labels, not postings.
var genericLinkTexts = map[string]bool{
	"careers": true, "jobs": true, "apply": true, "view all": true, "see all": true,
}

// baseRelevantKeywords augment the configured allowed roles when deciding
// whether a link or card looks like a matching opening.
var baseRelevantKeywords = []string{
	"software", "developer", "engineer", "python",
	"javascript", "frontend", "backend", "fullstack",
	"web", "react", "node", "ai", "ml", "data",
	"mern", "mean", "django", "intern",
}

// Company is one configured career page to watch.
type Company struct {
	Name string `mapstructure:"name" json:"name"`
	URL  string `mapstructure:"url" json:"careerPage"`
}

// Client scrapes the configured company pages.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string

	companies []Company
	relevant  []string
	location  string
	logger    *zap.Logger
}

// New creates a Client. allowedRoles extend the built-in relevance keywords;
// location is attached to every posting since career pages rarely state one.
func New(companies []Company, allowedRoles []string, location string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	relevant := make([]string, 0, len(allowedRoles)+len(baseRelevantKeywords))
	for _, role := range allowedRoles {
		if role = strings.ToLower(strings.TrimSpace(role)); role != "" {
			relevant = append(relevant, role)
		}
	}
	relevant = append(relevant, baseRelevantKeywords...)

	return &Client{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		UserAgent:  source.UserAgent,
		companies:  companies,
		relevant:   relevant,
		location:   location,
		logger:     logger,
	}
}

func (c *Client) Name() string { return "careers" }

// Fetch scrapes every configured company page. Per-company failures are
// logged and skipped.
func (c *Client) Fetch(ctx context.Context) ([]source.RawPosting, error) {
	var postings []source.RawPosting
	for _, company := range c.companies {
		found, err := c.scrapeCompany(ctx, company)
		if err != nil {
			if ctx.Err() != nil {
				return postings, ctx.Err()
			}
			c.logger.Warn("scraping career page failed",
				zap.String("company", company.Name),
				zap.Error(err),
			)
			continue
		}
		postings = append(postings, found...)
	}

	c.logger.Info("career page postings collected", zap.Int("count", len(postings)))
	return postings, nil
}

func (c *Client) scrapeCompany(ctx context.Context, company Company) ([]source.RawPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, company.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	c.logger.Debug("make request", zap.String("url", company.URL))

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
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	base, err := url.Parse(company.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing career page url: %w", err)
	}

	postings := c.parseJobLinks(doc, base, company)
	postings = append(postings, c.parseJobCards(doc, base, company)...)

	return postings, nil
}

func (c *Client) parseJobLinks(doc *goquery.Document, base *url.URL, company Company) []source.RawPosting {
	var postings []source.RawPosting

	doc.Find(jobLinkSelector).Each(func(_ int, anchor *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(anchor.Text()))
		if len(text) < minLinkTextLen || genericLinkTexts[text] {
			return
		}
		if !containsAny(text, c.relevant) {
			return
		}

		href, _ := anchor.Attr("href")
		postings = append(postings, source.RawPosting{
			Title:       text,
			Company:     company.Name,
			Location:    c.location,
			Description: text,
			ApplyLink:   resolveLink(base, href, company.URL),
		})
	})

	return postings
}

func (c *Client) parseJobCards(doc *goquery.Document, base *url.URL, company Company) []source.RawPosting {
	var postings []source.RawPosting

	doc.Find(jobCardSelector).Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find("h2, h3, h4, a[class*='title'], span[class*='title'], a").First().Text())
		if len(title) <= minLinkTextLen || len(title) >= maxTitleLen {
			return
		}
		if !containsAny(strings.ToLower(title), c.relevant) {
			return
		}

		link := company.URL
		if href, ok := card.Find("a[href]").First().Attr("href"); ok {
			link = resolveLink(base, href, company.URL)
		}

		description := strings.TrimSpace(card.Find("p, div[class*='desc'], span[class*='desc']").First().Text())
		if description == "" {
			description = title
		}

		postings = append(postings, source.RawPosting{
			Title:       title,
			Company:     company.Name,
			Location:    c.location,
			Description: description,
			ApplyLink:   link,
		})
	})

	return postings
}

func resolveLink(base *url.URL, href, fallback string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return fallback
	}
	ref, err := url.Parse(href)
	if err != nil {
		return fallback
	}
	return base.ResolveReference(ref).String()
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
