package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/joblyst/joblyst/internal/job"
	"github.com/joblyst/joblyst/internal/logger"
)

const (
	descriptionLimit = 400

	// Embed colors by score band.
	colorGreen  = 5763719
	colorYellow = 16776960
	colorOrange = 15105570
)

type discordPayload struct {
	Content string         `json:"content"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url,omitempty"`
	Color       int           `json:"color"`
	Footer      discordFooter `json:"footer"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// Discord posts one embed per match to a webhook.
type Discord struct {
	HTTPClient *http.Client

	webhookURL string
	logger     *zap.Logger
	now        func() time.Time
}

// NewDiscord creates a webhook notifier.
func NewDiscord(webhookURL string, log *zap.Logger) *Discord {
	if log == nil {
		log = zap.NewNop()
	}
	return &Discord{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		webhookURL: webhookURL,
		logger:     log,
		now:        time.Now,
	}
}

// Notify posts the job to the webhook. Any non-2xx response is an error; the
// caller decides whether that matters.
func (d *Discord) Notify(ctx context.Context, j *job.Job, score int) error {
	payload := d.buildPayload(j, score)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}

	d.logger.Info("notification sent",
		logger.JobFields(j.Title, j.Company, j.Fingerprint)...,
	)

	return nil
}

func (d *Discord) buildPayload(j *job.Job, score int) discordPayload {
	description := logger.TruncateForLog(j.Description, descriptionLimit)
	if description == "" {
		description = "No description available"
	}

	embed := discordEmbed{
		Title: fmt.Sprintf("🚀 %s", titleCase(j.Title)),
		Description: fmt.Sprintf(
			"**Company:** %s\n**Location:** %s\n**Match Score:** %d%%\n\n**Description:**\n%s",
			j.Company, titleCase(j.Location), score, description,
		),
		URL:   j.ApplyLink,
		Color: colorForScore(score),
		Footer: discordFooter{
			Text: fmt.Sprintf("Found by joblyst • %s", d.now().Format("2006-01-02 15:04")),
		},
	}

	return discordPayload{
		Content: fmt.Sprintf("**New Job Match Found!**\n\n🔗 **Apply Here:** %s", j.ApplyLink),
		Embeds:  []discordEmbed{embed},
	}
}

func colorForScore(score int) int {
	switch {
	case score >= 70:
		return colorGreen
	case score >= 50:
		return colorYellow
	default:
		return colorOrange
	}
}

// titleCase upper-cases the first letter of every word; normalized job text
// is all lower-case, which reads poorly in a notification.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevIsSpace := true
	for _, r := range s {
		if prevIsSpace {
			r = unicode.ToUpper(r)
		}
		prevIsSpace = unicode.IsSpace(r)
		b.WriteRune(r)
	}

	return b.String()
}
