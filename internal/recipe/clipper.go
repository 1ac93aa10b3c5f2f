package recipe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"studentfuel/internal/domain"
	"studentfuel/internal/llm"
	"studentfuel/internal/shared"

	"github.com/PuerkitoBio/goquery"
)

// maxClipChars caps the page text sent to the LLM.
const maxClipChars = 20000

// Clipper fetches a recipe page and runs its text through the normalizer.
type Clipper struct {
	httpClient *http.Client
	textGen    llm.TextGenerator
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		textGen:    textGen,
	}
}

// ClipURL fetches the URL, strips page noise and normalizes the remaining
// text into a Recipe candidate.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*domain.Recipe, shared.AgentMeta, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, shared.AgentMeta{}, fmt.Errorf("failed to fetch content: %w", err)
	}
	return Normalize(ctx, c.textGen, content)
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	text := strings.TrimSpace(doc.Find("body").Text())
	if len(text) > maxClipChars {
		text = text[:maxClipChars]
	}
	return text, nil
}
