package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"topline/pkg/logger"
	"topline/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/mauidude/go-readability"
)

// ScraperRepository extracts readable text from an article page. Used as a
// summary fallback when a feed item carries no snippet.
type ScraperRepository interface {
	ExtractText(ctx context.Context, pageURL string) (string, error)
}

// NewScraperRepository creates a page scraper.
func NewScraperRepository(log *logger.Logger) ScraperRepository {
	return &scraperRepository{
		client: &http.Client{Timeout: 20 * time.Second},
		logger: log,
	}
}

type scraperRepository struct {
	client *http.Client
	logger *logger.Logger
}

func (r *scraperRepository) ExtractText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch page, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse page content: %w", err)
	}

	readable, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc.Content())))
	if err != nil {
		return "", fmt.Errorf("failed to parse readable content: %w", err)
	}

	text := utils.CollapseWhitespace(readable.Text())
	return utils.CleanToValidUTF8(text), nil
}
