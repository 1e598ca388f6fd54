package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/models"
)

const userAgent = "Mozilla/5.0 (compatible; TechPolicyWireBot/1.0)"

// Fetcher scrapes page metadata so the clipper can prefill title and source.
type Fetcher struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a metadata fetcher
func New(log zerolog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log.With().Str("component", "metadata").Logger(),
	}
}

// Fetch downloads the page and extracts og:title / og:site_name, falling
// back to the <title> tag and the hostname.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*models.PageMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch url: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	meta := &models.PageMetadata{URL: pageURL}

	meta.Title = strings.TrimSpace(metaProperty(doc, "og:title"))
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	meta.Source = strings.TrimSpace(metaProperty(doc, "og:site_name"))
	if meta.Source == "" {
		meta.Source = sourceFromHost(pageURL)
	}

	return meta, nil
}

func metaProperty(doc *goquery.Document, property string) string {
	value, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First().Attr("content")
	return value
}

// sourceFromHost derives a display name from the domain, e.g.
// "www.example.com" becomes "Example".
func sourceFromHost(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	name, _, _ := strings.Cut(host, ".")
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
