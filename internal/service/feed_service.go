package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/techpolicywire/content-api/internal/config"
	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/repository"
)

// feedService renders the RSS 2.0 output for one section or the whole site,
// merged with the configured external feed.
type feedService struct {
	repo   repository.ContentRepository
	cfg    *config.FeedConfig
	parser *gofeed.Parser
	log    zerolog.Logger
}

func newFeedService(repo repository.ContentRepository, cfg *config.FeedConfig, log zerolog.Logger) *feedService {
	return &feedService{
		repo:   repo,
		cfg:    cfg,
		parser: gofeed.NewParser(),
		log:    log.With().Str("service", "feed").Logger(),
	}
}

// feedEntry is a normalized item before XML rendering.
type feedEntry struct {
	title  string
	link   string
	date   string // RFC3339
	source string
}

// Render produces the RSS document. An empty section renders the aggregate
// feed across all sections plus the external source.
func (s *feedService) Render(ctx context.Context, section string) ([]byte, error) {
	var entries []feedEntry
	selfPath := "/api/rss"

	if section != "" {
		sec, err := models.ParseSection(section)
		if err != nil {
			return nil, err
		}
		selfPath += "/" + section

		items, _, err := s.repo.List(ctx, sec, repository.ListOptions{Limit: s.cfg.ItemLimit})
		if err != nil {
			return nil, err
		}
		entries = toEntries(items)
	} else {
		entries = s.collectAll(ctx)
		entries = append(entries, s.externalEntries(ctx)...)
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].date > entries[b].date
	})
	if s.cfg.ItemLimit > 0 && len(entries) > s.cfg.ItemLimit {
		entries = entries[:s.cfg.ItemLimit]
	}

	return s.marshal(entries, selfPath)
}

// collectAll fans out across every section; a failed section is skipped.
func (s *feedService) collectAll(ctx context.Context) []feedEntry {
	perSection := make([][]feedEntry, len(models.AllSections))

	g, gctx := errgroup.WithContext(ctx)
	for i, section := range models.AllSections {
		i, section := i, section
		g.Go(func() error {
			items, _, err := s.repo.List(gctx, section, repository.ListOptions{Limit: s.cfg.ItemLimit})
			if err != nil {
				s.log.Warn().Err(err).Str("section", string(section)).Msg("Feed fetch failed")
				return nil
			}
			perSection[i] = toEntries(items)
			return nil
		})
	}
	g.Wait()

	var entries []feedEntry
	for _, sectionEntries := range perSection {
		entries = append(entries, sectionEntries...)
	}
	return entries
}

// externalEntries pulls the configured external RSS source. Failures skip
// the source rather than breaking the feed.
func (s *feedService) externalEntries(ctx context.Context) []feedEntry {
	if s.cfg.ExternalFeedURL == "" {
		return nil
	}

	feed, err := s.parser.ParseURLWithContext(s.cfg.ExternalFeedURL, ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("url", s.cfg.ExternalFeedURL).Msg("External feed fetch failed")
		return nil
	}

	entries := make([]feedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entry := feedEntry{
			title:  item.Title,
			link:   item.Link,
			source: feed.Title,
		}
		if item.PublishedParsed != nil {
			entry.date = item.PublishedParsed.UTC().Format(time.RFC3339)
		}
		entries = append(entries, entry)
	}
	return entries
}

func toEntries(items []models.ContentItem) []feedEntry {
	entries := make([]feedEntry, len(items))
	for i, item := range items {
		entries[i] = feedEntry{
			title:  item.Title,
			link:   item.URL,
			date:   item.DateAdded,
			source: item.Source,
		}
	}
	return entries
}

// RSS 2.0 document structure. encoding/xml handles escaping; the explicit
// atom:link and per-item source elements are why this is not gorilla/feeds.
type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Description   string    `xml:"description"`
	Link          string    `xml:"link"`
	AtomLink      atomLink  `xml:"atom:link"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title   string  `xml:"title"`
	Link    string  `xml:"link"`
	GUID    rssGUID `xml:"guid"`
	PubDate string  `xml:"pubDate"`
	Source  string  `xml:"source,omitempty"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

func (s *feedService) marshal(entries []feedEntry, selfPath string) ([]byte, error) {
	items := make([]rssItem, len(entries))
	for i, entry := range entries {
		items[i] = rssItem{
			Title:   entry.title,
			Link:    entry.link,
			GUID:    rssGUID{IsPermaLink: true, Value: entry.link},
			PubDate: toPubDate(entry.date),
			Source:  entry.source,
		}
	}

	doc := rssDoc{
		Version: "2.0",
		AtomNS:  "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:       s.cfg.Title,
			Description: s.cfg.Description,
			Link:        s.cfg.SiteURL,
			AtomLink: atomLink{
				Href: s.cfg.SiteURL + selfPath,
				Rel:  "self",
				Type: "application/rss+xml",
			},
			LastBuildDate: time.Now().UTC().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feed: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func toPubDate(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Format(time.RFC1123Z)
}
