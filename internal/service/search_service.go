package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/repository"
)

const defaultSearchLimit = 100

// searchService fans a query out across sections and merges the hits.
type searchService struct {
	repo repository.ContentRepository
	log  zerolog.Logger
}

func newSearchService(repo repository.ContentRepository, log zerolog.Logger) *searchService {
	return &searchService{
		repo: repo,
		log:  log.With().Str("service", "search").Logger(),
	}
}

// Search runs the cross-section query. A blank query returns an empty
// result without touching the store. Sections that fail to fetch contribute
// nothing; the search itself never fails on store errors.
func (s *searchService) Search(ctx context.Context, query string, opts models.SearchOptions) (*models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &models.SearchResult{Results: []models.SearchHit{}, Total: 0, Query: ""}, nil
	}

	sections := opts.Sections
	if len(sections) == 0 {
		sections = models.AllSections
	}

	perSection := make([][]models.SearchHit, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	for i, section := range sections {
		i, section := i, section
		g.Go(func() error {
			items, _, err := s.repo.List(gctx, section, repository.ListOptions{Search: query})
			if err != nil {
				s.log.Warn().Err(err).Str("section", string(section)).Msg("Search fetch failed")
				return nil
			}
			hits := make([]models.SearchHit, len(items))
			for j, item := range items {
				hits[j] = models.SearchHit{ContentItem: item, Section: section}
			}
			perSection[i] = hits
			return nil
		})
	}
	g.Wait()

	var hits []models.SearchHit
	for _, sectionHits := range perSection {
		hits = append(hits, sectionHits...)
	}

	hits = filterByDateRange(hits, opts.DateFrom, opts.DateTo)
	sortHits(hits, opts.Sort, opts.Order)

	total := len(hits)
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit < len(hits) {
		hits = hits[:limit]
	}
	if hits == nil {
		hits = []models.SearchHit{}
	}

	return &models.SearchResult{Results: hits, Total: total, Query: query}, nil
}

// filterByDateRange keeps hits whose dateAdded falls inside the inclusive
// bounds. The upper bound is extended to the end of its day so a plain date
// matches everything added that day.
func filterByDateRange(hits []models.SearchHit, from, to string) []models.SearchHit {
	fromTime, hasFrom := parseDateBound(from, false)
	toTime, hasTo := parseDateBound(to, true)
	if !hasFrom && !hasTo {
		return hits
	}

	filtered := hits[:0]
	for _, hit := range hits {
		added, err := time.Parse(time.RFC3339, hit.DateAdded)
		if err != nil {
			continue
		}
		if hasFrom && added.Before(fromTime) {
			continue
		}
		if hasTo && added.After(toTime) {
			continue
		}
		filtered = append(filtered, hit)
	}
	return filtered
}

func parseDateBound(raw string, endOfDay bool) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}

func sortHits(hits []models.SearchHit, sortKey, order string) {
	desc := order != models.OrderAsc

	less := func(a, b models.SearchHit) bool {
		switch sortKey {
		case models.SortSource:
			return strings.ToLower(a.Source) < strings.ToLower(b.Source)
		case models.SortTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		default:
			return a.DateAdded < b.DateAdded
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if desc {
			return less(hits[j], hits[i])
		}
		return less(hits[i], hits[j])
	})
}
