package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/repository"
	"github.com/techpolicywire/content-api/internal/validation"
)

// contentService is the concrete implementation of ContentService
type contentService struct {
	repo repository.ContentRepository
	log  zerolog.Logger
}

func newContentService(repo repository.ContentRepository, log zerolog.Logger) *contentService {
	return &contentService{
		repo: repo,
		log:  log.With().Str("service", "content").Logger(),
	}
}

// ListSection validates the section name and lists its items.
func (s *contentService) ListSection(ctx context.Context, section string, opts repository.ListOptions) ([]models.ContentItem, int, error) {
	sec, err := models.ParseSection(section)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, sec, opts)
}

// ListAll fetches every section concurrently for the homepage aggregate.
// A section whose fetch fails contributes an empty slice; the aggregate
// itself never fails.
func (s *contentService) ListAll(ctx context.Context, search string, limit int) (map[string][]models.ContentItem, error) {
	results := make([][]models.ContentItem, len(models.AllSections))

	g, ctx := errgroup.WithContext(ctx)
	for i, section := range models.AllSections {
		i, section := i, section
		g.Go(func() error {
			items, _, err := s.repo.List(ctx, section, repository.ListOptions{
				Limit:  limit,
				Search: search,
			})
			if err != nil {
				s.log.Warn().Err(err).Str("section", string(section)).Msg("Section fetch failed")
				items = []models.ContentItem{}
			}
			results[i] = items
			return nil
		})
	}
	g.Wait()

	out := make(map[string][]models.ContentItem, len(models.AllSections))
	for i, section := range models.AllSections {
		out[string(section)] = results[i]
	}
	return out, nil
}

// Add validates and creates a new item in the section.
func (s *contentService) Add(ctx context.Context, section string, req *models.ContentRequest) (*models.ContentItem, error) {
	sec, err := models.ParseSection(section)
	if err != nil {
		return nil, err
	}
	if verr := validation.ContentRequest(req); verr != nil {
		return nil, verr
	}
	return s.repo.Add(ctx, sec, req)
}

// Update merges the supplied fields over the existing item.
func (s *contentService) Update(ctx context.Context, section, id string, req *models.ContentRequest) (*models.ContentItem, error) {
	sec, err := models.ParseSection(section)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, sec, id, req)
}

// Delete soft-deletes the item.
func (s *contentService) Delete(ctx context.Context, section, id string) error {
	sec, err := models.ParseSection(section)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, sec, id)
}
