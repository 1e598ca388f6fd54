package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/config"
	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/ratelimit"
	"github.com/techpolicywire/content-api/internal/repository"
)

// ContentService defines section-scoped content operations
type ContentService interface {
	ListSection(ctx context.Context, section string, opts repository.ListOptions) ([]models.ContentItem, int, error)
	ListAll(ctx context.Context, search string, limit int) (map[string][]models.ContentItem, error)
	Add(ctx context.Context, section string, req *models.ContentRequest) (*models.ContentItem, error)
	Update(ctx context.Context, section, id string, req *models.ContentRequest) (*models.ContentItem, error)
	Delete(ctx context.Context, section, id string) error
}

// SubmissionService defines the public intake and moderation workflow
type SubmissionService interface {
	Submit(ctx context.Context, clientIP string, req *models.SubmissionRequest) (*models.SubmissionReceipt, error)
	Pending(ctx context.Context) ([]models.Submission, error)
	Approve(ctx context.Context, id string) (*models.Submission, error)
	Dismiss(ctx context.Context, id string) (*models.Submission, error)
}

// SearchService defines cross-section search
type SearchService interface {
	Search(ctx context.Context, query string, opts models.SearchOptions) (*models.SearchResult, error)
}

// FeedService renders the RSS output
type FeedService interface {
	Render(ctx context.Context, section string) ([]byte, error)
}

// MetadataService scrapes page metadata for the clipper
type MetadataService interface {
	Fetch(ctx context.Context, pageURL string) (*models.PageMetadata, error)
}

// Services holds all service interfaces
type Services struct {
	Content    ContentService
	Submission SubmissionService
	Search     SearchService
	Feed       FeedService
	Metadata   MetadataService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, meta MetadataService, limiter *ratelimit.Limiter, cfg *config.Config, log zerolog.Logger) *Services {
	contentSvc := newContentService(repos.Content, log)

	return &Services{
		Content:    contentSvc,
		Submission: newSubmissionService(repos.Submission, repos.Content, limiter, log),
		Search:     newSearchService(repos.Content, log),
		Feed:       newFeedService(repos.Content, &cfg.Feed, log),
		Metadata:   meta,
	}
}
