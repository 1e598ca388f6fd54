package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/config"
	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/sheets"
)

// ListOptions controls filtering and pagination for section listings.
// Limit 0 means unlimited.
type ListOptions struct {
	Limit          int
	Offset         int
	Search         string
	IncludeDeleted bool
}

// ContentRepository defines section-scoped CRUD over the content and
// research sheets.
type ContentRepository interface {
	List(ctx context.Context, section models.Section, opts ListOptions) ([]models.ContentItem, int, error)
	Add(ctx context.Context, section models.Section, req *models.ContentRequest) (*models.ContentItem, error)
	Update(ctx context.Context, section models.Section, id string, req *models.ContentRequest) (*models.ContentItem, error)
	Delete(ctx context.Context, section models.Section, id string) error
}

// SubmissionRepository defines operations over the submissions sheet.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) error
	Pending(ctx context.Context) ([]models.Submission, error)
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	SetStatus(ctx context.Context, id, status string) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Content    ContentRepository
	Submission SubmissionRepository
}

// New creates all repositories backed by the given store
func New(store sheets.Store, cfg *config.SheetsConfig, log zerolog.Logger) *Repositories {
	return &Repositories{
		Content:    NewContentRepo(store, cfg, log),
		Submission: NewSubmissionRepo(store, cfg, log),
	}
}
