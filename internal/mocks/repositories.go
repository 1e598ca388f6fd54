package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/repository"
)

// MockContentRepository is an in-memory implementation of ContentRepository
type MockContentRepository struct {
	Items map[models.Section][]models.ContentItem

	// Per-section read failure injection
	ListErrors map[models.Section]error

	AddError    error
	UpdateError error
	DeleteError error
}

func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{
		Items:      make(map[models.Section][]models.ContentItem),
		ListErrors: make(map[models.Section]error),
	}
}

func (m *MockContentRepository) List(ctx context.Context, section models.Section, opts repository.ListOptions) ([]models.ContentItem, int, error) {
	if !models.ValidSections[section] {
		return nil, 0, models.ErrInvalidSection
	}
	if err := m.ListErrors[section]; err != nil {
		return nil, 0, err
	}

	var items []models.ContentItem
	for _, item := range m.Items[section] {
		if item.Title == "" {
			continue
		}
		if item.Deleted() && !opts.IncludeDeleted {
			continue
		}
		if !matches(&item, opts.Search) {
			continue
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].DateAdded > items[b].DateAdded
	})

	total := len(items)
	if opts.Offset >= len(items) {
		return []models.ContentItem{}, total, nil
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items, total, nil
}

func (m *MockContentRepository) Add(ctx context.Context, section models.Section, req *models.ContentRequest) (*models.ContentItem, error) {
	if !models.ValidSections[section] {
		return nil, models.ErrInvalidSection
	}
	if m.AddError != nil {
		return nil, m.AddError
	}

	addedBy := req.AddedBy
	if addedBy == "" {
		addedBy = "manual"
	}
	item := models.ContentItem{
		ID:           uuid.NewString(),
		DateAdded:    time.Now().UTC().Format(time.RFC3339),
		Title:        req.Title,
		URL:          req.URL,
		Source:       req.Source,
		AddedBy:      addedBy,
		Authors:      req.Authors,
		Institutions: req.Institutions,
		Status:       models.StatusActive,
	}
	m.Items[section] = append(m.Items[section], item)
	return &item, nil
}

func (m *MockContentRepository) Update(ctx context.Context, section models.Section, id string, req *models.ContentRequest) (*models.ContentItem, error) {
	if !models.ValidSections[section] {
		return nil, models.ErrInvalidSection
	}
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	for i := range m.Items[section] {
		if m.Items[section][i].ID != id {
			continue
		}
		item := &m.Items[section][i]
		if req.Title != "" {
			item.Title = req.Title
		}
		if req.URL != "" {
			item.URL = req.URL
		}
		if req.Source != "" {
			item.Source = req.Source
		}
		if req.DateAdded != "" {
			item.DateAdded = req.DateAdded
		}
		if req.Status != "" {
			item.Status = req.Status
		}
		updated := *item
		return &updated, nil
	}
	return nil, models.ErrNotFound
}

func (m *MockContentRepository) Delete(ctx context.Context, section models.Section, id string) error {
	if !models.ValidSections[section] {
		return models.ErrInvalidSection
	}
	if m.DeleteError != nil {
		return m.DeleteError
	}

	for i := range m.Items[section] {
		if m.Items[section][i].ID == id {
			m.Items[section][i].Status = models.StatusDeleted
			return nil
		}
	}
	return models.ErrNotFound
}

func matches(item *models.ContentItem, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Source), needle) ||
		strings.Contains(strings.ToLower(item.Authors), needle) ||
		strings.Contains(strings.ToLower(item.Institutions), needle)
}

// MockSubmissionRepository is an in-memory implementation of SubmissionRepository
type MockSubmissionRepository struct {
	Submissions map[string]*models.Submission

	CreateError error
	StatusError error
}

func NewMockSubmissionRepository() *MockSubmissionRepository {
	return &MockSubmissionRepository{
		Submissions: make(map[string]*models.Submission),
	}
}

func (m *MockSubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	copied := *sub
	m.Submissions[sub.ID] = &copied
	return nil
}

func (m *MockSubmissionRepository) Pending(ctx context.Context) ([]models.Submission, error) {
	var pending []models.Submission
	for _, sub := range m.Submissions {
		if sub.Status == models.SubmissionPending {
			pending = append(pending, *sub)
		}
	}
	sort.SliceStable(pending, func(a, b int) bool {
		return pending[a].DateSubmitted > pending[b].DateSubmitted
	})
	if pending == nil {
		pending = []models.Submission{}
	}
	return pending, nil
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	sub, ok := m.Submissions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

func (m *MockSubmissionRepository) SetStatus(ctx context.Context, id, status string) error {
	if m.StatusError != nil {
		return m.StatusError
	}
	sub, ok := m.Submissions[id]
	if !ok {
		return models.ErrNotFound
	}
	sub.Status = status
	return nil
}
