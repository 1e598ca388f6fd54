package mocks

import (
	"context"

	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/repository"
)

// MockContentService is a mock implementation of service.ContentService
type MockContentService struct {
	Sections map[string][]models.ContentItem
	Added    []*models.ContentRequest
	Err      error
}

func NewMockContentService() *MockContentService {
	return &MockContentService{Sections: make(map[string][]models.ContentItem)}
}

func (m *MockContentService) ListSection(ctx context.Context, section string, opts repository.ListOptions) ([]models.ContentItem, int, error) {
	if _, err := models.ParseSection(section); err != nil {
		return nil, 0, err
	}
	if m.Err != nil {
		return nil, 0, m.Err
	}
	items := m.Sections[section]
	if items == nil {
		items = []models.ContentItem{}
	}
	return items, len(items), nil
}

func (m *MockContentService) ListAll(ctx context.Context, search string, limit int) (map[string][]models.ContentItem, error) {
	out := make(map[string][]models.ContentItem)
	for _, section := range models.AllSections {
		items := m.Sections[string(section)]
		if items == nil {
			items = []models.ContentItem{}
		}
		out[string(section)] = items
	}
	return out, nil
}

func (m *MockContentService) Add(ctx context.Context, section string, req *models.ContentRequest) (*models.ContentItem, error) {
	if _, err := models.ParseSection(section); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	m.Added = append(m.Added, req)
	return &models.ContentItem{
		ID:     "mock-id",
		Title:  req.Title,
		URL:    req.URL,
		Source: req.Source,
		Status: models.StatusActive,
	}, nil
}

func (m *MockContentService) Update(ctx context.Context, section, id string, req *models.ContentRequest) (*models.ContentItem, error) {
	if _, err := models.ParseSection(section); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	for _, item := range m.Sections[section] {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MockContentService) Delete(ctx context.Context, section, id string) error {
	if _, err := models.ParseSection(section); err != nil {
		return err
	}
	if m.Err != nil {
		return m.Err
	}
	for _, item := range m.Sections[section] {
		if item.ID == id {
			return nil
		}
	}
	return models.ErrNotFound
}

// MockSubmissionService is a mock implementation of service.SubmissionService
type MockSubmissionService struct {
	SubmitFunc  func(clientIP string, req *models.SubmissionRequest) (*models.SubmissionReceipt, error)
	PendingList []models.Submission
	ApproveFunc func(id string) (*models.Submission, error)
	DismissFunc func(id string) (*models.Submission, error)
}

func NewMockSubmissionService() *MockSubmissionService {
	return &MockSubmissionService{}
}

func (m *MockSubmissionService) Submit(ctx context.Context, clientIP string, req *models.SubmissionRequest) (*models.SubmissionReceipt, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(clientIP, req)
	}
	return &models.SubmissionReceipt{Success: true, ID: "mock-sub-id"}, nil
}

func (m *MockSubmissionService) Pending(ctx context.Context) ([]models.Submission, error) {
	if m.PendingList == nil {
		return []models.Submission{}, nil
	}
	return m.PendingList, nil
}

func (m *MockSubmissionService) Approve(ctx context.Context, id string) (*models.Submission, error) {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(id)
	}
	return nil, models.ErrNotFound
}

func (m *MockSubmissionService) Dismiss(ctx context.Context, id string) (*models.Submission, error) {
	if m.DismissFunc != nil {
		return m.DismissFunc(id)
	}
	return nil, models.ErrNotFound
}

// MockSearchService is a mock implementation of service.SearchService
type MockSearchService struct {
	Result *models.SearchResult
}

func NewMockSearchService() *MockSearchService {
	return &MockSearchService{}
}

func (m *MockSearchService) Search(ctx context.Context, query string, opts models.SearchOptions) (*models.SearchResult, error) {
	if m.Result != nil {
		return m.Result, nil
	}
	return &models.SearchResult{Results: []models.SearchHit{}, Query: query}, nil
}

// MockFeedService is a mock implementation of service.FeedService
type MockFeedService struct {
	XML []byte
	Err error
}

func NewMockFeedService() *MockFeedService {
	return &MockFeedService{XML: []byte(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"></rss>`)}
}

func (m *MockFeedService) Render(ctx context.Context, section string) ([]byte, error) {
	if section != "" {
		if _, err := models.ParseSection(section); err != nil {
			return nil, err
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.XML, nil
}

// MockMetadataService is a mock implementation of service.MetadataService
type MockMetadataService struct {
	Meta *models.PageMetadata
	Err  error
}

func NewMockMetadataService() *MockMetadataService {
	return &MockMetadataService{}
}

func (m *MockMetadataService) Fetch(ctx context.Context, pageURL string) (*models.PageMetadata, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Meta != nil {
		return m.Meta, nil
	}
	return &models.PageMetadata{Title: "Mock Title", Source: "Mock", URL: pageURL}, nil
}
