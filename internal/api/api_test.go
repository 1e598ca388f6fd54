package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/api"
	"github.com/techpolicywire/content-api/internal/config"
	"github.com/techpolicywire/content-api/internal/mocks"
	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/service"
)

const testAdminToken = "test-admin-token"

type testEnv struct {
	router     *gin.Engine
	content    *mocks.MockContentService
	submission *mocks.MockSubmissionService
	search     *mocks.MockSearchService
	feed       *mocks.MockFeedService
	metadata   *mocks.MockMetadataService
}

func setupTestRouter() *testEnv {
	env := &testEnv{
		content:    mocks.NewMockContentService(),
		submission: mocks.NewMockSubmissionService(),
		search:     mocks.NewMockSearchService(),
		feed:       mocks.NewMockFeedService(),
		metadata:   mocks.NewMockMetadataService(),
	}

	services := &service.Services{
		Content:    env.content,
		Submission: env.submission,
		Search:     env.search,
		Feed:       env.feed,
		Metadata:   env.metadata,
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			AdminToken:  testAdminToken,
			AdminEmails: []string{"editor@techpolicywire.test"},
		},
	}

	env.router = api.NewRouter(services, cfg, zerolog.Nop())
	return env
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHealthCheck(t *testing.T) {
	env := setupTestRouter()

	w := doRequest(t, env.router, http.MethodGet, "/health", nil, "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	body := decodeJSON(t, w)
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", body["status"])
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/content", nil)
	req.Header.Set("Origin", "https://techpolicywire.test")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Preflight should return 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard origin, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Authorization") {
		t.Errorf("Preflight should allow the Authorization header, got %q", got)
	}
}

func TestCacheControlHeaders(t *testing.T) {
	env := setupTestRouter()

	w := doRequest(t, env.router, http.MethodGet, "/api/content", nil, "")
	if got := w.Header().Get("Cache-Control"); got != "public, max-age=300" {
		t.Errorf("GET responses should be cacheable, got %q", got)
	}

	w = doRequest(t, env.router, http.MethodPost, "/api/submissions", &models.SubmissionRequest{
		Section: "news", Title: "t", URL: "https://example.com",
	}, "")
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Mutating responses should be no-store, got %q", got)
	}
}

func TestGetAllContent(t *testing.T) {
	env := setupTestRouter()
	env.content.Sections["news"] = []models.ContentItem{
		{ID: "n1", Title: "Story", URL: "https://example.com/1", Status: "active"},
	}

	w := doRequest(t, env.router, http.MethodGet, "/api/content", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeJSON(t, w)
	for _, section := range []string{"news", "ideas", "reports", "research", "documents", "podcasts"} {
		if _, ok := body[section]; !ok {
			t.Errorf("Aggregate response missing section %q", section)
		}
	}
	news, ok := body["news"].([]any)
	if !ok || len(news) != 1 {
		t.Errorf("Expected one news item, got %v", body["news"])
	}
}

func TestGetSection(t *testing.T) {
	env := setupTestRouter()
	env.content.Sections["reports"] = []models.ContentItem{
		{ID: "r1", Title: "Report", URL: "https://example.com/r", Status: "active"},
	}

	w := doRequest(t, env.router, http.MethodGet, "/api/content/reports", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var items []models.ContentItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("Expected a bare array: %v", err)
	}
	if len(items) != 1 || items[0].ID != "r1" {
		t.Errorf("Unexpected items: %+v", items)
	}

	// includeTotal switches to the wrapped shape
	w = doRequest(t, env.router, http.MethodGet, "/api/content/reports?includeTotal=true", nil, "")
	body := decodeJSON(t, w)
	if body["total"] != float64(1) {
		t.Errorf("Expected total 1, got %v", body["total"])
	}
	if _, ok := body["items"]; !ok {
		t.Error("Wrapped shape should carry items")
	}
}

func TestGetSection_Invalid(t *testing.T) {
	env := setupTestRouter()

	w := doRequest(t, env.router, http.MethodGet, "/api/content/gossip", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Unknown section should be 400, got %d", w.Code)
	}
	body := decodeJSON(t, w)
	if body["error"] != "Invalid section" {
		t.Errorf("Unexpected error body: %v", body)
	}
}

func TestCreateContent_AuthMatrix(t *testing.T) {
	env := setupTestRouter()
	req := &models.ContentRequest{Title: "t", URL: "https://example.com"}

	w := doRequest(t, env.router, http.MethodPost, "/api/content/news", req, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Missing token should be 401, got %d", w.Code)
	}

	w = doRequest(t, env.router, http.MethodPost, "/api/content/news", req, "wrong-token")
	if w.Code != http.StatusForbidden {
		t.Errorf("Wrong token should be 403, got %d", w.Code)
	}

	w = doRequest(t, env.router, http.MethodPost, "/api/content/news", req, testAdminToken)
	if w.Code != http.StatusCreated {
		t.Errorf("Valid token should be 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(env.content.Added) != 1 {
		t.Errorf("Service should have received the request, got %d", len(env.content.Added))
	}
}

func TestCreateContent_InvalidBody(t *testing.T) {
	env := setupTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/content/news", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Malformed JSON should be 400, got %d", w.Code)
	}
}

func TestUpdateAndDeleteContent(t *testing.T) {
	env := setupTestRouter()
	env.content.Sections["news"] = []models.ContentItem{
		{ID: "n1", Title: "Story", URL: "https://example.com/1", Status: "active"},
	}

	w := doRequest(t, env.router, http.MethodPut, "/api/content/news/n1", &models.ContentRequest{Title: "New"}, testAdminToken)
	if w.Code != http.StatusOK {
		t.Errorf("Update should be 200, got %d", w.Code)
	}

	w = doRequest(t, env.router, http.MethodPut, "/api/content/news/missing", &models.ContentRequest{Title: "New"}, testAdminToken)
	if w.Code != http.StatusNotFound {
		t.Errorf("Unknown id should be 404, got %d", w.Code)
	}

	w = doRequest(t, env.router, http.MethodDelete, "/api/content/news/n1", nil, testAdminToken)
	if w.Code != http.StatusOK {
		t.Errorf("Delete should be 200, got %d", w.Code)
	}
	body := decodeJSON(t, w)
	if body["success"] != true {
		t.Errorf("Delete should report success, got %v", body)
	}
}

func TestSubmitPublic(t *testing.T) {
	env := setupTestRouter()

	w := doRequest(t, env.router, http.MethodPost, "/api/submissions", &models.SubmissionRequest{
		Section: "news", Title: "t", URL: "https://example.com",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Public submission should be 201, got %d", w.Code)
	}
	body := decodeJSON(t, w)
	if body["success"] != true || body["id"] == "" {
		t.Errorf("Unexpected receipt: %v", body)
	}
}

func TestSubmitRateLimited(t *testing.T) {
	env := setupTestRouter()
	env.submission.SubmitFunc = func(clientIP string, req *models.SubmissionRequest) (*models.SubmissionReceipt, error) {
		return nil, models.ErrRateLimited
	}

	w := doRequest(t, env.router, http.MethodPost, "/api/submissions", &models.SubmissionRequest{
		Section: "news", Title: "t", URL: "https://example.com",
	}, "")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}
}

func TestSubmitValidationError(t *testing.T) {
	env := setupTestRouter()
	env.submission.SubmitFunc = func(clientIP string, req *models.SubmissionRequest) (*models.SubmissionReceipt, error) {
		return nil, &models.ValidationError{Field: "url", Message: "url is required"}
	}

	w := doRequest(t, env.router, http.MethodPost, "/api/submissions", &models.SubmissionRequest{
		Section: "news", Title: "t",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	body := decodeJSON(t, w)
	if body["field"] != "url" {
		t.Errorf("Validation errors should name the field, got %v", body)
	}
}

func TestListSubmissionsRequiresAdmin(t *testing.T) {
	env := setupTestRouter()
	env.submission.PendingList = []models.Submission{
		{ID: "s1", Section: "news", Title: "t", URL: "https://example.com", Status: models.SubmissionPending},
	}

	w := doRequest(t, env.router, http.MethodGet, "/api/submissions", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Queue without token should be 401, got %d", w.Code)
	}

	w = doRequest(t, env.router, http.MethodGet, "/api/submissions", nil, testAdminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Queue with token should be 200, got %d", w.Code)
	}
	body := decodeJSON(t, w)
	if body["total"] != float64(1) {
		t.Errorf("Expected total 1, got %v", body["total"])
	}
}

func TestApproveSubmission(t *testing.T) {
	env := setupTestRouter()
	env.submission.ApproveFunc = func(id string) (*models.Submission, error) {
		if id != "s1" {
			return nil, models.ErrNotFound
		}
		return &models.Submission{ID: "s1", Status: models.SubmissionApproved}, nil
	}

	w := doRequest(t, env.router, http.MethodPost, "/api/submissions/s1/approve", nil, testAdminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Approve should be 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeJSON(t, w)
	if body["success"] != true {
		t.Errorf("Approve should report success, got %v", body)
	}

	w = doRequest(t, env.router, http.MethodPost, "/api/submissions/unknown/approve", nil, testAdminToken)
	if w.Code != http.StatusNotFound {
		t.Errorf("Unknown submission should be 404, got %d", w.Code)
	}
}

func TestDismissSubmission(t *testing.T) {
	env := setupTestRouter()
	env.submission.DismissFunc = func(id string) (*models.Submission, error) {
		return &models.Submission{ID: id, Status: models.SubmissionDismissed}, nil
	}

	w := doRequest(t, env.router, http.MethodPost, "/api/submissions/s1/dismiss", nil, testAdminToken)
	if w.Code != http.StatusOK {
		t.Errorf("Dismiss should be 200, got %d", w.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	env := setupTestRouter()
	env.search.Result = &models.SearchResult{
		Results: []models.SearchHit{
			{ContentItem: models.ContentItem{ID: "n1", Title: "Privacy bill"}, Section: models.SectionNews},
		},
		Total: 1,
		Query: "privacy",
	}

	w := doRequest(t, env.router, http.MethodGet, "/api/search?q=privacy", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := decodeJSON(t, w)
	if body["total"] != float64(1) || body["query"] != "privacy" {
		t.Errorf("Unexpected search response: %v", body)
	}
}

func TestSearchInvalidSectionsParam(t *testing.T) {
	env := setupTestRouter()

	w := doRequest(t, env.router, http.MethodGet, "/api/search?q=x&sections=news,gossip", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Bad sections filter should be 400, got %d", w.Code)
	}
}

func TestFeedEndpoint(t *testing.T) {
	env := setupTestRouter()

	w := doRequest(t, env.router, http.MethodGet, "/api/rss", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/rss+xml; charset=utf-8" {
		t.Errorf("Unexpected content type %q", got)
	}
	if !strings.Contains(w.Body.String(), "<rss") {
		t.Errorf("Expected RSS body, got %q", w.Body.String())
	}

	w = doRequest(t, env.router, http.MethodGet, "/api/rss/gossip", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Unknown section feed should be 400, got %d", w.Code)
	}
}

func TestMetadataEndpoint(t *testing.T) {
	env := setupTestRouter()

	w := doRequest(t, env.router, http.MethodGet, "/api/metadata", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Missing url should be 400, got %d", w.Code)
	}

	w = doRequest(t, env.router, http.MethodGet, "/api/metadata?url=https%3A%2F%2Fexample.com", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := decodeJSON(t, w)
	if body["title"] != "Mock Title" {
		t.Errorf("Unexpected metadata body: %v", body)
	}
}

func TestMeEndpoint(t *testing.T) {
	env := setupTestRouter()

	w := doRequest(t, env.router, http.MethodGet, "/api/me", nil, "")
	body := decodeJSON(t, w)
	if body["authenticated"] != false {
		t.Errorf("Anonymous /me should be unauthenticated, got %v", body)
	}

	w = doRequest(t, env.router, http.MethodGet, "/api/me", nil, testAdminToken)
	body = decodeJSON(t, w)
	if body["authenticated"] != true {
		t.Errorf("Admin /me should be authenticated, got %v", body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["email"] != "editor@techpolicywire.test" {
		t.Errorf("Unexpected user payload: %v", body["user"])
	}
}

func TestUnknownRouteReturnsJSON(t *testing.T) {
	env := setupTestRouter()

	w := doRequest(t, env.router, http.MethodGet, "/nope", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	body := decodeJSON(t, w)
	if body["error"] != "Not found" {
		t.Errorf("Unexpected 404 body: %v", body)
	}
}
