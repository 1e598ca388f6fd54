package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/config"
	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/sheets"
)

// sectionSheets maps content sections to their sheet tab names. Research
// lives on a separate spreadsheet and is handled explicitly.
var sectionSheets = map[models.Section]string{
	models.SectionNews:      "News",
	models.SectionIdeas:     "Ideas",
	models.SectionReports:   "Reports",
	models.SectionDocuments: "Documents",
	models.SectionPodcasts:  "Podcasts",
}

// sheetRef resolves a section to its spreadsheet, range, and column layout.
type sheetRef struct {
	spreadsheetID string
	sheet         string
	readRange     string
	statusCol     string
	research      bool
}

// contentRepo is the concrete implementation of ContentRepository
type contentRepo struct {
	store sheets.Store
	cfg   *config.SheetsConfig
	log   zerolog.Logger
}

// NewContentRepo creates a new content repository
func NewContentRepo(store sheets.Store, cfg *config.SheetsConfig, log zerolog.Logger) ContentRepository {
	return &contentRepo{
		store: store,
		cfg:   cfg,
		log:   log.With().Str("repository", "content").Logger(),
	}
}

func (r *contentRepo) ref(section models.Section) (sheetRef, error) {
	if section == models.SectionResearch {
		return sheetRef{
			spreadsheetID: r.cfg.ResearchSpreadsheetID,
			sheet:         "Research",
			readRange:     "Research!A:H",
			statusCol:     "H",
			research:      true,
		}, nil
	}

	sheet, ok := sectionSheets[section]
	if !ok {
		return sheetRef{}, models.ErrInvalidSection
	}
	return sheetRef{
		spreadsheetID: r.cfg.ContentSpreadsheetID,
		sheet:         sheet,
		readRange:     fmt.Sprintf("%s!A:G", sheet),
		statusCol:     "G",
	}, nil
}

func (r *contentRepo) fromRow(ref sheetRef, row []string) models.ContentItem {
	if ref.research {
		return researchFromRow(row)
	}
	return contentFromRow(row)
}

func (r *contentRepo) toRow(ref sheetRef, item *models.ContentItem) []string {
	if ref.research {
		return researchToRow(item)
	}
	return contentToRow(item)
}

// List reads the whole sheet and applies status filter, search, date sort,
// and pagination in memory. Store read failures degrade to an empty result
// so the aggregate views never fail outright.
func (r *contentRepo) List(ctx context.Context, section models.Section, opts ListOptions) ([]models.ContentItem, int, error) {
	ref, err := r.ref(section)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.store.ReadRange(ctx, ref.spreadsheetID, ref.readRange)
	if err != nil {
		r.log.Warn().Err(err).Str("section", string(section)).Msg("Store read failed, returning empty result")
		return []models.ContentItem{}, 0, nil
	}
	if len(rows) <= 1 {
		return []models.ContentItem{}, 0, nil
	}

	items := make([]models.ContentItem, 0, len(rows)-1)
	for _, row := range rows[1:] {
		item := r.fromRow(ref, row)
		if item.Title == "" {
			continue
		}
		if item.Deleted() && !opts.IncludeDeleted {
			continue
		}
		if !matchesSearch(&item, opts.Search) {
			continue
		}
		items = append(items, item)
	}

	// ISO-8601 timestamps compare correctly as strings
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].DateAdded > items[b].DateAdded
	})

	total := len(items)
	return paginate(items, opts.Offset, opts.Limit), total, nil
}

// Add assigns a fresh id and timestamp and appends the row.
func (r *contentRepo) Add(ctx context.Context, section models.Section, req *models.ContentRequest) (*models.ContentItem, error) {
	ref, err := r.ref(section)
	if err != nil {
		return nil, err
	}

	addedBy := req.AddedBy
	if addedBy == "" {
		addedBy = "manual"
	}

	item := &models.ContentItem{
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

	if err := r.store.AppendRow(ctx, ref.spreadsheetID, ref.readRange, r.toRow(ref, item)); err != nil {
		return nil, fmt.Errorf("failed to append %s row: %w", section, err)
	}

	r.log.Info().Str("section", string(section)).Str("id", item.ID).Msg("Content item added")
	return item, nil
}

// Update merges supplied fields over the existing row located by id.
// The id, dateAdded, and addedBy columns are preserved unless the caller
// supplies replacements.
func (r *contentRepo) Update(ctx context.Context, section models.Section, id string, req *models.ContentRequest) (*models.ContentItem, error) {
	ref, err := r.ref(section)
	if err != nil {
		return nil, err
	}

	rows, err := r.store.ReadRange(ctx, ref.spreadsheetID, ref.readRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", section, err)
	}

	idx := findRow(rows, id)
	if idx < 0 {
		return nil, models.ErrNotFound
	}

	item := r.fromRow(ref, rows[idx])
	mergeContent(&item, req)

	// Sheet rows are 1-based and row 0 of the slice is the header
	rowNum := idx + 1
	writeRange := fmt.Sprintf("%s!A%d:%s%d", ref.sheet, rowNum, ref.statusCol, rowNum)
	if err := r.store.UpdateRange(ctx, ref.spreadsheetID, writeRange, [][]string{r.toRow(ref, &item)}); err != nil {
		return nil, fmt.Errorf("failed to update %s row: %w", section, err)
	}

	r.log.Info().Str("section", string(section)).Str("id", id).Msg("Content item updated")
	return &item, nil
}

// Delete flips the status cell to deleted, leaving every other column
// untouched. Retrying on an already-deleted row is a no-op.
func (r *contentRepo) Delete(ctx context.Context, section models.Section, id string) error {
	ref, err := r.ref(section)
	if err != nil {
		return err
	}

	rows, err := r.store.ReadRange(ctx, ref.spreadsheetID, ref.readRange)
	if err != nil {
		return fmt.Errorf("failed to read %s sheet: %w", section, err)
	}

	idx := findRow(rows, id)
	if idx < 0 {
		return models.ErrNotFound
	}

	item := r.fromRow(ref, rows[idx])
	if item.Deleted() {
		return nil
	}

	rowNum := idx + 1
	cellRange := fmt.Sprintf("%s!%s%d", ref.sheet, ref.statusCol, rowNum)
	if err := r.store.UpdateRange(ctx, ref.spreadsheetID, cellRange, [][]string{{models.StatusDeleted}}); err != nil {
		return fmt.Errorf("failed to delete %s row: %w", section, err)
	}

	r.log.Info().Str("section", string(section)).Str("id", id).Msg("Content item deleted")
	return nil
}

// findRow locates a data row by id, skipping the header.
func findRow(rows [][]string, id string) int {
	for i := 1; i < len(rows); i++ {
		if cellAt(rows[i], 0) == id {
			return i
		}
	}
	return -1
}

func mergeContent(item *models.ContentItem, req *models.ContentRequest) {
	if req.Title != "" {
		item.Title = req.Title
	}
	if req.URL != "" {
		item.URL = req.URL
	}
	if req.Source != "" {
		item.Source = req.Source
	}
	if req.AddedBy != "" {
		item.AddedBy = req.AddedBy
	}
	if req.Authors != "" {
		item.Authors = req.Authors
	}
	if req.Institutions != "" {
		item.Institutions = req.Institutions
	}
	if req.DateAdded != "" {
		item.DateAdded = req.DateAdded
	}
	if req.Status != "" {
		item.Status = req.Status
	}
}

// matchesSearch does a case-insensitive substring match over title, source,
// authors, and institutions.
func matchesSearch(item *models.ContentItem, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Source), needle) ||
		strings.Contains(strings.ToLower(item.Authors), needle) ||
		strings.Contains(strings.ToLower(item.Institutions), needle)
}

func paginate(items []models.ContentItem, offset, limit int) []models.ContentItem {
	if offset >= len(items) {
		return []models.ContentItem{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
