package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/config"
	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/sheets"
)

const (
	submissionsRange     = "Submissions!A:J"
	submissionsSheet     = "Submissions"
	submissionsStatusCol = "I"
)

// submissionRepo is the concrete implementation of SubmissionRepository
type submissionRepo struct {
	store sheets.Store
	cfg   *config.SheetsConfig
	log   zerolog.Logger
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(store sheets.Store, cfg *config.SheetsConfig, log zerolog.Logger) SubmissionRepository {
	return &submissionRepo{
		store: store,
		cfg:   cfg,
		log:   log.With().Str("repository", "submission").Logger(),
	}
}

// Create appends a new submission row.
func (r *submissionRepo) Create(ctx context.Context, sub *models.Submission) error {
	if err := r.store.AppendRow(ctx, r.cfg.ContentSpreadsheetID, submissionsRange, submissionToRow(sub)); err != nil {
		return fmt.Errorf("failed to append submission: %w", err)
	}
	r.log.Info().Str("id", sub.ID).Str("section", sub.Section).Msg("Submission created")
	return nil
}

// Pending returns pending submissions only, newest first. Store read
// failures degrade to an empty queue.
func (r *submissionRepo) Pending(ctx context.Context) ([]models.Submission, error) {
	rows, err := r.store.ReadRange(ctx, r.cfg.ContentSpreadsheetID, submissionsRange)
	if err != nil {
		r.log.Warn().Err(err).Msg("Store read failed, returning empty queue")
		return []models.Submission{}, nil
	}
	if len(rows) <= 1 {
		return []models.Submission{}, nil
	}

	pending := make([]models.Submission, 0, len(rows)-1)
	for _, row := range rows[1:] {
		sub := submissionFromRow(row)
		if sub.ID == "" || sub.Status != models.SubmissionPending {
			continue
		}
		pending = append(pending, sub)
	}

	sort.SliceStable(pending, func(a, b int) bool {
		return pending[a].DateSubmitted > pending[b].DateSubmitted
	})
	return pending, nil
}

// GetByID locates a submission regardless of status.
func (r *submissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	rows, err := r.store.ReadRange(ctx, r.cfg.ContentSpreadsheetID, submissionsRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read submissions sheet: %w", err)
	}

	idx := findRow(rows, id)
	if idx < 0 {
		return nil, models.ErrNotFound
	}

	sub := submissionFromRow(rows[idx])
	return &sub, nil
}

// SetStatus rewrites only the status cell of the submission row.
func (r *submissionRepo) SetStatus(ctx context.Context, id, status string) error {
	rows, err := r.store.ReadRange(ctx, r.cfg.ContentSpreadsheetID, submissionsRange)
	if err != nil {
		return fmt.Errorf("failed to read submissions sheet: %w", err)
	}

	idx := findRow(rows, id)
	if idx < 0 {
		return models.ErrNotFound
	}

	rowNum := idx + 1
	cellRange := fmt.Sprintf("%s!%s%d", submissionsSheet, submissionsStatusCol, rowNum)
	if err := r.store.UpdateRange(ctx, r.cfg.ContentSpreadsheetID, cellRange, [][]string{{status}}); err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	r.log.Info().Str("id", id).Str("status", status).Msg("Submission status updated")
	return nil
}
