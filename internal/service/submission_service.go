package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/ratelimit"
	"github.com/techpolicywire/content-api/internal/repository"
	"github.com/techpolicywire/content-api/internal/validation"
)

// submissionService is the concrete implementation of SubmissionService
type submissionService struct {
	subs    repository.SubmissionRepository
	content repository.ContentRepository
	limiter *ratelimit.Limiter
	log     zerolog.Logger
}

func newSubmissionService(subs repository.SubmissionRepository, content repository.ContentRepository, limiter *ratelimit.Limiter, log zerolog.Logger) *submissionService {
	return &submissionService{
		subs:    subs,
		content: content,
		limiter: limiter,
		log:     log.With().Str("service", "submission").Logger(),
	}
}

// Submit handles public intake. Honeypot hits get a normal-looking receipt
// and are discarded without touching the store or the rate limiter, so bots
// learn nothing from the response.
func (s *submissionService) Submit(ctx context.Context, clientIP string, req *models.SubmissionRequest) (*models.SubmissionReceipt, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	if req.Website != "" {
		s.log.Info().Str("client_ip", clientIP).Msg("Honeypot triggered, discarding submission")
		return &models.SubmissionReceipt{
			Success:       true,
			ID:            uuid.NewString(),
			DateSubmitted: now,
		}, nil
	}

	if !s.limiter.Allow(clientIP) {
		return nil, models.ErrRateLimited
	}

	if verr := validation.SubmissionRequest(req); verr != nil {
		return nil, verr
	}

	sub := &models.Submission{
		ID:               uuid.NewString(),
		DateSubmitted:    now,
		Section:          req.Section,
		Title:            req.Title,
		URL:              req.URL,
		Source:           req.Source,
		Notes:            req.Notes,
		SubmitterEmail:   req.SubmitterEmail,
		Status:           models.SubmissionPending,
		NewsletterSignup: req.NewsletterSignup,
	}

	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	return &models.SubmissionReceipt{
		Success:       true,
		ID:            sub.ID,
		DateSubmitted: sub.DateSubmitted,
	}, nil
}

// Pending returns the moderation queue.
func (s *submissionService) Pending(ctx context.Context) ([]models.Submission, error) {
	return s.subs.Pending(ctx)
}

// Approve publishes a pending submission into its target section and marks
// it approved. The two writes are not transactional: if the content add
// lands but the status flip fails, the submission stays visibly pending and
// a retried approve publishes a duplicate.
func (s *submissionService) Approve(ctx context.Context, id string) (*models.Submission, error) {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubmissionPending {
		return nil, models.ErrNotFound
	}

	section, err := models.ParseSection(sub.Section)
	if err != nil {
		return nil, err
	}

	req := &models.ContentRequest{
		Title:   sub.Title,
		URL:     sub.URL,
		Source:  sub.Source,
		AddedBy: "submission",
	}

	if _, err := s.content.Add(ctx, section, req); err != nil {
		return nil, err
	}

	if err := s.subs.SetStatus(ctx, id, models.SubmissionApproved); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("Content published but status flip failed; submission remains pending")
		return nil, err
	}

	s.log.Info().Str("id", id).Str("section", sub.Section).Msg("Submission approved")
	sub.Status = models.SubmissionApproved
	return sub, nil
}

// Dismiss marks a pending submission dismissed.
func (s *submissionService) Dismiss(ctx context.Context, id string) (*models.Submission, error) {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubmissionPending {
		return nil, models.ErrNotFound
	}

	if err := s.subs.SetStatus(ctx, id, models.SubmissionDismissed); err != nil {
		return nil, err
	}

	s.log.Info().Str("id", id).Msg("Submission dismissed")
	sub.Status = models.SubmissionDismissed
	return sub, nil
}
