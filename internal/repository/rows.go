package repository

import (
	"strconv"

	"github.com/techpolicywire/content-api/internal/models"
)

// Column layouts per sheet. Row slices coming back from the store are
// ragged (trailing empty cells are omitted), so every accessor goes through
// cellAt and rows are padded to full width before writing.
//
//	Content sheets A:G   id, dateAdded, title, url, source, addedBy, status
//	Research      A:H    id, dateAdded, title, url, source, authors, institutions, status
//	Submissions   A:J    id, dateSubmitted, section, title, url, source, notes,
//	                     submitterEmail, status, newsletterSignup

const (
	contentWidth    = 7
	researchWidth   = 8
	submissionWidth = 10
)

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func contentFromRow(row []string) models.ContentItem {
	item := models.ContentItem{
		ID:        cellAt(row, 0),
		DateAdded: cellAt(row, 1),
		Title:     cellAt(row, 2),
		URL:       cellAt(row, 3),
		Source:    cellAt(row, 4),
		AddedBy:   cellAt(row, 5),
		Status:    cellAt(row, 6),
	}
	if item.Status == "" {
		item.Status = models.StatusActive
	}
	return item
}

func contentToRow(item *models.ContentItem) []string {
	return []string{
		item.ID,
		item.DateAdded,
		item.Title,
		item.URL,
		item.Source,
		item.AddedBy,
		item.Status,
	}
}

func researchFromRow(row []string) models.ContentItem {
	item := models.ContentItem{
		ID:           cellAt(row, 0),
		DateAdded:    cellAt(row, 1),
		Title:        cellAt(row, 2),
		URL:          cellAt(row, 3),
		Source:       cellAt(row, 4),
		Authors:      cellAt(row, 5),
		Institutions: cellAt(row, 6),
		Status:       cellAt(row, 7),
	}
	if item.Status == "" {
		item.Status = models.StatusActive
	}
	return item
}

func researchToRow(item *models.ContentItem) []string {
	return []string{
		item.ID,
		item.DateAdded,
		item.Title,
		item.URL,
		item.Source,
		item.Authors,
		item.Institutions,
		item.Status,
	}
}

func submissionFromRow(row []string) models.Submission {
	signup, _ := strconv.ParseBool(cellAt(row, 9))
	sub := models.Submission{
		ID:               cellAt(row, 0),
		DateSubmitted:    cellAt(row, 1),
		Section:          cellAt(row, 2),
		Title:            cellAt(row, 3),
		URL:              cellAt(row, 4),
		Source:           cellAt(row, 5),
		Notes:            cellAt(row, 6),
		SubmitterEmail:   cellAt(row, 7),
		Status:           cellAt(row, 8),
		NewsletterSignup: signup,
	}
	if sub.Status == "" {
		sub.Status = models.SubmissionPending
	}
	return sub
}

func submissionToRow(sub *models.Submission) []string {
	return []string{
		sub.ID,
		sub.DateSubmitted,
		sub.Section,
		sub.Title,
		sub.URL,
		sub.Source,
		sub.Notes,
		sub.SubmitterEmail,
		sub.Status,
		strconv.FormatBool(sub.NewsletterSignup),
	}
}
