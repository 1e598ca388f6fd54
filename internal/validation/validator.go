package validation

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/techpolicywire/content-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ContentRequest checks the required fields for adding content.
func ContentRequest(req *models.ContentRequest) *models.ValidationError {
	if strings.TrimSpace(req.Title) == "" {
		return &models.ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(req.URL) == "" {
		return &models.ValidationError{Field: "url", Message: "url is required"}
	}
	if err := validURL(req.URL); err != nil {
		return err
	}
	return nil
}

// SubmissionRequest checks the public intake payload. The honeypot field is
// deliberately not validated here; the workflow inspects it first.
func SubmissionRequest(req *models.SubmissionRequest) *models.ValidationError {
	if _, err := models.ParseSection(req.Section); err != nil {
		return &models.ValidationError{Field: "section", Message: "unknown section"}
	}
	if strings.TrimSpace(req.Title) == "" {
		return &models.ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(req.URL) == "" {
		return &models.ValidationError{Field: "url", Message: "url is required"}
	}
	if err := validURL(req.URL); err != nil {
		return err
	}
	if req.SubmitterEmail != "" && !emailRegex.MatchString(req.SubmitterEmail) {
		return &models.ValidationError{Field: "submitterEmail", Message: "invalid email address"}
	}
	return nil
}

func validURL(raw string) *models.ValidationError {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &models.ValidationError{Field: "url", Message: "url must be a valid http(s) URL"}
	}
	return nil
}
