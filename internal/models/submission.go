package models

// Submission statuses. A submission is created pending and transitions to
// approved or dismissed exactly once; both are terminal.
const (
	SubmissionPending   = "pending"
	SubmissionApproved  = "approved"
	SubmissionDismissed = "dismissed"
)

// Submission represents one row in the submissions sheet.
type Submission struct {
	ID               string `json:"id"`
	DateSubmitted    string `json:"dateSubmitted"`
	Section          string `json:"section"`
	Title            string `json:"title"`
	URL              string `json:"url"`
	Source           string `json:"source,omitempty"`
	Notes            string `json:"notes,omitempty"`
	SubmitterEmail   string `json:"submitterEmail,omitempty"`
	Status           string `json:"status"`
	NewsletterSignup bool   `json:"newsletterSignup"`
}

// SubmissionRequest is the public intake payload. Website is the honeypot
// field: it is hidden in the form, so any non-empty value marks a bot.
type SubmissionRequest struct {
	Section          string `json:"section"`
	Title            string `json:"title"`
	URL              string `json:"url"`
	Source           string `json:"source"`
	Notes            string `json:"notes"`
	SubmitterEmail   string `json:"submitterEmail"`
	NewsletterSignup bool   `json:"newsletterSignup"`
	Website          string `json:"website"`
}

// SubmissionReceipt is returned to the submitter. Honeypot submissions get
// the same shape so bots cannot tell they were discarded.
type SubmissionReceipt struct {
	Success       bool   `json:"success"`
	ID            string `json:"id"`
	DateSubmitted string `json:"dateSubmitted"`
}
