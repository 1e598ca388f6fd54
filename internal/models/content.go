package models

// Section identifies a content category backed by one sheet.
type Section string

const (
	SectionNews      Section = "news"
	SectionIdeas     Section = "ideas"
	SectionReports   Section = "reports"
	SectionDocuments Section = "documents"
	SectionPodcasts  Section = "podcasts"
	SectionResearch  Section = "research"
)

// AllSections lists every valid section in display order.
var AllSections = []Section{
	SectionNews,
	SectionIdeas,
	SectionReports,
	SectionResearch,
	SectionDocuments,
	SectionPodcasts,
}

// ValidSections defines the fixed section registry
var ValidSections = map[Section]bool{
	SectionNews:      true,
	SectionIdeas:     true,
	SectionReports:   true,
	SectionDocuments: true,
	SectionPodcasts:  true,
	SectionResearch:  true,
}

// ParseSection validates a raw section name against the registry.
func ParseSection(s string) (Section, error) {
	section := Section(s)
	if !ValidSections[section] {
		return "", ErrInvalidSection
	}
	return section, nil
}

// Item statuses. Rows are never removed; soft delete flips the status
// column. "archived" is a legacy marker still present in older rows.
const (
	StatusActive   = "active"
	StatusDeleted  = "deleted"
	StatusArchived = "archived"
)

// ContentItem represents one row in a content or research sheet.
// Authors and Institutions are populated only for the research section.
type ContentItem struct {
	ID           string `json:"id"`
	DateAdded    string `json:"dateAdded"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Source       string `json:"source,omitempty"`
	AddedBy      string `json:"addedBy,omitempty"`
	Authors      string `json:"authors,omitempty"`
	Institutions string `json:"institutions,omitempty"`
	Status       string `json:"status"`
}

// Deleted reports whether the item has been soft-deleted.
func (i *ContentItem) Deleted() bool {
	return i.Status == StatusDeleted || i.Status == StatusArchived
}

// ContentRequest carries caller-supplied fields for add/update operations.
// Empty fields are left untouched on update.
type ContentRequest struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Source       string `json:"source"`
	AddedBy      string `json:"addedBy"`
	Authors      string `json:"authors"`
	Institutions string `json:"institutions"`
	DateAdded    string `json:"dateAdded"`
	Status       string `json:"status"`
}
