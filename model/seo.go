package model

import "time"

// SEOData is the per-page SEO record. The slug may contain path segments
// (e.g. "blog/ielts-tips") because it mirrors the public page path.
// Creation and update share the same write path (upsert).
type SEOData struct {
	Slug        string   `json:"slug" validate:"required,max=255"`
	Title       string   `json:"title" validate:"required,max=70"`
	Description string   `json:"description" validate:"required,max=160"`
	Keywords    []string `json:"keywords" validate:"omitempty,dive,max=100"`

	CanonicalURL  string `json:"canonicalUrl" validate:"omitempty,url"`
	OGTitle       string `json:"ogTitle" validate:"omitempty,max=100"`
	OGDescription string `json:"ogDescription" validate:"omitempty,max=300"`
	OGImage       string `json:"ogImage" validate:"omitempty,url"`

	LastUpdated time.Time `json:"lastUpdated"`
	UpdatedBy   string    `json:"updatedBy" validate:"omitempty,max=100"`
}
