package model

import "time"

// College is the full document stored for a partner college. Edits replace
// the whole document; there is no partial-field patching.
type College struct {
	Slug        string `json:"slug" validate:"required,max=120"`
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Country     string `json:"country" validate:"required,min=2,max=100"`
	City        string `json:"city" validate:"omitempty,max=100"`
	State       string `json:"state" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty,max=5000"`

	EstablishedYear int      `json:"establishedYear" validate:"omitempty,gte=1000,lte=2100"`
	Programs        []string `json:"programs" validate:"omitempty,dive,max=255"`
	Intakes         []string `json:"intakes" validate:"omitempty,dive,max=100"`

	Rankings   []CollegeRanking `json:"rankings" validate:"omitempty,dive"`
	Admissions CollegeAdmission `json:"admissions"`

	Logo        string   `json:"logo" validate:"omitempty,url"`
	BannerImage string   `json:"bannerImage" validate:"omitempty,url"`
	Gallery     []string `json:"gallery" validate:"omitempty,dive,url"`

	FAQs []FAQ `json:"faqs" validate:"omitempty,dive"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// CollegeRanking is a single ranking entry (e.g. QS World 2025 #42).
type CollegeRanking struct {
	Source string `json:"source" validate:"required,max=100"`
	Year   int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Rank   string `json:"rank" validate:"required,max=50"`
}

// CollegeAdmission holds the admissions summary shown on the detail page.
type CollegeAdmission struct {
	Requirements   []string `json:"requirements" validate:"omitempty,dive,max=500"`
	Deadlines      []string `json:"deadlines" validate:"omitempty,dive,max=200"`
	TuitionFee     string   `json:"tuitionFee" validate:"omitempty,max=200"`
	AcceptanceRate string   `json:"acceptanceRate" validate:"omitempty,max=50"`
}

// FAQ is a question/answer pair rendered on public pages.
type FAQ struct {
	Question string `json:"question" validate:"required,max=500"`
	Answer   string `json:"answer" validate:"required,max=5000"`
}

// ImageURLs returns every image URL embedded in the document. Used to build
// the referenced set for the orphan image sweep.
func (c *College) ImageURLs() []string {
	urls := make([]string, 0, 2+len(c.Gallery))
	if c.Logo != "" {
		urls = append(urls, c.Logo)
	}
	if c.BannerImage != "" {
		urls = append(urls, c.BannerImage)
	}
	urls = append(urls, c.Gallery...)
	return urls
}
