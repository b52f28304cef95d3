package model

import "time"

// StudyInCountryData is the landing-page document for a destination country.
// IsActive is a publication flag: an inactive record stays in storage and in
// the admin surface but is excluded from public serving. This is distinct
// from deletion.
type StudyInCountryData struct {
	Slug    string `json:"slug" validate:"required,max=120"`
	Country string `json:"country" validate:"required,min=2,max=100"`

	Hero         Hero              `json:"hero"`
	Overview     CountryOverview   `json:"overview"`
	Requirements []string          `json:"requirements" validate:"omitempty,dive,max=500"`
	Costs        CountryCosts      `json:"costs"`
	Testimonials []Testimonial     `json:"testimonials" validate:"omitempty,dive"`
	FAQs         []FAQ             `json:"faqs" validate:"omitempty,dive"`
	SEO          StudyInCountrySEO `json:"seo"`

	IsActive    bool      `json:"isActive"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ImageURLs returns every image URL embedded in the document.
func (d *StudyInCountryData) ImageURLs() []string {
	urls := make([]string, 0, 1+len(d.Testimonials))
	if d.Hero.Image != "" {
		urls = append(urls, d.Hero.Image)
	}
	for _, t := range d.Testimonials {
		if t.Photo != "" {
			urls = append(urls, t.Photo)
		}
	}
	return urls
}

// Hero is the top banner block of a landing page.
type Hero struct {
	Title    string `json:"title" validate:"omitempty,max=200"`
	Subtitle string `json:"subtitle" validate:"omitempty,max=500"`
	Image    string `json:"image" validate:"omitempty,url"`
	CTAText  string `json:"ctaText" validate:"omitempty,max=100"`
}

// CountryOverview is the introductory content block.
type CountryOverview struct {
	Summary    string   `json:"summary" validate:"omitempty,max=5000"`
	Highlights []string `json:"highlights" validate:"omitempty,dive,max=300"`
}

// CountryCosts lists indicative expenses shown on the landing page.
type CountryCosts struct {
	Currency     string `json:"currency" validate:"omitempty,max=10"`
	TuitionRange string `json:"tuitionRange" validate:"omitempty,max=100"`
	LivingRange  string `json:"livingRange" validate:"omitempty,max=100"`
	VisaFee      string `json:"visaFee" validate:"omitempty,max=100"`
	HealthCover  string `json:"healthCover" validate:"omitempty,max=100"`
}

// Testimonial is a student quote displayed on the landing page.
type Testimonial struct {
	Name    string `json:"name" validate:"required,max=100"`
	Program string `json:"program" validate:"omitempty,max=200"`
	Quote   string `json:"quote" validate:"required,max=2000"`
	Photo   string `json:"photo" validate:"omitempty,url"`
}

// StudyInCountrySEO is the SEO sub-block embedded in the landing page
// document (separate from the standalone SEOData family).
type StudyInCountrySEO struct {
	Title       string   `json:"title" validate:"omitempty,max=70"`
	Description string   `json:"description" validate:"omitempty,max=160"`
	Keywords    []string `json:"keywords" validate:"omitempty,dive,max=100"`
}
