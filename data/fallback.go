// Package data bundles the static seed records served by the fallback read
// path when the primary store is cold or unreachable. The records mirror
// what admins publish; they are intentionally minimal and may be stale.
package data

import "github.com/studybridge/consultancy-api/model"

// FallbackColleges are the built-in college records.
func FallbackColleges() map[string]model.College {
	return map[string]model.College{
		"university-of-melbourne": {
			Slug:        "university-of-melbourne",
			Name:        "University of Melbourne",
			Country:     "Australia",
			City:        "Melbourne",
			Description: "Australia's leading research university, ranked among the global top 20.",
			Programs:    []string{"Business", "Engineering", "Medicine", "Arts"},
			Intakes:     []string{"February", "July"},
		},
		"university-of-toronto": {
			Slug:        "university-of-toronto",
			Name:        "University of Toronto",
			Country:     "Canada",
			City:        "Toronto",
			Description: "Canada's top-ranked university with three campuses across the Greater Toronto Area.",
			Programs:    []string{"Computer Science", "Commerce", "Life Sciences"},
			Intakes:     []string{"September", "January"},
		},
	}
}

// FallbackStudyPages are the built-in study-in-country landing pages.
func FallbackStudyPages() map[string]model.StudyInCountryData {
	return map[string]model.StudyInCountryData{
		"study-in-australia": {
			Slug:    "study-in-australia",
			Country: "Australia",
			Hero: model.Hero{
				Title:    "Study in Australia",
				Subtitle: "World-class universities, post-study work rights, and a welcoming culture.",
				CTAText:  "Get Free Counselling",
			},
			Overview: model.CountryOverview{
				Summary: "Australia hosts seven of the world's top 100 universities and offers up to four years of post-study work visas for international graduates.",
				Highlights: []string{
					"Post-study work visa up to 4 years",
					"Part-time work rights while studying",
					"Pathway to permanent residency",
				},
			},
			Costs: model.CountryCosts{
				Currency:     "AUD",
				TuitionRange: "25,000 - 45,000 per year",
				LivingRange:  "21,000 - 25,000 per year",
			},
			IsActive: true,
		},
		"study-in-canada": {
			Slug:    "study-in-canada",
			Country: "Canada",
			Hero: model.Hero{
				Title:    "Study in Canada",
				Subtitle: "Affordable education with generous post-graduation work permits.",
				CTAText:  "Get Free Counselling",
			},
			Overview: model.CountryOverview{
				Summary: "Canada combines globally recognised degrees with a post-graduation work permit of up to three years and clear immigration pathways.",
				Highlights: []string{
					"Post-graduation work permit up to 3 years",
					"Lower tuition than the US and UK",
					"Express Entry immigration pathway",
				},
			},
			Costs: model.CountryCosts{
				Currency:     "CAD",
				TuitionRange: "15,000 - 35,000 per year",
				LivingRange:  "12,000 - 18,000 per year",
			},
			IsActive: true,
		},
	}
}

// FallbackSEO are the built-in SEO records for the main public pages.
func FallbackSEO() map[string]model.SEOData {
	return map[string]model.SEOData{
		"home": {
			Slug:        "home",
			Title:       "StudyBridge | Overseas Education Consultants",
			Description: "Expert counselling for studying abroad: university selection, applications, visas, and scholarships.",
			Keywords:    []string{"study abroad", "overseas education", "education consultants"},
		},
	}
}
