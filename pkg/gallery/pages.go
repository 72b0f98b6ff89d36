package gallery

import (
	"portfolio-gallery/pkg/models"
)

// AllKey is the conventional key of the tab that shows everything
const AllKey = "all"

// Page is a service page: a slice of the catalog with its own tabs
type Page struct {
	Name        string
	Title       string
	Description string

	// Scope selects the entries the page works on. An entry is in scope when
	// any spec matches; an empty scope takes the whole catalog.
	Scope []CategorySpec
	Tabs  []CategorySpec
}

// Catalog returns the entries of all that fall in the page scope
func (p Page) Catalog(all []models.Entry) []models.Entry {
	if len(p.Scope) == 0 {
		return all
	}
	var out []models.Entry
	for _, e := range all {
		for _, s := range p.Scope {
			if s.Matches(e) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Categories compiles the page tabs
func (p Page) Categories() []Category {
	return Compile(p.Tabs)
}

func sectionTab(s models.Section, description string) CategorySpec {
	return CategorySpec{
		Key:         string(s),
		Label:       s.Label(),
		Description: description,
		Sections:    []models.Section{s},
	}
}

var allTab = CategorySpec{Key: AllKey, Label: "All Work"}

// Pages are the built in service pages, in menu order
var Pages = []Page{
	{
		Name:        "portfolio",
		Title:       "Portfolio",
		Description: "A showcase of photography, video production and wedding work.",
		Tabs: []CategorySpec{
			allTab,
			{
				Key:         string(models.CategoryPhotography),
				Label:       models.CategoryPhotography.Label(),
				Description: "Portraits, headshots and branded photoshoots.",
				Categories:  []models.Category{models.CategoryPhotography},
			},
			{
				Key:         string(models.CategoryVideoProduction),
				Label:       models.CategoryVideoProduction.Label(),
				Description: "Marketing films, training content and event coverage.",
				Categories:  []models.Category{models.CategoryVideoProduction},
			},
			{
				Key:         string(models.CategoryWeddings),
				Label:       models.CategoryWeddings.Label(),
				Description: "Wedding days captured in photo and film.",
				Categories:  []models.Category{models.CategoryWeddings},
			},
		},
	},
	{
		Name:        "wedding",
		Title:       "Wedding Photo & Video",
		Description: "Complete wedding day coverage.",
		Scope: []CategorySpec{
			{Categories: []models.Category{models.CategoryWeddings}},
			{
				Categories: []models.Category{models.CategoryPhotography},
				Sections:   []models.Section{models.SectionWeddingPhotoVideo},
			},
		},
		Tabs: []CategorySpec{
			allTab,
			{
				Key:         "photography",
				Label:       "Photography",
				Description: "Wedding photo sets.",
				Kinds:       []models.MediaKind{models.KindPhoto, models.KindHybrid},
			},
			{
				Key:         "videography",
				Label:       "Videography",
				Description: "Wedding films and highlight reels.",
				Kinds:       []models.MediaKind{models.KindVideo, models.KindHybrid},
			},
		},
	},
	{
		Name:        "portrait",
		Title:       "Portrait Photography",
		Description: "Families, seniors, pets and personal milestones.",
		Scope: []CategorySpec{{
			Categories: []models.Category{models.CategoryPhotography},
			Sections: []models.Section{
				models.SectionFamilyPortraits,
				models.SectionSeniorYearbook,
				models.SectionPetPhotos,
				models.SectionPersonalEvents,
				models.SectionCorporateHeadshots,
			},
		}},
		Tabs: []CategorySpec{
			allTab,
			sectionTab(models.SectionFamilyPortraits, "Relaxed sessions for the whole family."),
			sectionTab(models.SectionSeniorYearbook, "Senior and yearbook portraits."),
			sectionTab(models.SectionPetPhotos, "Portraits of the four-legged family."),
			sectionTab(models.SectionPersonalEvents, "Birthdays, showers and celebrations."),
			sectionTab(models.SectionCorporateHeadshots, "Professional headshots."),
		},
	},
	{
		Name:        "commercial",
		Title:       "Commercial",
		Description: "Photo and video for brands, listings and teams.",
		Scope: []CategorySpec{
			{
				Categories: []models.Category{models.CategoryPhotography},
				Sections: []models.Section{
					models.SectionRealEstate,
					models.SectionCommercial,
					models.SectionCorporateHeadshots,
					models.SectionBrandedPhotoshoots,
					models.SectionCorporateEvents,
				},
			},
			{
				Categories: []models.Category{models.CategoryVideoProduction},
				Sections: []models.Section{
					models.SectionBrandedMarketingVideo,
					models.SectionTrainingVideos,
					models.SectionCorporateEvents,
				},
			},
		},
		Tabs: []CategorySpec{
			allTab,
			sectionTab(models.SectionBrandedPhotoshoots, "On-brand lifestyle and product imagery."),
			sectionTab(models.SectionCorporateHeadshots, "Consistent headshots for teams."),
			sectionTab(models.SectionRealEstate, "Listing photography."),
			sectionTab(models.SectionCommercial, "Commercial spaces and products."),
			sectionTab(models.SectionCorporateEvents, "Conferences and company events."),
			sectionTab(models.SectionBrandedMarketingVideo, "Stories that sell the brand."),
			sectionTab(models.SectionTrainingVideos, "Onboarding and training content."),
		},
	},
	{
		Name:        "videography",
		Title:       "Video Production",
		Description: "Marketing, training, podcasts and event films.",
		Scope:       []CategorySpec{{Categories: []models.Category{models.CategoryVideoProduction}}},
		Tabs: []CategorySpec{
			allTab,
			sectionTab(models.SectionBrandedMarketingVideo, "Stories that sell the brand."),
			sectionTab(models.SectionTrainingVideos, "Onboarding and training content."),
			sectionTab(models.SectionPodcasts, "Multi-camera podcast production."),
			sectionTab(models.SectionCorporateEvents, "Conferences and company events."),
			sectionTab(models.SectionPersonalEvents, "Celebrations on film."),
		},
	},
}

// FindPage looks a page up by name
func FindPage(name string) (Page, bool) {
	for _, p := range Pages {
		if p.Name == name {
			return p, true
		}
	}
	return Page{}, false
}
