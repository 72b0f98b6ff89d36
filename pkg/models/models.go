package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MediaKind describes which media an entry carries
type MediaKind string

const (
	KindPhoto  MediaKind = "photo"
	KindVideo  MediaKind = "video"
	KindHybrid MediaKind = "hybrid"
)

// Category is the top-level grouping of catalog entries
type Category string

const (
	CategoryPhotography     Category = "photography"
	CategoryVideoProduction Category = "video-production"
	CategoryWeddings        Category = "weddings"
)

// Categories lists every known category in display order
var Categories = []Category{CategoryPhotography, CategoryVideoProduction, CategoryWeddings}

// Label returns the human readable name of the category
func (c Category) Label() string {
	switch c {
	case CategoryPhotography:
		return "Photography"
	case CategoryVideoProduction:
		return "Video Production"
	case CategoryWeddings:
		return "Weddings"
	}
	return string(c)
}

// Section is the finer grained service line an entry belongs to
type Section string

const (
	SectionFamilyPortraits       Section = "family-portraits"
	SectionSeniorYearbook        Section = "senior-yearbook"
	SectionCorporateHeadshots    Section = "corporate-headshots"
	SectionBrandedPhotoshoots    Section = "branded-photoshoots"
	SectionPetPhotos             Section = "pet-photos"
	SectionBrandedMarketingVideo Section = "branded-marketing-video"
	SectionTrainingVideos        Section = "training-videos"
	SectionPodcasts              Section = "podcasts"
	SectionCorporateEvents       Section = "corporate-events"
	SectionPersonalEvents        Section = "personal-events"
	SectionWeddingPhotoVideo     Section = "wedding-photo-video"
	SectionRealEstate            Section = "real-estate"
	SectionCommercial            Section = "commercial"
)

var sectionLabels = map[Section]string{
	SectionFamilyPortraits:       "Family Portraits",
	SectionSeniorYearbook:        "Senior Yearbook",
	SectionCorporateHeadshots:    "Corporate Headshots",
	SectionBrandedPhotoshoots:    "Branded Photoshoots",
	SectionPetPhotos:             "Pet Photos",
	SectionBrandedMarketingVideo: "Branded Marketing Video",
	SectionTrainingVideos:        "Training Videos",
	SectionPodcasts:              "Podcasts",
	SectionCorporateEvents:       "Corporate Events",
	SectionPersonalEvents:        "Personal Events",
	SectionWeddingPhotoVideo:     "Wedding Photo & Video",
	SectionRealEstate:            "Real Estate",
	SectionCommercial:            "Commercial",
}

// Label returns the human readable name of the section
func (s Section) Label() string {
	if label, ok := sectionLabels[s]; ok {
		return label
	}
	return string(s)
}

// VideoRef points at a video hosted by a third-party player
type VideoRef struct {
	URL     string `json:"url"`
	EmbedID string `json:"embedId"`
}

// Entry represents one catalog work item: a shoot, film or event
type Entry struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Section     Section   `json:"section"`
	MediaKind   MediaKind `json:"mediaType"`
	Thumbnail   string    `json:"thumbnailUrl"`
	PhotoURLs   []string  `json:"mediaUrls,omitempty"`
	Video       *VideoRef `json:"-"`
}

// entryJSON mirrors the flat content-store format where the video reference
// is spread over videoUrl and videoEmbedId.
type entryJSON struct {
	entryAlias
	VideoURL     string `json:"videoUrl,omitempty"`
	VideoEmbedID string `json:"videoEmbedId,omitempty"`
}

type entryAlias Entry

// MarshalJSON writes the entry in the flat content-store format
func (e Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{entryAlias: entryAlias(e)}
	if e.Video != nil {
		out.VideoURL = e.Video.URL
		out.VideoEmbedID = e.Video.EmbedID
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat content-store format
func (e *Entry) UnmarshalJSON(data []byte) error {
	var in entryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = Entry(in.entryAlias)
	e.Video = nil
	if in.VideoURL != "" || in.VideoEmbedID != "" {
		e.Video = &VideoRef{URL: in.VideoURL, EmbedID: in.VideoEmbedID}
	}
	return nil
}

// ErrInvalidEntry is wrapped by every validation failure
var ErrInvalidEntry = errors.New("invalid entry")

// Validate checks the media invariants of the entry. All problems are
// reported together.
func (e Entry) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w %d: %s", ErrInvalidEntry, e.ID, fmt.Sprintf(format, args...)))
	}

	switch e.MediaKind {
	case KindPhoto:
		if len(e.PhotoURLs) == 0 {
			fail("photo entry has no photos")
		}
		if e.Video != nil {
			fail("photo entry must not carry a video")
		}
	case KindVideo:
		if e.Video == nil {
			fail("video entry has no video reference")
		}
	case KindHybrid:
		if len(e.PhotoURLs) == 0 {
			fail("hybrid entry has no photos")
		}
		if e.Video == nil {
			fail("hybrid entry has no video reference")
		}
	default:
		fail("unknown media kind %q", e.MediaKind)
	}

	if e.Video != nil && e.Video.EmbedID == "" {
		fail("video reference has no embed id")
	}

	return errors.Join(errs...)
}
