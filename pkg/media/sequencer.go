// Package media turns a catalog entry into an ordered playlist of displayable
// items and tracks a position within it.
package media

import (
	"fmt"

	"portfolio-gallery/pkg/models"
)

// Type distinguishes photos from embedded videos
type Type string

const (
	TypePhoto Type = "photo"
	TypeVideo Type = "video"
)

// VideoPlaceholder is the thumbnail shown for video items in the strip
const VideoPlaceholder = "/placeholders/video-placeholder.svg"

// Item is a single displayable unit derived from an entry
type Item struct {
	Type         Type   `json:"type"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	EmbedID      string `json:"embedId,omitempty"`
}

// Build returns the playlist for an entry. Photos come first in their
// declared order; a hybrid entry appends its video last. A video entry yields
// exactly one item and ignores any photo URLs.
func Build(entry models.Entry) []Item {
	var items []Item

	switch entry.MediaKind {
	case models.KindVideo:
		if entry.Video != nil {
			items = append(items, videoItem(*entry.Video))
		}
	case models.KindPhoto, models.KindHybrid:
		items = make([]Item, 0, len(entry.PhotoURLs)+1)
		for _, url := range entry.PhotoURLs {
			items = append(items, Item{
				Type:         TypePhoto,
				URL:          url,
				ThumbnailURL: url,
			})
		}
		if entry.MediaKind == models.KindHybrid && entry.Video != nil {
			items = append(items, videoItem(*entry.Video))
		}
	}

	return items
}

func videoItem(ref models.VideoRef) Item {
	return Item{
		Type:         TypeVideo,
		URL:          ref.URL,
		ThumbnailURL: VideoPlaceholder,
		EmbedID:      ref.EmbedID,
	}
}

// Sequencer holds a playlist and a clamped cursor into it.
// It is not safe for concurrent use.
type Sequencer struct {
	items []Item
	index int
}

// New builds a sequencer for the entry positioned at start (clamped)
func New(entry models.Entry, start int) *Sequencer {
	s := &Sequencer{items: Build(entry)}
	s.Jump(start)
	return s
}

// Len returns the number of items in the playlist
func (s *Sequencer) Len() int {
	return len(s.items)
}

// Items returns a copy of the playlist
func (s *Sequencer) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Index returns the current position. It is 0 for an empty playlist.
func (s *Sequencer) Index() int {
	return s.index
}

// At returns the item at index, or false when the index is out of range
func (s *Sequencer) At(index int) (Item, bool) {
	if index < 0 || index >= len(s.items) {
		return Item{}, false
	}
	return s.items[index], true
}

// Current returns the item under the cursor
func (s *Sequencer) Current() (Item, bool) {
	return s.At(s.index)
}

// Next advances by one, stopping at the last item
func (s *Sequencer) Next() {
	s.Jump(s.index + 1)
}

// Prev steps back by one, stopping at the first item
func (s *Sequencer) Prev() {
	s.Jump(s.index - 1)
}

// Jump moves the cursor to index, clamped into the playlist
func (s *Sequencer) Jump(index int) {
	s.index = clamp(index, 0, len(s.items)-1)
}

// CanPrev reports whether Prev would move the cursor
func (s *Sequencer) CanPrev() bool {
	return len(s.items) > 0 && s.index > 0
}

// CanNext reports whether Next would move the cursor
func (s *Sequencer) CanNext() bool {
	return s.index < len(s.items)-1
}

// HasNavigation reports whether there is more than one item to move between
func (s *Sequencer) HasNavigation() bool {
	return len(s.items) > 1
}

// Counter renders the position as "n of total", or "" for an empty playlist
func (s *Sequencer) Counter() string {
	if len(s.items) == 0 {
		return ""
	}
	return fmt.Sprintf("%d of %d", s.index+1, len(s.items))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
