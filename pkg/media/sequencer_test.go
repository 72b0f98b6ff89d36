package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-gallery/pkg/models"
)

func hybridEntry() models.Entry {
	return models.Entry{
		ID:        31,
		Title:     "Lakeside Wedding",
		MediaKind: models.KindHybrid,
		PhotoURLs: []string{"/w/1.webp", "/w/2.webp", "/w/3.webp"},
		Video:     &models.VideoRef{URL: "https://vimeo.com/655932397", EmbedID: "655932397"},
	}
}

func TestBuild_HybridAppendsVideoLast(t *testing.T) {
	e := hybridEntry()
	items := Build(e)

	require.Len(t, items, len(e.PhotoURLs)+1)
	for i, url := range e.PhotoURLs {
		assert.Equal(t, TypePhoto, items[i].Type)
		assert.Equal(t, url, items[i].URL)
		assert.Equal(t, url, items[i].ThumbnailURL)
	}
	last := items[len(items)-1]
	assert.Equal(t, TypeVideo, last.Type)
	assert.Equal(t, "655932397", last.EmbedID)
	assert.Equal(t, VideoPlaceholder, last.ThumbnailURL)
}

func TestBuild_PhotoOnly(t *testing.T) {
	e := models.Entry{
		ID:        1,
		MediaKind: models.KindPhoto,
		PhotoURLs: []string{"/a.webp", "/b.webp"},
	}
	items := Build(e)

	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, TypePhoto, it.Type)
	}
}

func TestBuild_VideoIgnoresPhotos(t *testing.T) {
	e := models.Entry{
		ID:        12,
		MediaKind: models.KindVideo,
		PhotoURLs: []string{"/placeholder.svg", "/placeholder.svg"},
		Video:     &models.VideoRef{URL: "https://vimeo.com/123", EmbedID: "123"},
	}
	s := New(e, 0)

	require.Equal(t, 1, s.Len())
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, TypeVideo, cur.Type)
	assert.Equal(t, "123", cur.EmbedID)

	s.Next()
	assert.Equal(t, 0, s.Index())
	s.Prev()
	assert.Equal(t, 0, s.Index())
	assert.False(t, s.HasNavigation())
}

func TestBuild_EmptyPlaylists(t *testing.T) {
	tests := []struct {
		name  string
		entry models.Entry
	}{
		{"photo without photos", models.Entry{MediaKind: models.KindPhoto}},
		{"video without reference", models.Entry{MediaKind: models.KindVideo}},
		{"unknown kind", models.Entry{MediaKind: "slideshow", PhotoURLs: []string{"/x.webp"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.entry, 3)
			assert.Equal(t, 0, s.Len())

			_, ok := s.Current()
			assert.False(t, ok)

			s.Next()
			s.Prev()
			s.Jump(5)
			assert.Equal(t, 0, s.Index())
			assert.False(t, s.HasNavigation())
			assert.False(t, s.CanPrev())
			assert.False(t, s.CanNext())
			assert.Empty(t, s.Counter())
		})
	}
}

func TestSequencer_ClampsAtEdges(t *testing.T) {
	s := New(hybridEntry(), 0)
	last := s.Len() - 1

	s.Prev()
	assert.Equal(t, 0, s.Index(), "prev at first item is a no-op")

	s.Jump(last)
	s.Next()
	assert.Equal(t, last, s.Index(), "next at last item is a no-op")
	assert.False(t, s.CanNext())
	assert.True(t, s.CanPrev())
}

func TestSequencer_JumpClamps(t *testing.T) {
	s := New(hybridEntry(), 0)

	s.Jump(-4)
	assert.Equal(t, 0, s.Index())
	s.Jump(99)
	assert.Equal(t, s.Len()-1, s.Index())
	s.Jump(2)
	assert.Equal(t, 2, s.Index())
	assert.Equal(t, "3 of 4", s.Counter())
}

func TestSequencer_At(t *testing.T) {
	s := New(hybridEntry(), 0)

	_, ok := s.At(-1)
	assert.False(t, ok)
	_, ok = s.At(s.Len())
	assert.False(t, ok)

	it, ok := s.At(1)
	require.True(t, ok)
	assert.Equal(t, "/w/2.webp", it.URL)
}

func TestSequencer_StartIndexClamped(t *testing.T) {
	s := New(hybridEntry(), 10)
	assert.Equal(t, 3, s.Index())
}

func TestSequencer_ItemsIsCopy(t *testing.T) {
	s := New(hybridEntry(), 0)
	items := s.Items()
	items[0].URL = "mutated"

	cur, _ := s.Current()
	assert.Equal(t, "/w/1.webp", cur.URL)
}
