// Package lightbox implements the modal media viewer state machine.
//
// A Controller is either Closed or Open. While Open it owns two page-level
// resources, a scroll lock and a keyboard listener, which are acquired
// together on entering Open and released together on every way out of it.
package lightbox

import (
	"portfolio-gallery/pkg/media"
	"portfolio-gallery/pkg/models"
)

// Key is a keyboard key name as reported by the browser
type Key string

const (
	KeyEscape     Key = "Escape"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// ScrollLocker locks page scrolling. The returned func releases the lock.
type ScrollLocker interface {
	LockScroll() (release func())
}

// KeyBinder registers a keyboard listener that reports whether it consumed
// the key. The returned func unregisters it.
type KeyBinder interface {
	BindKeys(handler func(Key) bool) (unbind func())
}

// Controller is the lightbox state machine. It is not safe for concurrent
// use; callers serialise events.
type Controller struct {
	scroll ScrollLocker
	keys   KeyBinder

	entry   *models.Entry
	seq     *media.Sequencer
	release func()
}

// New returns a closed controller. Either collaborator may be nil.
func New(scroll ScrollLocker, keys KeyBinder) *Controller {
	return &Controller{scroll: scroll, keys: keys}
}

// Open shows entry starting at startIndex. A fresh playlist is built on every
// call, so nothing carries over from a previously opened entry.
func (c *Controller) Open(entry models.Entry, startIndex int) {
	c.Close()

	c.entry = &entry
	c.seq = media.New(entry, startIndex)
	c.release = c.acquire()
}

// Close hides the viewer and releases the scroll lock and key listener.
// Closing a closed controller does nothing.
func (c *Controller) Close() {
	if c.release != nil {
		c.release()
		c.release = nil
	}
	c.entry = nil
	c.seq = nil
}

// acquire takes both page resources as one unit
func (c *Controller) acquire() func() {
	var unlock, unbind func()
	if c.scroll != nil {
		unlock = c.scroll.LockScroll()
	}
	if c.keys != nil {
		unbind = c.keys.BindKeys(c.HandleKey)
	}
	return func() {
		if unbind != nil {
			unbind()
		}
		if unlock != nil {
			unlock()
		}
	}
}

// IsOpen reports whether the viewer is showing an entry
func (c *Controller) IsOpen() bool {
	return c.entry != nil
}

// Entry returns the entry being shown
func (c *Controller) Entry() (models.Entry, bool) {
	if c.entry == nil {
		return models.Entry{}, false
	}
	return *c.entry, true
}

// Index returns the playlist position, 0 when closed
func (c *Controller) Index() int {
	if c.seq == nil {
		return 0
	}
	return c.seq.Index()
}

// Current returns the media item on display
func (c *Controller) Current() (media.Item, bool) {
	if c.seq == nil {
		return media.Item{}, false
	}
	return c.seq.Current()
}

// Next moves to the following item
func (c *Controller) Next() {
	if c.seq != nil {
		c.seq.Next()
	}
}

// Prev moves to the preceding item
func (c *Controller) Prev() {
	if c.seq != nil {
		c.seq.Prev()
	}
}

// Jump selects an item from the thumbnail strip. It never closes the viewer.
func (c *Controller) Jump(index int) {
	if c.seq != nil {
		c.seq.Jump(index)
	}
}

// HandleKey applies the keyboard contract. It returns false for keys the
// viewer does not handle or when it is closed.
func (c *Controller) HandleKey(k Key) bool {
	if !c.IsOpen() {
		return false
	}
	switch k {
	case KeyEscape:
		c.Close()
	case KeyArrowLeft:
		c.Prev()
	case KeyArrowRight:
		c.Next()
	default:
		return false
	}
	return true
}

// Thumbnail is one cell of the strip under the main media
type Thumbnail struct {
	Index  int        `json:"index"`
	Type   media.Type `json:"type"`
	URL    string     `json:"thumbnailUrl"`
	Active bool       `json:"active"`
}

// View is a render-ready snapshot of the controller
type View struct {
	Open          bool          `json:"open"`
	Entry         *models.Entry `json:"entry,omitempty"`
	Current       *media.Item   `json:"current,omitempty"`
	Index         int           `json:"index"`
	Total         int           `json:"total"`
	Counter       string        `json:"counter,omitempty"`
	CanPrev       bool          `json:"canPrev"`
	CanNext       bool          `json:"canNext"`
	HasNavigation bool          `json:"hasNavigation"`
	Empty         bool          `json:"empty"`
	Thumbnails    []Thumbnail   `json:"thumbnails,omitempty"`
}

// View snapshots the viewer for rendering. An open viewer with an empty
// playlist reports Empty and disables every navigation control.
func (c *Controller) View() View {
	if !c.IsOpen() {
		return View{}
	}

	entry := *c.entry
	v := View{
		Open:  true,
		Entry: &entry,
		Index: c.seq.Index(),
		Total: c.seq.Len(),
	}

	cur, ok := c.seq.Current()
	if !ok {
		v.Empty = true
		return v
	}
	v.Current = &cur
	v.Counter = c.seq.Counter()
	v.CanPrev = c.seq.CanPrev()
	v.CanNext = c.seq.CanNext()
	v.HasNavigation = c.seq.HasNavigation()

	if v.HasNavigation {
		for i, it := range c.seq.Items() {
			v.Thumbnails = append(v.Thumbnails, Thumbnail{
				Index:  i,
				Type:   it.Type,
				URL:    it.ThumbnailURL,
				Active: i == v.Index,
			})
		}
	}
	return v
}
