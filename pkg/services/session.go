package services

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"portfolio-gallery/pkg/breakpoint"
	"portfolio-gallery/pkg/gallery"
	"portfolio-gallery/pkg/lightbox"
	"portfolio-gallery/pkg/models"
)

// Chrome is the page scroll state of one visitor
type Chrome struct {
	mu    sync.Mutex
	locks int
}

// LockScroll takes a scroll lock. The returned func releases it once.
func (c *Chrome) LockScroll() func() {
	c.mu.Lock()
	c.locks++
	c.mu.Unlock()

	var release sync.Once
	return func() {
		release.Do(func() {
			c.mu.Lock()
			c.locks--
			c.mu.Unlock()
		})
	}
}

// ScrollLocked reports whether any lock is held
func (c *Chrome) ScrollLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locks > 0
}

// Keyboard dispatches key presses to bound listeners
type Keyboard struct {
	mu       sync.Mutex
	handlers map[int]func(lightbox.Key) bool
	nextID   int
}

// BindKeys registers h. The returned func unregisters it.
func (k *Keyboard) BindKeys(h func(lightbox.Key) bool) func() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.handlers == nil {
		k.handlers = make(map[int]func(lightbox.Key) bool)
	}
	id := k.nextID
	k.nextID++
	k.handlers[id] = h

	return func() {
		k.mu.Lock()
		delete(k.handlers, id)
		k.mu.Unlock()
	}
}

// Press delivers key to every listener and reports whether one consumed
// it. Listeners run without the keyboard lock so they may unbind themselves.
func (k *Keyboard) Press(key lightbox.Key) bool {
	k.mu.Lock()
	handlers := make([]func(lightbox.Key) bool, 0, len(k.handlers))
	for _, h := range k.handlers {
		handlers = append(handlers, h)
	}
	k.mu.Unlock()

	handled := false
	for _, h := range handlers {
		if h(key) {
			handled = true
		}
	}
	return handled
}

// Bound returns the number of registered listeners
func (k *Keyboard) Bound() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.handlers)
}

// Viewport describes the layout a session is rendered at
type Viewport struct {
	Width      int    `json:"width"`
	Breakpoint string `json:"breakpoint"`
	Columns    int    `json:"columns"`
}

// Session is the browsing state of one visitor: the viewport, a gallery
// engine per page and the lightbox. Every method is safe for concurrent use.
type Session struct {
	ID string

	service     *Service
	pages       func(name string) (gallery.Page, []models.Entry, error)
	observer    *breakpoint.Observer
	unsubscribe func()
	rows        gallery.Rows

	mu       sync.Mutex
	engines  map[string]*gallery.Engine
	viewer   *lightbox.Controller
	chrome   *Chrome
	keyboard *Keyboard
	closed   bool
}

func newSession(id string, svc *Service, width int) *Session {
	cfg := svc.config
	s := &Session{
		ID:       id,
		service:  svc,
		pages:    svc.GetPageInternal,
		rows:     cfg.Rows(),
		engines:  make(map[string]*gallery.Engine),
		chrome:   &Chrome{},
		keyboard: &Keyboard{},
	}
	s.viewer = lightbox.New(s.chrome, s.keyboard)
	s.observer = breakpoint.NewObserver(width,
		breakpoint.WithThresholds(cfg.Thresholds()),
		breakpoint.WithDebounce(cfg.ResizeDebounce),
	)
	s.unsubscribe = s.observer.Subscribe(s.relayout)
	return s
}

// relayout runs on the observer's goroutine and must not be called with
// s.mu held. It lays engines out for the observer's current bucket, which
// may already be newer than bp.
func (s *Session) relayout(_ breakpoint.Breakpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp := s.observer.Current()
	for _, e := range s.engines {
		e.SetBreakpoint(bp)
	}
}

// engine returns the engine of page, creating it on first use, with the
// catalog fetched by the caller outside s.mu. Callers hold s.mu.
func (s *Session) engine(name string, page gallery.Page, catalog []models.Entry) *gallery.Engine {
	if e, ok := s.engines[name]; ok {
		e.SetCatalog(catalog)
		return e
	}

	e := gallery.NewEngine(catalog, page.Categories(),
		gallery.WithBreakpoint(s.observer.Current()),
		gallery.WithRows(s.rows),
	)
	s.engines[name] = e
	return e
}

// update fetches page, which may load the catalog, and then runs fn on its
// engine under s.mu
func (s *Session) update(name string, fn func(*gallery.Engine)) (gallery.GridView, error) {
	page, catalog, err := s.pages(name)
	if err != nil {
		return gallery.GridView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.engine(name, page, catalog)
	if fn != nil {
		fn(e)
	}
	return e.View(), nil
}

// Grid returns the grid of page
func (s *Session) Grid(page string) (gallery.GridView, error) {
	return s.update(page, nil)
}

// SetCategory switches the active tab of page
func (s *Session) SetCategory(page, key string) (gallery.GridView, error) {
	return s.update(page, func(e *gallery.Engine) { e.SetCategory(key) })
}

// LoadMore reveals another row of page
func (s *Session) LoadMore(page string) (gallery.GridView, error) {
	return s.update(page, (*gallery.Engine).LoadMore)
}

// Resize reports a new viewport width. Engines are re-laid out once the
// observer applies it.
func (s *Session) Resize(width int) {
	s.observer.Resize(width)
}

// SettleViewport applies a pending debounced resize immediately
func (s *Session) SettleViewport() {
	s.observer.Flush()
}

// Viewport returns the applied viewport
func (s *Session) Viewport() Viewport {
	bp := s.observer.Current()
	return Viewport{
		Width:      s.observer.Width(),
		Breakpoint: bp.String(),
		Columns:    bp.Columns(),
	}
}

// Open shows the entry with id in the lightbox
func (s *Session) Open(id, index int) (lightbox.View, error) {
	entry, err := s.service.GetEntryInternal(id)
	if err != nil {
		return lightbox.View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lightbox.View{}, nil
	}
	s.viewer.Open(entry, index)
	return s.viewer.View(), nil
}

// OpenEntry shows entry in the lightbox without a catalog lookup
func (s *Session) OpenEntry(entry models.Entry, index int) lightbox.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lightbox.View{}
	}
	s.viewer.Open(entry, index)
	return s.viewer.View()
}

// CloseLightbox hides the lightbox
func (s *Session) CloseLightbox() lightbox.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer.Close()
	return s.viewer.View()
}

// Press delivers a key to the listeners bound by the lightbox
func (s *Session) Press(key lightbox.Key) (bool, lightbox.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	handled := s.keyboard.Press(key)
	return handled, s.viewer.View()
}

// Jump selects an item from the thumbnail strip
func (s *Session) Jump(index int) lightbox.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer.Jump(index)
	return s.viewer.View()
}

// Lightbox returns the lightbox state
func (s *Session) Lightbox() lightbox.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewer.View()
}

// ScrollLocked reports whether the lightbox holds the page scroll lock
func (s *Session) ScrollLocked() bool {
	return s.chrome.ScrollLocked()
}

// KeysBound returns the number of bound key listeners
func (s *Session) KeysBound() int {
	return s.keyboard.Bound()
}

// Close tears the session down, releasing everything the lightbox holds
func (s *Session) Close() {
	s.unsubscribe()
	s.observer.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer.Close()
	s.closed = true
}

// Sessions keeps visitor sessions with sliding expiry
type Sessions struct {
	service *Service
	cache   *cache.Cache
}

// NewSessions returns a session store backed by svc. Expired or deleted
// sessions are torn down.
func NewSessions(svc *Service) *Sessions {
	ttl := svc.config.SessionTTL
	c := cache.New(ttl, ttl)
	c.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok {
			s.Close()
			log.Printf("Session %s closed", id)
		}
	})
	return &Sessions{service: svc, cache: c}
}

// Create starts a session for a viewport of width
func (s *Sessions) Create(width int) *Session {
	sess := newSession(uuid.NewString(), s.service, width)
	s.cache.Set(sess.ID, sess, cache.DefaultExpiration)
	return sess
}

// Get returns the session with id and extends its lifetime
func (s *Sessions) Get(id string) (*Session, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	sess := v.(*Session)
	s.cache.Set(id, sess, cache.DefaultExpiration)
	return sess, true
}

// Delete ends the session with id
func (s *Sessions) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of live sessions
func (s *Sessions) Count() int {
	return s.cache.ItemCount()
}
