package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/eknkc/pug"

	"portfolio-gallery/pkg/config"
	"portfolio-gallery/pkg/gallery"
	"portfolio-gallery/pkg/lightbox"
	"portfolio-gallery/pkg/models"
	"portfolio-gallery/pkg/services"
)

// SessionCookie names the cookie carrying the visitor session id
const SessionCookie = "gallery_session"

// DefaultPage is served when a request names no page
const DefaultPage = "portfolio"

// Server serves the portfolio pages and the JSON API behind them
type Server struct {
	config   *config.Config
	service  *services.Service
	sessions *services.Sessions
}

// NewServer returns a server over svc and sessions
func NewServer(cfg *config.Config, svc *services.Service, sessions *services.Sessions) *Server {
	return &Server{config: cfg, service: svc, sessions: sessions}
}

// Routes registers every handler on a new mux
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.config.PublicDir)))
	mux.HandleFunc("GET /portfolio/{page}", s.PortfolioHandler)
	mux.HandleFunc("GET /entry/{id}", s.EntryHandler)
	mux.HandleFunc("GET "+s.config.FeedPath(), s.FeedHandler)

	mux.HandleFunc("GET /api/grid", s.GridHandler)
	mux.HandleFunc("POST /api/category", s.CategoryHandler)
	mux.HandleFunc("POST /api/more", s.MoreHandler)
	mux.HandleFunc("POST /api/viewport", s.ViewportHandler)

	mux.HandleFunc("GET /api/lightbox", s.LightboxHandler)
	mux.HandleFunc("POST /api/lightbox/open", s.LightboxOpenHandler)
	mux.HandleFunc("POST /api/lightbox/close", s.LightboxCloseHandler)
	mux.HandleFunc("POST /api/lightbox/key", s.LightboxKeyHandler)
	mux.HandleFunc("POST /api/lightbox/jump", s.LightboxJumpHandler)
	return mux
}

// session returns the visitor's session, starting one at width when the
// cookie is missing or expired
func (s *Server) session(w http.ResponseWriter, r *http.Request, width int) *services.Session {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := s.sessions.Get(c.Value); ok {
			return sess
		}
	}

	sess := s.sessions.Create(width)
	log.Printf("Session %s started at width %d", sess.ID, width)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func queryInt(r *http.Request, name string) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s *Server) render(w http.ResponseWriter, view string, data any) {
	template, err := pug.CompileFile(filepath.Join(s.config.ViewsDir, view), pug.Options{})
	if err != nil {
		log.Printf("Failed to compile %s: %v", view, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	if err := template.Execute(w, data); err != nil {
		log.Printf("Failed to render %s: %v", view, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	jsonString, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to encode response: %v", err)
		http.Error(w, "encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonString); err != nil {
		return
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps service errors to status codes
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrPageNotFound), errors.Is(err, services.ErrEntryNotFound):
		log.Printf("Not found: %v", err)
		http.NotFound(w, r)
	default:
		log.Printf("Request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// PortfolioPage is the data behind portfolio.pug
type PortfolioPage struct {
	Name        string
	Title       string
	Description string
	Grid        gallery.GridView
	Lightbox    lightbox.View
	Viewport    services.Viewport
	Pages       []gallery.Page
}

// PortfolioHandler renders a service page. The query may carry the viewport
// width, a category to switch to and more=1 to reveal another row, so the
// page works without scripts.
func (s *Server) PortfolioHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("page")
	width, hasWidth := queryInt(r, "width")
	sess := s.session(w, r, width)
	if hasWidth {
		sess.Resize(width)
		sess.SettleViewport()
	}

	var (
		grid gallery.GridView
		err  error
	)
	switch {
	case r.URL.Query().Has("category"):
		grid, err = sess.SetCategory(name, r.URL.Query().Get("category"))
	case r.URL.Query().Get("more") == "1":
		grid, err = sess.LoadMore(name)
	default:
		grid, err = sess.Grid(name)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, _ := gallery.FindPage(name)
	log.Println("Generating Portfolio Page: " + name)

	s.render(w, "portfolio.pug", PortfolioPage{
		Name:        page.Name,
		Title:       page.Title,
		Description: page.Description,
		Grid:        grid,
		Lightbox:    sess.Lightbox(),
		Viewport:    sess.Viewport(),
		Pages:       gallery.Pages,
	})
}

// EntryPage is the data behind entry.pug
type EntryPage struct {
	Entry    models.Entry
	Lightbox lightbox.View
}

// EntryHandler renders a stand-alone viewer for one entry
func (s *Server) EntryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	entry, err := s.service.GetEntryInternal(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	index, _ := queryInt(r, "index")

	viewer := lightbox.New(nil, nil)
	viewer.Open(entry, index)
	log.Printf("Generating Entry Page: %d", id)

	s.render(w, "entry.pug", EntryPage{Entry: entry, Lightbox: viewer.View()})
}

// FeedHandler handles requests for the catalog feed (JSON)
func (s *Server) FeedHandler(w http.ResponseWriter, _ *http.Request) {
	log.Println("Generating Feed")
	writeJSON(w, http.StatusOK, s.service.GetCatalogInternal())
}

type pageRequest struct {
	Page string `json:"page"`
}

type categoryRequest struct {
	Page string `json:"page"`
	Key  string `json:"key"`
}

type viewportRequest struct {
	Width int `json:"width"`
}

type openRequest struct {
	ID    int `json:"id"`
	Index int `json:"index"`
}

type keyRequest struct {
	Key lightbox.Key `json:"key"`
}

type jumpRequest struct {
	Index int `json:"index"`
}

type keyResponse struct {
	Handled  bool          `json:"handled"`
	Lightbox lightbox.View `json:"lightbox"`
}

// GridHandler returns the grid of ?page=, the portfolio page by default
func (s *Server) GridHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("page")
	if name == "" {
		name = DefaultPage
	}
	sess := s.session(w, r, 0)
	grid, err := sess.Grid(name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// CategoryHandler switches the active tab of a page
func (s *Server) CategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !readJSON(w, r, &req) {
		return
	}
	sess := s.session(w, r, 0)
	grid, err := sess.SetCategory(req.Page, req.Key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// MoreHandler reveals another row of a page
func (s *Server) MoreHandler(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if !readJSON(w, r, &req) {
		return
	}
	sess := s.session(w, r, 0)
	grid, err := sess.LoadMore(req.Page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// ViewportHandler records a resize. The response carries the viewport as
// applied so far; a debounced resize shows up on later requests.
func (s *Server) ViewportHandler(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if !readJSON(w, r, &req) {
		return
	}
	sess := s.session(w, r, req.Width)
	sess.Resize(req.Width)
	writeJSON(w, http.StatusOK, sess.Viewport())
}

// LightboxHandler returns the lightbox state
func (s *Server) LightboxHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session(w, r, 0).Lightbox())
}

// LightboxOpenHandler opens an entry in the lightbox
func (s *Server) LightboxOpenHandler(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if !readJSON(w, r, &req) {
		return
	}
	view, err := s.session(w, r, 0).Open(req.ID, req.Index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// LightboxCloseHandler closes the lightbox
func (s *Server) LightboxCloseHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session(w, r, 0).CloseLightbox())
}

// LightboxKeyHandler forwards a key press to the bound listener
func (s *Server) LightboxKeyHandler(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if !readJSON(w, r, &req) {
		return
	}
	handled, view := s.session(w, r, 0).Press(req.Key)
	writeJSON(w, http.StatusOK, keyResponse{Handled: handled, Lightbox: view})
}

// LightboxJumpHandler selects an item from the thumbnail strip
func (s *Server) LightboxJumpHandler(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if !readJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.session(w, r, 0).Jump(req.Index))
}
