// Package gallery filters the catalog into category tabs and reveals the
// filtered entries page by page in a responsive grid.
package gallery

import (
	"portfolio-gallery/pkg/breakpoint"
	"portfolio-gallery/pkg/models"
)

// Rows is the number of grid rows shown per breakpoint before the first
// load-more
type Rows map[breakpoint.Breakpoint]int

// DefaultRows gives 10 cards on phones and two full rows elsewhere
var DefaultRows = Rows{
	breakpoint.Narrow: 5,
	breakpoint.Medium: 2,
	breakpoint.Wide:   2,
}

const fallbackRows = 2

// CellKind tells a grid cell's variant
type CellKind string

const (
	CellEntry    CellKind = "entry"
	CellViewMore CellKind = "view-more"
)

// GridCell is either an entry card or the load-more sentinel. Entry is only
// meaningful for CellEntry.
type GridCell struct {
	Kind  CellKind      `json:"kind"`
	Entry *models.Entry `json:"entry,omitempty"`

	// Fresh marks cards revealed by the latest LoadMore
	Fresh bool `json:"fresh,omitempty"`
}

// IsViewMore reports whether the cell is the load-more sentinel
func (c GridCell) IsViewMore() bool {
	return c.Kind == CellViewMore
}

// Engine tracks the active category and how many entries each category has
// revealed. It is not safe for concurrent use.
type Engine struct {
	catalog    []models.Entry
	categories []Category

	bp       breakpoint.Breakpoint
	rows     Rows
	pageSize int
	paginate bool

	active   string
	revealed map[string]int
	previous map[string]int
}

// Option configures an Engine
type Option func(*Engine)

// WithBreakpoint sets the starting breakpoint
func WithBreakpoint(bp breakpoint.Breakpoint) Option {
	return func(e *Engine) { e.bp = bp }
}

// WithRows overrides DefaultRows. Missing breakpoints keep their default.
func WithRows(rows Rows) Option {
	return func(e *Engine) {
		for bp, n := range rows {
			if n > 0 {
				e.rows[bp] = n
			}
		}
	}
}

// WithPageSize fixes the page size instead of deriving it from the grid
func WithPageSize(n int) Option {
	return func(e *Engine) { e.pageSize = n }
}

// WithPagination turns progressive reveal on or off. When off the whole
// filtered list is shown and there is never a sentinel.
func WithPagination(on bool) Option {
	return func(e *Engine) { e.paginate = on }
}

// NewEngine returns an engine over catalog with the first category active.
// Without categories the engine behaves as a single "all" tab. Pagination is
// on unless WithPagination(false) is given.
func NewEngine(catalog []models.Entry, categories []Category, opts ...Option) *Engine {
	e := &Engine{
		catalog:    catalog,
		categories: categories,
		rows:       Rows{},
		paginate:   true,
		revealed:   make(map[string]int),
		previous:   make(map[string]int),
	}
	for bp, n := range DefaultRows {
		e.rows[bp] = n
	}
	for _, opt := range opts {
		opt(e)
	}

	initial := AllKey
	if len(categories) > 0 {
		initial = categories[0].Key
	}
	e.SetCategory(initial)
	return e
}

// Categories returns the tabs in display order
func (e *Engine) Categories() []Category {
	return e.categories
}

// SetCatalog swaps the catalog, keeping revealed counts
func (e *Engine) SetCatalog(catalog []models.Entry) {
	e.catalog = catalog
}

// Breakpoint returns the breakpoint the grid is laid out for
func (e *Engine) Breakpoint() breakpoint.Breakpoint {
	return e.bp
}

// Columns returns the column count of the current breakpoint
func (e *Engine) Columns() int {
	return e.bp.Columns()
}

// PageSize returns how many cells the first page of any category fills
func (e *Engine) PageSize() int {
	if e.pageSize > 0 {
		return e.pageSize
	}
	rows := e.rows[e.bp]
	if rows <= 0 {
		rows = fallbackRows
	}
	return e.bp.Columns() * rows
}

// SetCategory activates key. The first visit to a category starts it at one
// page; later visits resume at the count it was left with.
func (e *Engine) SetCategory(key string) {
	e.active = key
	if _, seen := e.revealed[key]; !seen {
		e.revealed[key] = e.PageSize()
	}
	e.previous[key] = 0
}

// Active returns the key of the active category
func (e *Engine) Active() string {
	return e.active
}

// ActiveCategory returns the active category. It reports false when the
// active key names no category, in which case the whole catalog is shown.
func (e *Engine) ActiveCategory() (Category, bool) {
	return find(e.categories, e.active)
}

// Filter applies the category with key to catalog
func (e *Engine) Filter(catalog []models.Entry, key string) []models.Entry {
	return Filter(catalog, e.categories, key)
}

// FilteredEntries returns the active category's entries
func (e *Engine) FilteredEntries() []models.Entry {
	return e.Filter(e.catalog, e.active)
}

// Revealed returns the revealed count of key, or one page for a category
// never visited
func (e *Engine) Revealed(key string) int {
	if n, ok := e.revealed[key]; ok {
		return n
	}
	return e.PageSize()
}

// HasMore reports whether the category with key has entries past its
// revealed count
func (e *Engine) HasMore(catalog []models.Entry, key string) bool {
	if !e.paginate {
		return false
	}
	return len(e.Filter(catalog, key)) > e.Revealed(key)
}

// LoadMore reveals one more grid row of the active category. It does
// nothing when everything is already shown.
func (e *Engine) LoadMore() {
	if !e.HasMore(e.catalog, e.active) {
		return
	}
	n := e.Revealed(e.active)
	e.previous[e.active] = n
	e.revealed[e.active] = n + e.Columns()
}

// SetBreakpoint re-lays the grid for bp. Revealed counts are raised to at
// least the new page size and never lowered.
func (e *Engine) SetBreakpoint(bp breakpoint.Breakpoint) {
	e.bp = bp
	size := e.PageSize()
	for key, n := range e.revealed {
		if n < size {
			e.revealed[key] = size
		}
	}
}

// GridCells lays out the active category. When entries remain the last
// revealed slot is given to the sentinel.
func (e *Engine) GridCells() []GridCell {
	entries := e.FilteredEntries()

	limit := len(entries)
	more := false
	if e.paginate {
		n := e.Revealed(e.active)
		if len(entries) > n {
			limit = max(n-1, 0)
			more = true
		}
	}

	previous := e.previous[e.active]
	cells := make([]GridCell, 0, limit+1)
	for i := 0; i < limit; i++ {
		entry := entries[i]
		cells = append(cells, GridCell{
			Kind:  CellEntry,
			Entry: &entry,
			Fresh: previous > 0 && i >= previous-1,
		})
	}
	if more {
		cells = append(cells, GridCell{Kind: CellViewMore})
	}
	return cells
}

// Tab is a category as shown in the tab bar
type Tab struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// GridView is a render-ready snapshot of the engine
type GridView struct {
	Category    string     `json:"category"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Breakpoint  string     `json:"breakpoint"`
	Columns     int        `json:"columns"`
	PageSize    int        `json:"pageSize"`
	Revealed    int        `json:"revealed"`
	Total       int        `json:"total"`
	HasMore     bool       `json:"hasMore"`
	Empty       bool       `json:"empty"`
	Tabs        []Tab      `json:"tabs"`
	Cells       []GridCell `json:"cells"`
}

// Shown counts the entry cards in the grid, leaving out the sentinel
func (v GridView) Shown() int {
	n := 0
	for _, c := range v.Cells {
		if c.Kind == CellEntry {
			n++
		}
	}
	return n
}

// View snapshots the engine for rendering
func (e *Engine) View() GridView {
	entries := e.FilteredEntries()
	v := GridView{
		Category:   e.active,
		Breakpoint: e.bp.String(),
		Columns:    e.Columns(),
		PageSize:   e.PageSize(),
		Revealed:   e.Revealed(e.active),
		Total:      len(entries),
		HasMore:    e.HasMore(e.catalog, e.active),
		Empty:      len(entries) == 0,
		Cells:      e.GridCells(),
	}
	if c, ok := e.ActiveCategory(); ok {
		v.Label = c.Label
		v.Description = c.Description
	}
	for _, c := range e.categories {
		v.Tabs = append(v.Tabs, Tab{
			Key:         c.Key,
			Label:       c.Label,
			Description: c.Description,
			Active:      c.Key == e.active,
		})
	}
	return v
}
