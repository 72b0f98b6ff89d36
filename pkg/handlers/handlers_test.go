package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-gallery/pkg/config"
	"portfolio-gallery/pkg/gallery"
	"portfolio-gallery/pkg/lightbox"
	"portfolio-gallery/pkg/models"
	"portfolio-gallery/pkg/services"
)

type testClient struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newTestServer(t *testing.T) *testClient {
	t.Helper()
	dir := t.TempDir()

	var catalog []models.Entry
	for i := 1; i <= 9; i++ {
		catalog = append(catalog, models.Entry{
			ID:        i,
			Title:     "Family session",
			Category:  models.CategoryPhotography,
			Section:   models.SectionFamilyPortraits,
			MediaKind: models.KindPhoto,
			PhotoURLs: []string{"/p/1.webp", "/p/2.webp"},
		})
	}
	data, err := json.Marshal(catalog)
	require.NoError(t, err)
	catalogFile := filepath.Join(dir, "projects.json")
	require.NoError(t, os.WriteFile(catalogFile, data, 0o644))

	viewsDir := filepath.Join(dir, "views")
	require.NoError(t, os.Mkdir(viewsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(viewsDir, "portfolio.pug"), []byte("p portfolio page\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(viewsDir, "entry.pug"), []byte("p entry page\n"), 0o644))

	cfg := &config.Config{
		SecretKey:   "s3cret",
		CatalogFile: catalogFile,
		ViewsDir:    viewsDir,
		PublicDir:   dir,
		CacheTTL:    time.Minute,
		SessionTTL:  time.Hour,
		MediumWidth: 768,
		WideWidth:   1280,
		RowsNarrow:  5,
		RowsMedium:  2,
		RowsWide:    2,
	}
	svc := services.NewService(cfg)
	srv := httptest.NewServer(NewServer(cfg, svc, services.NewSessions(svc)).Routes())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{t: t, base: srv.URL, client: &http.Client{Jar: jar}}
}

func (c *testClient) do(method, path string, body any, out any) int {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.base+path, r)
	require.NoError(c.t, err)
	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGridFlow(t *testing.T) {
	c := newTestServer(t)

	var vp services.Viewport
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/viewport", viewportRequest{Width: 1440}, &vp))
	assert.Equal(t, "wide", vp.Breakpoint)

	var grid gallery.GridView
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/grid?page=portfolio", nil, &grid))
	assert.Equal(t, gallery.AllKey, grid.Category)
	assert.Equal(t, 8, grid.PageSize)
	require.Len(t, grid.Cells, 8)
	assert.True(t, grid.Cells[7].IsViewMore())
	assert.True(t, grid.HasMore)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/more", pageRequest{Page: "portfolio"}, &grid))
	assert.Len(t, grid.Cells, 9)
	assert.False(t, grid.HasMore)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/category", categoryRequest{Page: "portfolio", Key: "weddings"}, &grid))
	assert.True(t, grid.Empty)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/category", categoryRequest{Page: "portfolio", Key: gallery.AllKey}, &grid))
	assert.Equal(t, 12, grid.Revealed, "count kept across tab switches")
}

func TestLightboxFlow(t *testing.T) {
	c := newTestServer(t)

	var view lightbox.View
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/lightbox/open", openRequest{ID: 3, Index: 0}, &view))
	assert.True(t, view.Open)
	assert.Equal(t, "1 of 2", view.Counter)

	var key keyResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/lightbox/key", keyRequest{Key: lightbox.KeyArrowRight}, &key))
	assert.True(t, key.Handled)
	assert.Equal(t, 1, key.Lightbox.Index)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/lightbox/jump", jumpRequest{Index: 0}, &view))
	assert.Equal(t, 0, view.Index)
	assert.True(t, view.Open)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/lightbox/key", keyRequest{Key: lightbox.KeyEscape}, &key))
	assert.False(t, key.Lightbox.Open)

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/lightbox", nil, &view))
	assert.False(t, view.Open)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/lightbox/key", keyRequest{Key: lightbox.KeyEscape}, &key))
	assert.False(t, key.Handled)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/lightbox/open", openRequest{ID: 1}, &view))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/lightbox/close", nil, &view))
	assert.False(t, view.Open)
}

func TestErrors(t *testing.T) {
	c := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/grid?page=missing", nil, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/lightbox/open", openRequest{ID: 999}, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/portfolio/missing", nil, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/entry/999", nil, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/entry/abc", nil, nil))

	req, err := http.NewRequest(http.MethodPost, c.base+"/api/more", bytes.NewBufferString("{"))
	require.NoError(t, err)
	resp, err := c.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFeedUsesSecretPath(t *testing.T) {
	c := newTestServer(t)

	var entries []models.Entry
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/s3cret/feed", nil, &entries))
	assert.Len(t, entries, 9)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/feed", nil, nil))
}

func TestPages(t *testing.T) {
	c := newTestServer(t)

	resp, err := c.client.Get(c.base + "/portfolio/portfolio?width=400&category=photography")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "portfolio page")

	var vp services.Viewport
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/viewport", viewportRequest{Width: 400}, &vp))
	assert.Equal(t, "narrow", vp.Breakpoint)

	resp, err = c.client.Get(c.base + "/entry/2?index=1")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "entry page")
}
