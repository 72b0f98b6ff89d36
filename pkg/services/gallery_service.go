package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"cloud.google.com/go/storage"
	"github.com/patrickmn/go-cache"
	"google.golang.org/api/iterator"

	"portfolio-gallery/pkg/config"
	"portfolio-gallery/pkg/gallery"
	"portfolio-gallery/pkg/models"
)

// ErrEntryNotFound is returned when no catalog entry has the requested id
var ErrEntryNotFound = errors.New("entry not found")

// ErrPageNotFound is returned for an unknown service page name
var ErrPageNotFound = errors.New("page not found")

const catalogKey = "catalog"

// Service loads and caches the catalog
type Service struct {
	config       *config.Config
	catalogCache *cache.Cache
	mu           sync.RWMutex
}

// naturalLess compares strings in a way that treats numbers as numbers rather than characters
// For example: "file2" < "file10" when using naturalLess
func naturalLess(s1, s2 string) bool {
	i, j := 0, 0
	for i < len(s1) && j < len(s2) {
		for i < len(s1) && unicode.IsSpace(rune(s1[i])) {
			i++
		}
		for j < len(s2) && unicode.IsSpace(rune(s2[j])) {
			j++
		}

		if i >= len(s1) || j >= len(s2) {
			break
		}

		if unicode.IsDigit(rune(s1[i])) && unicode.IsDigit(rune(s2[j])) {
			start1, start2 := i, j
			for i < len(s1) && unicode.IsDigit(rune(s1[i])) {
				i++
			}
			for j < len(s2) && unicode.IsDigit(rune(s2[j])) {
				j++
			}

			n1, _ := strconv.Atoi(s1[start1:i])
			n2, _ := strconv.Atoi(s2[start2:j])
			if n1 != n2 {
				return n1 < n2
			}
		} else {
			if s1[i] != s2[j] {
				return s1[i] < s2[j]
			}
			i++
			j++
		}
	}

	return len(s1) < len(s2)
}

var (
	// defaultService is the singleton instance of Service
	defaultService *Service
	once           sync.Once
)

// NewService returns a service for cfg. Most callers use InitService.
func NewService(cfg *config.Config) *Service {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		config:       cfg,
		catalogCache: cache.New(ttl, 2*ttl),
	}
}

// InitService initializes the service with the given configuration
func InitService(cfg *config.Config) {
	once.Do(func() {
		defaultService = NewService(cfg)
	})
}

// Default returns the service created by InitService
func Default() *Service {
	return defaultService
}

// GetCatalog returns every catalog entry
func GetCatalog() []models.Entry {
	return defaultService.GetCatalogInternal()
}

// GetEntry returns the entry with id
func GetEntry(id int) (models.Entry, error) {
	return defaultService.GetEntryInternal(id)
}

// GetPage returns a service page and its scoped catalog
func GetPage(name string) (gallery.Page, []models.Entry, error) {
	return defaultService.GetPageInternal(name)
}

// Refresh drops the cached catalog
func Refresh() {
	defaultService.Refresh()
}

// Refresh drops the cached catalog so the next read reloads it
func (s *Service) Refresh() {
	s.mu.Lock()
	s.catalogCache.Delete(catalogKey)
	s.mu.Unlock()
	log.Println("Catalog cache cleared")
}

// GetEntryInternal returns the entry with id
func (s *Service) GetEntryInternal(id int) (models.Entry, error) {
	for _, e := range s.GetCatalogInternal() {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Entry{}, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
}

// GetPageInternal returns a service page and its scoped catalog
func (s *Service) GetPageInternal(name string) (gallery.Page, []models.Entry, error) {
	page, ok := gallery.FindPage(name)
	if !ok {
		return gallery.Page{}, nil, fmt.Errorf("%w: %s", ErrPageNotFound, name)
	}
	return page, page.Catalog(s.GetCatalogInternal()), nil
}

// GetCatalogInternal returns every catalog entry. A load failure is logged
// and yields an empty catalog.
func (s *Service) GetCatalogInternal() []models.Entry {
	s.mu.RLock()
	if cached, found := s.catalogCache.Get(catalogKey); found {
		s.mu.RUnlock()
		log.Println("Using Cached Catalog")
		return cached.([]models.Entry)
	}
	s.mu.RUnlock()

	log.Println("Loading Catalog")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := s.loadCatalog(ctx)
	if err != nil {
		log.Printf("Failed to load catalog: %v", err)
		return []models.Entry{}
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	s.mu.Lock()
	s.catalogCache.Set(catalogKey, entries, cache.DefaultExpiration)
	s.mu.Unlock()

	return entries
}

func (s *Service) loadCatalog(ctx context.Context) ([]models.Entry, error) {
	if s.config.BucketName != "" {
		return s.loadFromBucket(ctx)
	}
	return loadFromFile(s.config.CatalogFile)
}

func loadFromFile(path string) ([]models.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	return decodeCatalog(f)
}

// loadFromBucket reads every .json object under the catalog prefix, in
// natural name order, and concatenates their entries
func (s *Service) loadFromBucket(ctx context.Context) ([]models.Entry, error) {
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	defer storageClient.Close()

	bucket := storageClient.Bucket(s.config.BucketName)
	it := bucket.Objects(ctx, &storage.Query{Prefix: s.config.CatalogPrefix})

	var names []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing catalog objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, ".json") {
			names = append(names, attrs.Name)
		}
	}

	sort.Slice(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})

	var entries []models.Entry
	for _, name := range names {
		r, err := bucket.Object(name).NewReader(ctx)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", name, err)
			continue
		}
		part, err := decodeCatalog(r)
		r.Close()
		if err != nil {
			log.Printf("Warning: skipping %s: %v", name, err)
			continue
		}
		entries = append(entries, part...)
	}
	return entries, nil
}

func decodeCatalog(r io.Reader) ([]models.Entry, error) {
	var entries []models.Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return entries, nil
}
