package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

//go:embed data/products.json
var seedJSON []byte

var csvHeader = []string{"id", "name", "price", "description", "imageUrl", "category", "stock"}

// DefaultProducts returns a fresh copy of the bundled catalog.
func DefaultProducts() []domain.Product {
	var seed struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(seedJSON, &seed); err != nil {
		panic(fmt.Sprintf("catalog: bundled products are malformed: %v", err))
	}
	return seed.Products
}

// CatalogService implements ports.CatalogService. The persisted collection is
// authoritative; the in-memory cache only answers while nothing is persisted.
type CatalogService struct {
	record  ports.Record[[]domain.Product]
	latency Latency
	logger  zerolog.Logger
	now     func() time.Time

	writeMu sync.Mutex // serializes read-modify-write cycles

	mu    sync.RWMutex
	cache []domain.Product
}

var _ ports.CatalogService = (*CatalogService)(nil)

// NewCatalogService seeds an empty backend with the bundled catalog.
func NewCatalogService(ctx context.Context, record ports.Record[[]domain.Product], latency Latency, logger zerolog.Logger) (*CatalogService, error) {
	s := &CatalogService{
		record:  record,
		latency: latency,
		logger:  logger.With().Str("component", "catalog").Logger(),
		now:     time.Now,
		cache:   DefaultProducts(),
	}

	if stored, ok := record.Get(ctx); ok && len(stored) > 0 {
		s.replaceCache(stored)
		return s, nil
	}
	if err := record.Set(ctx, s.cache); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	s.logger.Info().Int("products", len(s.cache)).Msg("catalog seeded with default products")
	return s, nil
}

// snapshot is the single read path: persisted products win over the cache.
func (s *CatalogService) snapshot(ctx context.Context) []domain.Product {
	if stored, ok := s.record.Get(ctx); ok {
		s.replaceCache(stored)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.cache))
	copy(out, s.cache)
	return out
}

func (s *CatalogService) replaceCache(products []domain.Product) {
	cp := make([]domain.Product, len(products))
	copy(cp, products)
	s.mu.Lock()
	s.cache = cp
	s.mu.Unlock()
}

// persist writes products and then invalidates the cache.
func (s *CatalogService) persist(ctx context.Context, products []domain.Product) error {
	if err := s.record.Set(ctx, products); err != nil {
		return err
	}
	s.replaceCache(products)
	return nil
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	if err := sleep(ctx, s.latency.List); err != nil {
		return nil, err
	}
	return s.snapshot(ctx), nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (domain.Product, bool, error) {
	if err := sleep(ctx, s.latency.Get); err != nil {
		return domain.Product{}, false, err
	}
	for _, p := range s.snapshot(ctx) {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domain.Product{}, false, nil
}

// Search matches query case-insensitively against name, description and category.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if err := sleep(ctx, s.latency.List); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := []domain.Product{}
	for _, p := range s.snapshot(ctx) {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(string(p.Category)), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *CatalogService) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	if err := sleep(ctx, s.latency.List); err != nil {
		return nil, err
	}
	out := []domain.Product{}
	for _, p := range s.snapshot(ctx) {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// Create assigns an id of the form prod_<unix-ms>, bumped until unique.
func (s *CatalogService) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if err := sleep(ctx, s.latency.List); err != nil {
		return domain.Product{}, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	products := s.snapshot(ctx)
	taken := make(map[string]bool, len(products))
	for _, p := range products {
		taken[p.ID] = true
	}
	ms := s.now().UnixMilli()
	id := "prod_" + strconv.FormatInt(ms, 10)
	for taken[id] {
		ms++
		id = "prod_" + strconv.FormatInt(ms, 10)
	}

	p := domain.Product{
		ID:          id,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Stock:       in.Stock,
	}
	if err := s.persist(ctx, append(products, p)); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	s.logger.Info().Str("product_id", id).Msg("product created")
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, bool, error) {
	if err := sleep(ctx, s.latency.List); err != nil {
		return domain.Product{}, false, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	products := s.snapshot(ctx)
	for i, p := range products {
		if p.ID != id {
			continue
		}
		products[i] = patch.Apply(p)
		if err := s.persist(ctx, products); err != nil {
			return domain.Product{}, true, fmt.Errorf("update product %s: %w", id, err)
		}
		s.logger.Info().Str("product_id", id).Msg("product updated")
		return products[i], true, nil
	}
	return domain.Product{}, false, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) (bool, error) {
	if err := sleep(ctx, s.latency.List); err != nil {
		return false, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	products := s.snapshot(ctx)
	kept := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return false, nil
	}
	if err := s.persist(ctx, kept); err != nil {
		return false, fmt.Errorf("delete product %s: %w", id, err)
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return true, nil
}

// ResetToDefault overwrites the persisted catalog with the bundled products.
func (s *CatalogService) ResetToDefault(ctx context.Context) error {
	if err := sleep(ctx, s.latency.List); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.persist(ctx, DefaultProducts()); err != nil {
		return fmt.Errorf("reset catalog: %w", err)
	}
	s.logger.Info().Msg("catalog reset to default products")
	return nil
}

// ExportJSON renders the stored catalog as a 2-space indented array.
func (s *CatalogService) ExportJSON(ctx context.Context) ([]byte, error) {
	return json.MarshalIndent(s.stored(ctx), "", "  ")
}

// ExportCSV renders the catalog for bulk import. Name and description are
// always quoted; the other columns never contain commas.
func (s *CatalogService) ExportCSV(ctx context.Context) ([]byte, error) {
	products := s.stored(ctx)
	rows := make([]string, 0, len(products)+1)
	rows = append(rows, strings.Join(csvHeader, ","))
	for _, p := range products {
		rows = append(rows, strings.Join([]string{
			p.ID,
			quoteCSV(p.Name),
			strconv.Itoa(p.Price),
			quoteCSV(p.Description),
			p.ImageURL,
			string(p.Category),
			strconv.Itoa(p.Stock),
		}, ","))
	}
	return []byte(strings.Join(rows, "\n")), nil
}

// stored reads the persisted collection without falling back to the cache.
// Exports of an empty backend are empty.
func (s *CatalogService) stored(ctx context.Context) []domain.Product {
	products, ok := s.record.Get(ctx)
	if !ok || products == nil {
		return []domain.Product{}
	}
	return products
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
