package service

import (
	"context"

	"github.com/tagdemo/storefront/internal/core/domain"
)

// ViewProduct loads a product for its detail page and emits view_item.
func (s *Store) ViewProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	p, ok, err := s.catalog.Get(ctx, id)
	if err != nil || !ok {
		return p, ok, err
	}
	s.tracker.TrackProductView(p)
	return p, true, nil
}

// Search runs a catalog search and emits the keyword with its hit count.
func (s *Store) Search(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.catalog.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	s.tracker.TrackSearch(query, len(products))
	return products, nil
}

// Browse lists the catalog, optionally narrowed to one category.
func (s *Store) Browse(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	if category == "" {
		return s.catalog.List(ctx)
	}
	return s.catalog.ListByCategory(ctx, category)
}

// PageView records a page visit. The tag counts page views on its own, so this
// only logs.
func (s *Store) PageView(page string, params map[string]any) {
	s.tracker.TrackPageView(page, params)
}
