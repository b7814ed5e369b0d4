package service

import (
	"context"
	"fmt"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
	"github.com/tagdemo/storefront/internal/pkg/metrics"
)

// AddToFavorites marks product as liked. Already-liked products are a no-op.
func (s *Store) AddToFavorites(ctx context.Context, product domain.Product) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	favorites := s.favoriteItems()
	if domain.IndexOfFavorite(favorites, product.ID) >= 0 {
		return nil
	}
	favorites = append(favorites, domain.FavoriteItem{ProductID: product.ID, AddedAt: s.now().UTC()})
	if err := s.saveFavorites(ctx, favorites); err != nil {
		return err
	}

	metrics.StoreActionsTotal.WithLabelValues("favorite_add").Inc()
	s.emitFavorite(ctx, ports.CartChange{AddedID: product.ID}, favorites)
	return nil
}

func (s *Store) RemoveFromFavorites(ctx context.Context, productID string) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	favorites := s.favoriteItems()
	i := domain.IndexOfFavorite(favorites, productID)
	if i < 0 {
		return nil
	}
	favorites = append(favorites[:i], favorites[i+1:]...)
	if err := s.saveFavorites(ctx, favorites); err != nil {
		return err
	}

	metrics.StoreActionsTotal.WithLabelValues("favorite_remove").Inc()
	s.emitFavorite(ctx, ports.CartChange{DeletedID: productID}, favorites)
	return nil
}

func (s *Store) IsFavorite(productID string) bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return domain.IndexOfFavorite(s.state.Favorites, productID) >= 0
}

// FavoriteProducts resolves favorites against the catalog, skipping products
// that no longer exist.
func (s *Store) FavoriteProducts(ctx context.Context) ([]domain.Product, error) {
	favorites := s.favoriteItems()
	out := make([]domain.Product, 0, len(favorites))
	if len(favorites) == 0 {
		return out, nil
	}
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, f := range favorites {
		if p, ok := byID[f.ProductID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) saveFavorites(ctx context.Context, favorites []domain.FavoriteItem) error {
	if err := s.favorites.Set(ctx, favorites); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	s.update(func(st *ports.StoreState) { st.Favorites = favorites })
	return nil
}

func (s *Store) emitFavorite(ctx context.Context, change ports.CartChange, favorites []domain.FavoriteItem) {
	products, ok := s.catalogForEvent(ctx, "favorite")
	if !ok {
		return
	}
	s.tracker.TrackFavorite(change, favorites, products)
}
