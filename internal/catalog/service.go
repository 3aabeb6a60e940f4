// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

// Service fronts the catalog: categories come from PostgreSQL through a
// Redis cache, product search goes to Elasticsearch. It also satisfies the
// interpreter's category source.
type Service struct {
	repo   *Repository
	cache  *CategoryCache
	search *ProductSearch
	log    logger.Logger
}

func NewService(repo *Repository, cache *CategoryCache, search *ProductSearch, log logger.Logger) *Service {
	return &Service{repo: repo, cache: cache, search: search, log: log}
}

// ListCategories serves from cache when possible.
func (s *Service) ListCategories(ctx context.Context) ([]models.Categoria, error) {
	if s.cache != nil {
		if categorias, ok := s.cache.Get(ctx); ok {
			return categorias, nil
		}
	}
	categorias, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, categorias)
	}
	return categorias, nil
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*models.Categoria, error) {
	return s.repo.GetCategory(ctx, id)
}

// CreateCategory inserts the category and drops the cached list so the
// next interpreter reload sees it.
func (s *Service) CreateCategory(ctx context.Context, c *models.Categoria) error {
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) UpdateCategory(ctx context.Context, c *models.Categoria) error {
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// SearchProducts runs an interpreter-shaped query against the product index.
func (s *Service) SearchProducts(ctx context.Context, q models.ProductSearchQuery) (*SearchResult, error) {
	return s.search.Search(ctx, q)
}

func (s *Service) ListProductsByCategory(ctx context.Context, categoriaID int64, page, size int) ([]models.Producto, error) {
	return s.repo.ListProductsByCategory(ctx, categoriaID, page, size)
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
