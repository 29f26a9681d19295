package services

import (
	"github.com/saimonkat/supplement-store/internal/catalog"
	"github.com/saimonkat/supplement-store/internal/domain"
	"github.com/saimonkat/supplement-store/internal/repos"
)

// CatalogService loads the catalog through the repo and answers queries with
// the pure query engine. The engine never sees the data source.
type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

// Query filters then sorts the full catalog per the criteria.
func (s *CatalogService) Query(q domain.ProductQuery) ([]domain.Product, error) {
	products, err := s.Prods.ListAll()
	if err != nil {
		return nil, err
	}
	out := catalog.FilterProducts(products, q)
	if q.SortField != "" {
		out = catalog.SortProducts(out, q.SortField, q.SortDir)
	}
	return out, nil
}

func (s *CatalogService) BestSellers(limit int) ([]domain.Product, error) {
	products, err := s.Prods.ListAll()
	if err != nil {
		return nil, err
	}
	return catalog.BestSellers(products, limit), nil
}

func (s *CatalogService) ByCategory(category string) ([]domain.Product, error) {
	products, err := s.Prods.ListAll()
	if err != nil {
		return nil, err
	}
	return catalog.ProductsByCategory(products, category), nil
}

func (s *CatalogService) Search(q string) ([]domain.Product, error) {
	products, err := s.Prods.ListAll()
	if err != nil {
		return nil, err
	}
	return catalog.SearchProducts(products, q), nil
}
