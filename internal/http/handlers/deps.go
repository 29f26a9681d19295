package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/saimonkat/supplement-store/internal/config"
	"github.com/saimonkat/supplement-store/internal/repos"
	"github.com/saimonkat/supplement-store/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	ProductHandler *ProductHandler
	SearchHandler  *SearchHandler
	StockHandler   *StockHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, orderRepo)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		SearchHandler:  &SearchHandler{Catalog: catalogSvc},
		StockHandler:   &StockHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Cart: cartSvc, Order: orderSvc, Repo: orderRepo, Auth: auth},
	}
}
