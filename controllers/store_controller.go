package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/pkg/resp"
	"github.com/RafaelMendes244/RMPedidos/repository"
	"github.com/RafaelMendes244/RMPedidos/services"
)

// StoreController serves the public storefront reads: open/closed
// status and the menu.
type StoreController struct {
	Store      *services.StoreService
	TenantRepo *repository.TenantRepository
	Catalog    *repository.CatalogRepository
}

func NewStoreController(store *services.StoreService, tenantRepo *repository.TenantRepository, catalog *repository.CatalogRepository) *StoreController {
	return &StoreController{Store: store, TenantRepo: tenantRepo, Catalog: catalog}
}

// GET /store/:slug/status
func (sc *StoreController) Status(c *gin.Context) {
	status, err := sc.Store.PublicStatus(c.Param("slug"), time.Now())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, status)
}

// GET /store/:slug/menu: available products with their option groups,
// read-only.
func (sc *StoreController) Menu(c *gin.Context) {
	tenant, err := sc.TenantRepo.FindBySlug(c.Param("slug"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			resp.NotFound(c, "Store not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	categories, err := sc.Catalog.Categories(tenant.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	products, err := sc.Catalog.ListAvailableProducts(tenant.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, gin.H{
		"store":      tenant,
		"categories": categories,
		"products":   products,
	})
}
