package repository

import (
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
)

// CatalogRepository is read-only from the ordering core's point of view:
// the pricing pipeline consults it, it never writes through it.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) GetProduct(tenantID, productID uint) (*entity.Product, error) {
	var p entity.Product
	err := r.DB.Where("tenant_id = ?", tenantID).First(&p, productID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// OptionItemsForProduct returns every priced option item reachable from
// the product's option groups. Matching against client labels happens in
// the pricing service, in memory, because it is case-insensitive and
// suffix-aware.
func (r *CatalogRepository) OptionItemsForProduct(productID uint) ([]entity.OptionItem, error) {
	var items []entity.OptionItem
	err := r.DB.
		Joins("JOIN product_options po ON po.id = option_items.product_option_id").
		Where("po.product_id = ? AND po.deleted_at IS NULL", productID).
		Find(&items).Error
	return items, err
}

// ---------------- Option group templates ----------------

func (r *CatalogRepository) Groups(tenantID uint) ([]entity.ProductGroup, error) {
	var groups []entity.ProductGroup
	err := r.DB.Where("tenant_id = ?", tenantID).
		Preload("Items").
		Order("name").
		Find(&groups).Error
	return groups, err
}

func (r *CatalogRepository) GetGroup(tenantID, groupID uint) (*entity.ProductGroup, error) {
	var g entity.ProductGroup
	err := r.DB.Where("tenant_id = ?", tenantID).
		Preload("Items").
		First(&g, groupID).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *CatalogRepository) CreateGroup(g *entity.ProductGroup) error {
	return r.DB.Create(g).Error
}

func (r *CatalogRepository) Categories(tenantID uint) ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Where("tenant_id = ?", tenantID).
		Order("sort_order, name").
		Find(&cats).Error
	return cats, err
}

// ListAvailableProducts backs the public menu: available items only,
// option groups preloaded for display.
func (r *CatalogRepository) ListAvailableProducts(tenantID uint) ([]entity.Product, error) {
	var products []entity.Product
	err := r.DB.Where("tenant_id = ? AND is_available = ?", tenantID, true).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("product_options.id") }).
		Preload("Options.Items").
		Order("category_id, name").
		Find(&products).Error
	return products, err
}
