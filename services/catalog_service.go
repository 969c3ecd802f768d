package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
	"github.com/RafaelMendes244/RMPedidos/repository"
)

// parseMoney accepts "" as zero; anything else must be a non-negative
// decimal amount.
func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, apperr.New(apperr.Validation, "Invalid price")
	}
	return d, nil
}

// CatalogService is the owner side of the catalog: reusable option
// group templates and importing them into products. The pricing
// pipeline never goes through here.
type CatalogService struct {
	DB         *gorm.DB
	Catalog    *repository.CatalogRepository
	TenantRepo *repository.TenantRepository
}

func NewCatalogService(db *gorm.DB, catalog *repository.CatalogRepository, tenantRepo *repository.TenantRepository) *CatalogService {
	return &CatalogService{DB: db, Catalog: catalog, TenantRepo: tenantRepo}
}

type GroupItemIn struct {
	Name  string `json:"name" binding:"required"`
	Price string `json:"price"`
}

type GroupIn struct {
	Name        string        `json:"name" binding:"required"`
	Type        string        `json:"type" binding:"required,oneof=radio checkbox"`
	Required    bool          `json:"required"`
	MaxQuantity int           `json:"maxQuantity"`
	Items       []GroupItemIn `json:"items" binding:"required,min=1"`
}

func (s *CatalogService) ListGroups(userID, tenantID uint) ([]entity.ProductGroup, error) {
	if err := s.owned(userID, tenantID); err != nil {
		return nil, err
	}
	groups, err := s.Catalog.Groups(tenantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not list option groups", err)
	}
	return groups, nil
}

func (s *CatalogService) CreateGroup(userID, tenantID uint, in *GroupIn) (*entity.ProductGroup, error) {
	if err := s.owned(userID, tenantID); err != nil {
		return nil, err
	}
	maxQty := in.MaxQuantity
	if maxQty <= 0 {
		maxQty = 10
	}

	group := &entity.ProductGroup{
		TenantID:    tenantID,
		Name:        in.Name,
		Type:        in.Type,
		Required:    in.Required,
		MaxQuantity: maxQty,
	}
	for _, item := range in.Items {
		price, err := parseMoney(item.Price)
		if err != nil {
			return nil, err
		}
		group.Items = append(group.Items, entity.GroupItem{Name: item.Name, Price: price})
	}

	if err := s.Catalog.CreateGroup(group); err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not create option group", err)
	}
	return group, nil
}

// ImportGroup copies a template into a product as a live option block.
// The copy is detached: later edits to the template do not touch
// products it was already imported into.
func (s *CatalogService) ImportGroup(userID, tenantID, productID, groupID uint) (*entity.ProductOption, error) {
	if err := s.owned(userID, tenantID); err != nil {
		return nil, err
	}

	product, err := s.Catalog.GetProduct(tenantID, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Product not found")
		}
		return nil, apperr.Wrap(apperr.Unexpected, "could not load product", err)
	}

	group, err := s.Catalog.GetGroup(tenantID, groupID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Option group not found")
		}
		return nil, apperr.Wrap(apperr.Unexpected, "could not load option group", err)
	}

	var option *entity.ProductOption
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		option = &entity.ProductOption{
			Title:       group.Name,
			Type:        group.Type,
			Required:    group.Required,
			MaxQuantity: group.MaxQuantity,
			ProductID:   product.ID,
			GroupID:     &group.ID,
		}
		if err := tx.Create(option).Error; err != nil {
			return err
		}
		for _, item := range group.Items {
			oi := entity.OptionItem{
				Name:            item.Name,
				Price:           item.Price,
				ProductOptionID: option.ID,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			option.Items = append(option.Items, oi)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, "could not import option group", err)
	}
	return option, nil
}

func (s *CatalogService) owned(userID, tenantID uint) error {
	ok, err := s.TenantRepo.IsOwnedBy(tenantID, userID)
	if err != nil {
		return apperr.Wrap(apperr.Unexpected, "could not verify store ownership", err)
	}
	if !ok {
		return apperr.New(apperr.Forbidden, "You do not manage this store")
	}
	return nil
}
