package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
	"github.com/RafaelMendes244/RMPedidos/repository"
)

const maxLineQuantity = 999

// PricingService is the catalog price authority: the unit price of a
// cart line is re-derived from stored product and option rows. Prices
// attached by the client are never read.
type PricingService struct {
	Catalog *repository.CatalogRepository
}

func NewPricingService(catalog *repository.CatalogRepository) *PricingService {
	return &PricingService{Catalog: catalog}
}

// PricedLine is the server-side truth for one cart line.
type PricedLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal // base + matched options
	OptionsText string          // client labels, matched or not
	Observation string
}

// PriceLine resolves one cart line. Option labels are matched exactly
// (case-insensitive) against the product's option items, ignoring a
// trailing parenthesized display suffix like "Bacon (3x)". A matched
// item adds its stored price; an unmatched label is kept in the receipt
// text but adds nothing.
func (s *PricingService) PriceLine(tenantID, productID uint, optionNames []string, quantity int, observation string) (*PricedLine, error) {
	if quantity <= 0 || quantity > maxLineQuantity {
		return nil, apperr.New(apperr.Validation, "Invalid quantity in cart")
	}

	product, err := s.Catalog.GetProduct(tenantID, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound,
				fmt.Sprintf("Product %d no longer exists or was removed", productID))
		}
		return nil, apperr.Wrap(apperr.Unexpected, "could not load product", err)
	}
	if !product.IsAvailable {
		return nil, apperr.New(apperr.BusinessRule,
			fmt.Sprintf("%s just became unavailable", product.Name))
	}

	unitPrice := product.Price
	var optionsText []string

	if len(optionNames) > 0 {
		items, err := s.Catalog.OptionItemsForProduct(product.ID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Unexpected, "could not load product options", err)
		}
		for _, label := range optionNames {
			if item := matchOptionItem(items, label); item != nil {
				unitPrice = unitPrice.Add(item.Price)
			}
			// keep the client's label (quantity annotation included)
			// either way; unmatched labels are simply never priced
			optionsText = append(optionsText, label)
		}
	}

	return &PricedLine{
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		OptionsText: strings.Join(optionsText, ", "),
		Observation: observation,
	}, nil
}

// matchOptionItem compares the label against stored item names, exact
// and case-insensitive, after dropping a "(...)" display suffix.
func matchOptionItem(items []entity.OptionItem, label string) *entity.OptionItem {
	clean := cleanOptionLabel(label)
	for i := range items {
		if strings.EqualFold(items[i].Name, clean) {
			return &items[i]
		}
	}
	return nil
}

// cleanOptionLabel strips a trailing parenthesized quantity used purely
// for display: "Bacon (3x)" -> "Bacon".
func cleanOptionLabel(label string) string {
	if idx := strings.Index(label, " ("); idx >= 0 {
		label = label[:idx]
	}
	return strings.TrimSpace(label)
}
