package services

import (
	"github.com/shopspring/decimal"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/repository"
	"github.com/RafaelMendes244/RMPedidos/utils"
)

// FeeService resolves the delivery fee for an order. Unknown
// neighborhoods cost zero; the store owner eats the mistake rather
// than the customer being blocked.
type FeeService struct {
	TenantRepo *repository.TenantRepository
}

func NewFeeService(tenantRepo *repository.TenantRepository) *FeeService {
	return &FeeService{TenantRepo: tenantRepo}
}

func (s *FeeService) ResolveFee(tenantID uint, orderType, neighborhood string) (decimal.Decimal, error) {
	// table orders never pay delivery, whatever the client sent
	if orderType == entity.ChannelTable || orderType == entity.ChannelPickup {
		return decimal.Zero, nil
	}
	if neighborhood == "" {
		return decimal.Zero, nil
	}

	fees, err := s.TenantRepo.DeliveryFees(tenantID)
	if err != nil {
		return decimal.Zero, err
	}

	want := utils.NormalizeText(neighborhood)
	for _, fee := range fees {
		if utils.NormalizeText(fee.Neighborhood) == want {
			return fee.Fee, nil
		}
	}
	return decimal.Zero, nil
}
