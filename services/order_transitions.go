package services

import (
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/entity"
	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
)

// Legal panel transitions. Each uses a compare-and-swap on the current
// status so two staff clients cannot double-apply the same step.
var orderTransitions = map[string]string{
	entity.StatusPending:        entity.StatusPreparing,
	entity.StatusPreparing:      entity.StatusOutForDelivery,
	entity.StatusOutForDelivery: entity.StatusCompleted,
}

// Advance moves an order one step along the kitchen workflow.
func (s *OrderService) Advance(userID, tenantID, orderID uint) (string, error) {
	return s.transition(userID, tenantID, orderID, func(current string) (string, bool) {
		next, ok := orderTransitions[current]
		return next, ok
	})
}

// Cancel is only legal while the order is still pending.
func (s *OrderService) Cancel(userID, tenantID, orderID uint) (string, error) {
	return s.transition(userID, tenantID, orderID, func(current string) (string, bool) {
		if current != entity.StatusPending {
			return "", false
		}
		return entity.StatusCancelled, true
	})
}

// SetStatus applies an explicit target status when it is a legal move
// from the current one (the panel buttons send the target directly).
func (s *OrderService) SetStatus(userID, tenantID, orderID uint, target string) (string, error) {
	return s.transition(userID, tenantID, orderID, func(current string) (string, bool) {
		if target == entity.StatusCancelled {
			return target, current == entity.StatusPending || current == entity.StatusPreparing
		}
		return target, orderTransitions[current] == target
	})
}

func (s *OrderService) transition(userID, tenantID, orderID uint, pick func(current string) (string, bool)) (string, error) {
	if err := s.ownerCheck(tenantID, userID); err != nil {
		return "", err
	}

	var applied string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetForTenant(tenantID, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Order not found")
			}
			return apperr.Wrap(apperr.Unexpected, "could not load order", err)
		}

		next, ok := pick(o.Status)
		if !ok {
			return apperr.New(apperr.BusinessRule, "This order cannot move to that status")
		}

		swapped, err := s.Repo.UpdateStatusFromTo(tx, o.ID, o.Status, next)
		if err != nil {
			return apperr.Wrap(apperr.Unexpected, "could not update order status", err)
		}
		if !swapped {
			return apperr.New(apperr.Conflict, "The order changed while you were looking at it. Refresh and try again.")
		}
		applied = next
		return nil
	})
	return applied, err
}
