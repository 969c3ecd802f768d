package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RafaelMendes244/RMPedidos/pkg/resp"
	"github.com/RafaelMendes244/RMPedidos/services"
)

// OrderController is the public storefront surface: order submission
// and customer history. Everything here is unauthenticated and rate
// limited upstream.
type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// POST /store/:slug/orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid order data. Please review and try again.")
		return
	}

	out, err := oc.Orders.Create(c.Param("slug"), &req, time.Now())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /store/:slug/orders/history?phone=
func (oc *OrderController) History(c *gin.Context) {
	orders, err := oc.Orders.HistoryByPhone(c.Param("slug"), c.Query("phone"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}
