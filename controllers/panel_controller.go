package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RafaelMendes244/RMPedidos/pkg/resp"
	"github.com/RafaelMendes244/RMPedidos/services"
	"github.com/RafaelMendes244/RMPedidos/utils"
)

// PanelController is the staff side: order queue, status moves, the
// open/close switch.
type PanelController struct {
	Orders *services.OrderService
	Store  *services.StoreService
}

func NewPanelController(orders *services.OrderService, store *services.StoreService) *PanelController {
	return &PanelController{Orders: orders, Store: store}
}

// GET /panel/stores/:id/orders?status=&page=&limit=
func (pc *PanelController) ListOrders(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := pc.Orders.ListForTenant(utils.CurrentUserID(c), tenantID, c.Query("status"), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /panel/stores/:id/orders/:orderId
func (pc *PanelController) OrderDetail(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}
	order, err := pc.Orders.DetailForTenant(utils.CurrentUserID(c), tenantID, orderID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /panel/stores/:id/orders/:orderId/status
func (pc *PanelController) SetOrderStatus(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Status is required")
		return
	}
	applied, err := pc.Orders.SetStatus(utils.CurrentUserID(c), tenantID, orderID, req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"status": applied})
}

// POST /panel/stores/:id/orders/:orderId/advance
func (pc *PanelController) AdvanceOrder(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}
	applied, err := pc.Orders.Advance(utils.CurrentUserID(c), tenantID, orderID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"status": applied})
}

// POST /panel/stores/:id/orders/:orderId/printed
func (pc *PanelController) MarkPrinted(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}
	if err := pc.Orders.MarkPrinted(utils.CurrentUserID(c), tenantID, orderID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"printed": true})
}

type toggleOpenReq struct {
	Open *bool `json:"open" binding:"required"`
}

// PUT /panel/stores/:id/open
func (pc *PanelController) ToggleOpen(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req toggleOpenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Open flag is required")
		return
	}
	tenant, err := pc.Store.ToggleOpen(utils.CurrentUserID(c), tenantID, *req.Open)
	if err != nil {
		resp.Error(c, err)
		return
	}
	status, err := pc.Store.PublicStatus(tenant.Slug, time.Now())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, status)
}
