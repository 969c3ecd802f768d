package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/RafaelMendes244/RMPedidos/pkg/resp"
	"github.com/RafaelMendes244/RMPedidos/services"
	"github.com/RafaelMendes244/RMPedidos/utils"
)

// SettingsController manages the per-store configuration: weekly
// schedule, delivery fees, tables, option group templates.
type SettingsController struct {
	Store   *services.StoreService
	Catalog *services.CatalogService
}

func NewSettingsController(store *services.StoreService, catalog *services.CatalogService) *SettingsController {
	return &SettingsController{Store: store, Catalog: catalog}
}

type saveHoursReq struct {
	Rules []services.DayRuleIn `json:"rules" binding:"required,min=1"`
}

// PUT /panel/stores/:id/hours
func (sc *SettingsController) SaveHours(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req saveHoursReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid schedule data")
		return
	}
	if err := sc.Store.SaveHours(utils.CurrentUserID(c), tenantID, req.Rules); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"saved": true})
}

// ---------------- Delivery fees ----------------

// GET /panel/stores/:id/fees
func (sc *SettingsController) ListFees(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	fees, err := sc.Store.ListFees(utils.CurrentUserID(c), tenantID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, fees)
}

type feeReq struct {
	Neighborhood string          `json:"neighborhood" binding:"required"`
	Fee          decimal.Decimal `json:"fee"`
}

// PUT /panel/stores/:id/fees: upsert by normalized neighborhood
func (sc *SettingsController) SaveFee(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req feeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid fee data")
		return
	}
	if err := sc.Store.SaveFee(utils.CurrentUserID(c), tenantID, req.Neighborhood, req.Fee); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"saved": true})
}

// DELETE /panel/stores/:id/fees/:feeId
func (sc *SettingsController) DeleteFee(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	feeID, ok := uintParam(c, "feeId")
	if !ok {
		return
	}
	if err := sc.Store.DeleteFee(utils.CurrentUserID(c), tenantID, feeID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// ---------------- Tables ----------------

// GET /panel/stores/:id/tables
func (sc *SettingsController) ListTables(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	tables, err := sc.Store.ListTables(utils.CurrentUserID(c), tenantID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, tables)
}

type tableReq struct {
	Number   int `json:"number" binding:"required"`
	Capacity int `json:"capacity"`
}

// POST /panel/stores/:id/tables
func (sc *SettingsController) CreateTable(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req tableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid table data")
		return
	}
	table, err := sc.Store.CreateTable(utils.CurrentUserID(c), tenantID, req.Number, req.Capacity)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, table)
}

// ---------------- Option group templates ----------------

// GET /panel/stores/:id/groups
func (sc *SettingsController) ListGroups(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	groups, err := sc.Catalog.ListGroups(utils.CurrentUserID(c), tenantID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, groups)
}

// POST /panel/stores/:id/groups
func (sc *SettingsController) CreateGroup(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.GroupIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "Invalid option group data")
		return
	}
	group, err := sc.Catalog.CreateGroup(utils.CurrentUserID(c), tenantID, &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, group)
}

type importGroupReq struct {
	GroupID uint `json:"groupId" binding:"required"`
}

// POST /panel/stores/:id/products/:productId/import-group
func (sc *SettingsController) ImportGroup(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	productID, ok := uintParam(c, "productId")
	if !ok {
		return
	}
	var req importGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Group id is required")
		return
	}
	option, err := sc.Catalog.ImportGroup(utils.CurrentUserID(c), tenantID, productID, req.GroupID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, option)
}

// PATCH /panel/stores/:id/tables/:tableId/toggle
func (sc *SettingsController) ToggleTable(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	tableID, ok := uintParam(c, "tableId")
	if !ok {
		return
	}
	active, err := sc.Store.ToggleTable(utils.CurrentUserID(c), tenantID, tableID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"isActive": active})
}
