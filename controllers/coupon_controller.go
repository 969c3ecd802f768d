package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/RafaelMendes244/RMPedidos/pkg/resp"
	"github.com/RafaelMendes244/RMPedidos/repository"
	"github.com/RafaelMendes244/RMPedidos/services"
	"github.com/RafaelMendes244/RMPedidos/utils"
)

type CouponController struct {
	Coupons    *services.CouponService
	TenantRepo *repository.TenantRepository
}

func NewCouponController(coupons *services.CouponService, tenantRepo *repository.TenantRepository) *CouponController {
	return &CouponController{Coupons: coupons, TenantRepo: tenantRepo}
}

type couponQuoteReq struct {
	Code       string          `json:"code" binding:"required"`
	OrderValue decimal.Decimal `json:"orderValue"`
}

// POST /store/:slug/coupons/validate: the storefront pre-check. The usage
// counter only moves when the order commits.
func (cc *CouponController) Quote(c *gin.Context) {
	var req couponQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Coupon code is required")
		return
	}

	tenant, err := cc.TenantRepo.FindBySlug(c.Param("slug"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			resp.NotFound(c, "Store not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	quote, err := cc.Coupons.Quote(tenant.ID, req.Code, req.OrderValue, time.Now())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, quote)
}

// ---------------- Owner management ----------------

// GET /panel/stores/:id/coupons
func (cc *CouponController) List(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	coupons, err := cc.Coupons.ListForOwner(utils.CurrentUserID(c), tenantID, time.Now())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, coupons)
}

// POST /panel/stores/:id/coupons
func (cc *CouponController) Create(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.CouponIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "Invalid coupon data")
		return
	}
	coupon, err := cc.Coupons.CreateForOwner(utils.CurrentUserID(c), tenantID, &in, time.Now())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, coupon)
}

// PUT /panel/stores/:id/coupons/:couponId
func (cc *CouponController) Update(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	couponID, ok := uintParam(c, "couponId")
	if !ok {
		return
	}
	var in services.CouponIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "Invalid coupon data")
		return
	}
	coupon, err := cc.Coupons.UpdateForOwner(utils.CurrentUserID(c), tenantID, couponID, &in, time.Now())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, coupon)
}

// DELETE /panel/stores/:id/coupons/:couponId
func (cc *CouponController) Delete(c *gin.Context) {
	tenantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	couponID, ok := uintParam(c, "couponId")
	if !ok {
		return
	}
	if err := cc.Coupons.DeleteForOwner(utils.CurrentUserID(c), tenantID, couponID, time.Now()); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		resp.BadRequest(c, "Invalid id")
		return 0, false
	}
	return uint(v), true
}
