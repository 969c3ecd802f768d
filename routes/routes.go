package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/RafaelMendes244/RMPedidos/controllers"
	"github.com/RafaelMendes244/RMPedidos/middlewares"
	"github.com/RafaelMendes244/RMPedidos/ws"
)

type Deps struct {
	JWTSecret string
	Limiter   *middlewares.RateLimiter

	Auth     *controllers.AuthController
	Store    *controllers.StoreController
	Orders   *controllers.OrderController
	Coupons  *controllers.CouponController
	Panel    *controllers.PanelController
	Settings *controllers.SettingsController
	Hub      *ws.OrderHub
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// ----- auth -----
	auth := r.Group("/auth")
	{
		auth.POST("/login", d.Auth.Login)
		auth.GET("/me", middlewares.AuthMiddleware(d.JWTSecret), d.Auth.Me)
	}

	// ----- public storefront -----
	store := r.Group("/store/:slug")
	{
		store.GET("/status", d.Store.Status)
		store.GET("/menu", d.Store.Menu)
		store.POST("/coupons/validate", d.Coupons.Quote)
		store.GET("/orders/history", d.Orders.History)
		// the limiter runs before anything else touches the submission
		store.POST("/orders", d.Limiter.Handler(), d.Orders.Create)
	}

	// ----- owner panel -----
	panel := r.Group("/panel", middlewares.AuthMiddleware(d.JWTSecret, "owner", "admin"))
	{
		stores := panel.Group("/stores/:id")

		stores.GET("/orders", d.Panel.ListOrders)
		stores.GET("/orders/:orderId", d.Panel.OrderDetail)
		stores.PATCH("/orders/:orderId/status", d.Panel.SetOrderStatus)
		stores.POST("/orders/:orderId/advance", d.Panel.AdvanceOrder)
		stores.POST("/orders/:orderId/printed", d.Panel.MarkPrinted)
		stores.PUT("/open", d.Panel.ToggleOpen)

		stores.PUT("/hours", d.Settings.SaveHours)
		stores.GET("/fees", d.Settings.ListFees)
		stores.PUT("/fees", d.Settings.SaveFee)
		stores.DELETE("/fees/:feeId", d.Settings.DeleteFee)
		stores.GET("/tables", d.Settings.ListTables)
		stores.POST("/tables", d.Settings.CreateTable)
		stores.PATCH("/tables/:tableId/toggle", d.Settings.ToggleTable)

		stores.GET("/groups", d.Settings.ListGroups)
		stores.POST("/groups", d.Settings.CreateGroup)
		stores.POST("/products/:productId/import-group", d.Settings.ImportGroup)

		stores.GET("/coupons", d.Coupons.List)
		stores.POST("/coupons", d.Coupons.Create)
		stores.PUT("/coupons/:couponId", d.Coupons.Update)
		stores.DELETE("/coupons/:couponId", d.Coupons.Delete)
	}

	// ----- live order feed for the panel -----
	r.GET("/ws/stores/:id/orders", middlewares.WSAuthMiddleware(d.JWTSecret), d.Hub.HandleWebSocket)
}
