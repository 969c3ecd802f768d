package main

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/RafaelMendes244/RMPedidos/configs"
	"github.com/RafaelMendes244/RMPedidos/controllers"
	"github.com/RafaelMendes244/RMPedidos/middlewares"
	"github.com/RafaelMendes244/RMPedidos/repository"
	"github.com/RafaelMendes244/RMPedidos/routes"
	"github.com/RafaelMendes244/RMPedidos/services"
	"github.com/RafaelMendes244/RMPedidos/ws"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		logrus.WithError(err).Fatal("seed admin failed")
	}
	if err := configs.SeedDemoTenant(); err != nil {
		logrus.WithError(err).Fatal("seed demo tenant failed")
	}

	// repositories
	tenantRepo := repository.NewTenantRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)

	// services
	hours := services.NewHoursService()
	pricing := services.NewPricingService(catalogRepo)
	fees := services.NewFeeService(tenantRepo)
	coupons := services.NewCouponService(couponRepo, tenantRepo)
	store := services.NewStoreService(tenantRepo, hours)
	catalog := services.NewCatalogService(db, catalogRepo, tenantRepo)
	orders := services.NewOrderService(db, orderRepo, tenantRepo, couponRepo, pricing, fees, hours, coupons)
	auth := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)

	// live order feed, subscription gated by store ownership
	hub := ws.NewOrderHub(store)
	go hub.Run()
	orders.Notifier = hub

	// per-IP quota on order submissions
	limiter := middlewares.NewRateLimiter(cfg.OrderQuota, cfg.OrderWindow)
	stopCleanup := limiter.StartCleanup(time.Minute, 10*time.Minute)
	defer stopCleanup()

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, routes.Deps{
		JWTSecret: cfg.JWTSecret,
		Limiter:   limiter,
		Auth:      controllers.NewAuthController(auth),
		Store:     controllers.NewStoreController(store, tenantRepo, catalogRepo),
		Orders:    controllers.NewOrderController(orders),
		Coupons:   controllers.NewCouponController(coupons, tenantRepo),
		Panel:     controllers.NewPanelController(orders, store),
		Settings:  controllers.NewSettingsController(store, catalog),
		Hub:       hub,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	logrus.WithField("addr", addr).Info("server running")
	if err := r.Run(addr); err != nil {
		logrus.Fatal(err)
	}
}
