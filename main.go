package main

import (
	"context"

	"github.com/WA-TLE/interstellar-diet/configs"
	"github.com/WA-TLE/interstellar-diet/controllers"
	"github.com/WA-TLE/interstellar-diet/pkg/cache"
	"github.com/WA-TLE/interstellar-diet/pkg/logger"
	"github.com/WA-TLE/interstellar-diet/repository"
	"github.com/WA-TLE/interstellar-diet/routes"
	"github.com/WA-TLE/interstellar-diet/services"
	"github.com/WA-TLE/interstellar-diet/tasks"
	"github.com/WA-TLE/interstellar-diet/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()

	logger.Init(cfg.Env)
	defer logger.Sync()
	log := logger.L()

	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()
	if err := configs.SeedAdmin(); err != nil {
		log.Fatal("seed admin", zap.Error(err))
	}
	if err := configs.SeedCatalog(); err != nil {
		log.Fatal("seed catalog", zap.Error(err))
	}
	db := configs.DB()

	rdb := configs.NewRedisClient(cfg.RedisAddr)
	store := cache.NewRedis(rdb)

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	addrRepo := repository.NewAddressRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	userRepo := repository.NewUserRepository(db)
	empRepo := repository.NewEmployeeRepository(db)

	hub := ws.NewOrderHub()

	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, addrRepo, services.MockGateway{}, hub, log)
	cartSvc := services.NewCartService(db, cartRepo, catalogRepo, log)
	catalogSvc := services.NewCatalogService(catalogRepo, store, log)
	authSvc := services.NewAuthService(userRepo, empRepo, cfg.JWTSecret, cfg.JWTTTL)

	task := tasks.NewOrderTask(orderRepo, log, cfg.PaymentWindow, cfg.DeliveryWindow, cfg.PaymentEvery, cfg.DeliveryEvery)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	task.Start(ctx)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Cart:     controllers.NewCartController(cartSvc),
		Order:    controllers.NewOrderController(orderSvc),
		Address:  controllers.NewAddressController(addrRepo),
		Dish:     controllers.NewDishController(catalogSvc),
		Employee: controllers.NewAdminEmployeeController(authSvc),

		AdminOrder:    controllers.NewAdminOrderController(orderSvc),
		AdminDish:     controllers.NewAdminDishController(catalogSvc),
		AdminSetmeal:  controllers.NewAdminSetmealController(catalogSvc),
		AdminCategory: controllers.NewAdminCategoryController(catalogSvc),
	}, hub, cfg.JWTSecret)

	log.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
