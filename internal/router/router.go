package router

import (
	"time"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/config"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/handler"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/middleware"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/repository"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/service"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	operatorRepo := repository.NewOperatorRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	caches := service.NewRedisCache(rdb)

	authSvc := service.NewAuthService(operatorRepo, cfg)
	productSvc := service.NewProductService(productRepo, movementRepo, caches)
	categorySvc := service.NewCategoryService(categoryRepo)
	customerSvc := service.NewCustomerService(customerRepo, saleRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, customerRepo, movementRepo, dispatcher, caches, cfg.PDFStoragePath)
	movementSvc := service.NewStockMovementService(movementRepo)
	dashboardSvc := service.NewDashboardService(dashboardRepo, caches)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	salesH := handler.NewSalesHandler(saleSvc, movementSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/code/:code", productsH.LookupByCode)
			products.GET("/:id", productsH.GetByID)
			products.PUT("/:id", productsH.Update)
			products.PATCH("/:id/stock", productsH.AdjustStock)
		}

		categories := v1.Group("/categories")
		{
			categories.POST("", categoriesH.Create)
			categories.GET("", categoriesH.List)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.GetByID)
			customers.POST("/:id/reconcile", customersH.Reconcile)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.Record)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.GetByID)
			sales.GET("/:id/receipt", salesH.Receipt)
		}

		v1.GET("/stock/movements", salesH.ListMovements)
		v1.GET("/dashboard/summary", dashboardH.Summary)
	}

	return r
}
