package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace/internal/audit"
	"github.com/BruksfildServices01/marketplace/internal/config"
	"github.com/BruksfildServices01/marketplace/internal/handlers"
	"github.com/BruksfildServices01/marketplace/internal/infra/blob"
	"github.com/BruksfildServices01/marketplace/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace/internal/metrics"
	"github.com/BruksfildServices01/marketplace/internal/middleware"
	"github.com/BruksfildServices01/marketplace/internal/models"
	"github.com/BruksfildServices01/marketplace/internal/session"
	"github.com/BruksfildServices01/marketplace/internal/timezone"
	ucAccount "github.com/BruksfildServices01/marketplace/internal/usecase/account"
	ucAudit "github.com/BruksfildServices01/marketplace/internal/usecase/audit"
	ucProduct "github.com/BruksfildServices01/marketplace/internal/usecase/product"
	ucSale "github.com/BruksfildServices01/marketplace/internal/usecase/sale"
	ucSeller "github.com/BruksfildServices01/marketplace/internal/usecase/seller"
)

// Infra groups the collaborators built outside the router, so that tests
// can swap them.
type Infra struct {
	Log      logrus.FieldLogger
	Sessions *session.Manager
	Audit    *audit.Dispatcher
	Images   ucProduct.ImageProcessor
	Uploader blob.Uploader
	Checkout payment.Checkout // nil disables checkout
	Clock    timezone.Clock
	Limiter  *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// INFRA
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(db)
	productRepo := infraRepo.NewProductGormRepository(db)
	saleRepo := infraRepo.NewSaleGormRepository(db)
	auditRepo := infraRepo.NewAuditGormRepository(db)

	clock := infra.Clock
	if clock == nil {
		clock = timezone.NewClock(cfg.Timezone)
	}

	limiter := infra.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(cfg.LoginRatePerMin)
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.Session(infra.Sessions, userRepo))

	// ======================================================
	// USE CASES
	// ======================================================
	registerUC := ucAccount.NewRegister(userRepo, infra.Audit, cfg.CheckEmailDomain)
	loginUC := ucAccount.NewLogin(userRepo)
	getUserUC := ucAccount.NewGetUser(userRepo)

	listProductsUC := ucProduct.NewListProducts(productRepo)
	searchProductsUC := ucProduct.NewSearchProducts(productRepo)
	createProductUC := ucProduct.NewCreateProduct(productRepo, infra.Images, infra.Uploader, infra.Audit)
	deleteProductUC := ucProduct.NewDeleteProduct(productRepo, infra.Audit, infra.Log)
	markSoldUC := ucProduct.NewMarkSold(productRepo, infra.Audit, clock)
	sellerProductsUC := ucProduct.NewListSellerProducts(productRepo)
	checkoutUC := ucProduct.NewStartCheckout(productRepo, infra.Checkout)

	getSaleUC := ucSale.NewGetSale(saleRepo)
	sellerSalesUC := ucSale.NewListSellerSales(saleRepo)
	purchasesUC := ucSale.NewListPurchases(saleRepo)
	claimSaleUC := ucSale.NewClaimSale(saleRepo, infra.Audit)

	listSellersUC := ucSeller.NewListSellers(userRepo)
	createSellerUC := ucSeller.NewCreateSeller(userRepo, infra.Audit)
	deleteSellerUC := ucSeller.NewDeleteSeller(userRepo, infra.Audit)

	auditLogsUC := ucAudit.NewListAuditLogs(auditRepo, timezone.Location(cfg.Timezone))

	// ======================================================
	// HANDLERS
	// ======================================================
	accountHandler := handlers.NewAccountHandler(registerUC, loginUC, getUserUC, infra.Sessions)

	productHandler := handlers.NewProductHandler(
		listProductsUC,
		searchProductsUC,
		createProductUC,
		deleteProductUC,
		markSoldUC,
		sellerProductsUC,
		checkoutUC,
		cfg.MaxUploadBytes,
	)

	saleHandler := handlers.NewSaleHandler(getSaleUC, sellerSalesUC, purchasesUC, claimSaleUC)
	sellerHandler := handlers.NewSellerHandler(listSellersUC, createSellerUC, deleteSellerUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogsUC)

	// ======================================================
	// INFRA ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.BlobDriver == "local" {
		r.Static("/uploads", cfg.UploadDir)
	}

	api := r.Group("/api")

	// ======================================================
	// AUTH
	// ======================================================
	auth := api.Group("/auth")
	{
		auth.POST("/register", accountHandler.Register)
		auth.POST("/login", limiter.Handler(), accountHandler.Login)
		auth.POST("/logout", accountHandler.Logout)
	}

	// ======================================================
	// PUBLIC CATALOG
	// ======================================================
	api.GET("/products", productHandler.List)
	api.GET("/products/search", productHandler.Search)

	// ======================================================
	// SESSION
	// ======================================================
	authed := api.Group("")
	authed.Use(middleware.RequireSession())
	{
		authed.GET("/me", accountHandler.Me)
		authed.GET("/sales/:id", saleHandler.Get)
	}

	// ======================================================
	// SELLER
	// ======================================================
	seller := api.Group("")
	seller.Use(middleware.RequireRole(models.RoleSeller))
	{
		seller.POST("/products", productHandler.Create)
		seller.GET("/me/products", productHandler.Mine)
		seller.POST("/products/:id/delete", productHandler.Delete)
		seller.DELETE("/products/:id", productHandler.Delete)
		seller.POST("/products/:id/sold", productHandler.MarkSold)
		seller.GET("/me/sales", saleHandler.History)
	}

	// ======================================================
	// BUYER
	// ======================================================
	buyer := api.Group("")
	buyer.Use(middleware.RequireRole(models.RoleBuyer))
	{
		buyer.POST("/products/:id/checkout", productHandler.Checkout)
		buyer.POST("/sales/:id/claim", saleHandler.Claim)
		buyer.GET("/me/purchases", saleHandler.Purchases)
	}

	// ======================================================
	// ADMIN
	// ======================================================
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/sellers", sellerHandler.List)
		admin.POST("/sellers", sellerHandler.Create)
		admin.POST("/sellers/:id/delete", sellerHandler.Delete)
		admin.DELETE("/sellers/:id", sellerHandler.Delete)
		admin.GET("/audit-logs", auditLogsHandler.List)
	}
}
