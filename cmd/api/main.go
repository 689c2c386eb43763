package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "resto-pos-backend/internal/adapter/http"
	"resto-pos-backend/internal/adapter/middleware"
	"resto-pos-backend/internal/adapter/repository/mysql"
	"resto-pos-backend/internal/analytics"
	"resto-pos-backend/internal/config"
	"resto-pos-backend/internal/infrastructure/cache"
	"resto-pos-backend/internal/infrastructure/db"
	"resto-pos-backend/internal/transfer"
	"resto-pos-backend/internal/usecase/absence"
	"resto-pos-backend/internal/usecase/addon"
	"resto-pos-backend/internal/usecase/address"
	"resto-pos-backend/internal/usecase/category"
	"resto-pos-backend/internal/usecase/employee"
	"resto-pos-backend/internal/usecase/market"
	"resto-pos-backend/internal/usecase/payment"
	"resto-pos-backend/internal/usecase/product"
	"resto-pos-backend/internal/usecase/restaurant"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	store, err := transfer.NewStore(cfg.ExportDir)
	if err != nil {
		log.Fatalf("export store: %v", err)
	}
	track := analytics.NewRedisTracker(rdb)

	employeeUC := employee.NewUsecase(mysql.NewEmployeeRepository(gdb), store, track)
	paymentUC := payment.NewUsecase(mysql.NewPaymentRepository(gdb), mysql.NewEmployeeRepository(gdb), store, track)
	categoryUC := category.NewUsecase(mysql.NewCategoryRepository(gdb), store, track)
	addressUC := address.NewUsecase(mysql.NewAddressRepository(gdb), track)
	addonUC := addon.NewUsecase(mysql.NewAddOnRepository(gdb), mysql.NewCategoryRepository(gdb), store, track)
	productUC := product.NewUsecase(mysql.NewProductRepository(gdb), mysql.NewCategoryRepository(gdb), store, track)
	marketUC := market.NewUsecase(mysql.NewMarketListRepository(gdb), mysql.NewMarketItemRepository(gdb), store, track)
	absenceUC := absence.NewUsecase(mysql.NewAbsenceRepository(gdb), mysql.NewEmployeeRepository(gdb), track)
	restaurantUC := restaurant.NewUsecase(mysql.NewRestaurantRepository(gdb), track)

	h := httpadp.NewHandler(store, gdb, rdb)
	employeeH := httpadp.NewEmployeeHandler(employeeUC)
	paymentH := httpadp.NewPaymentHandler(paymentUC)
	categoryH := httpadp.NewCategoryHandler(categoryUC)
	addressH := httpadp.NewAddressHandler(addressUC)
	addonH := httpadp.NewAddonHandler(addonUC)
	productH := httpadp.NewProductHandler(productUC)
	marketH := httpadp.NewMarketHandler(marketUC)
	absenceH := httpadp.NewAbsenceHandler(absenceUC)
	restaurantH := httpadp.NewRestaurantHandler(restaurantUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)
	e.GET("/exports", h.ListExports)

	e.POST("/employees", employeeH.Create)
	e.PUT("/employees/:id", employeeH.Update)
	e.GET("/employees/:id", employeeH.Get)
	e.GET("/employees", employeeH.List)
	e.POST("/employees/export", employeeH.Export)
	e.POST("/employees/import", employeeH.Import)

	e.POST("/payments", paymentH.Create)
	e.PUT("/payments/:id", paymentH.Update)
	e.GET("/payments/:id", paymentH.Get)
	e.GET("/payments", paymentH.List)
	e.POST("/payments/export", paymentH.Export)
	e.POST("/payments/import", paymentH.Import)

	e.POST("/categories", categoryH.Create)
	e.PUT("/categories/:id", categoryH.Update)
	e.GET("/categories/:id", categoryH.Get)
	e.GET("/categories", categoryH.List)
	e.POST("/categories/export", categoryH.Export)
	e.POST("/categories/import", categoryH.Import)

	e.POST("/addresses", addressH.Create)
	e.PUT("/addresses/:id", addressH.Update)
	e.GET("/addresses/:id", addressH.Get)
	e.GET("/addresses", addressH.List)

	e.POST("/addons", addonH.Create)
	e.PUT("/addons/:id", addonH.Update)
	e.GET("/addons/:id", addonH.Get)
	e.GET("/addons", addonH.List)
	e.POST("/addons/export", addonH.Export)
	e.POST("/addons/import", addonH.Import)

	e.POST("/products", productH.Create)
	e.PUT("/products/:id", productH.Update)
	e.GET("/products/:id", productH.Get)
	e.GET("/products", productH.List)
	e.POST("/products/export", productH.Export)
	e.POST("/products/import", productH.Import)

	e.POST("/market/lists", marketH.CreateList)
	e.PUT("/market/lists/:id", marketH.UpdateList)
	e.GET("/market/lists/:id", marketH.GetList)
	e.GET("/market/lists", marketH.Lists)
	e.POST("/market/items", marketH.CreateItem)
	e.PUT("/market/items/:id", marketH.UpdateItem)
	e.GET("/market/items/:id", marketH.GetItem)
	e.GET("/market/items", marketH.Items)
	e.POST("/market/items/:id/toggle-purchased", marketH.TogglePurchased)
	e.POST("/market/items/export", marketH.ExportItems)
	e.POST("/market/items/import", marketH.ImportItems)

	e.POST("/absences", absenceH.Create)
	e.PUT("/absences/:id", absenceH.Update)
	e.GET("/absences/:id", absenceH.Get)
	e.GET("/absences", absenceH.List)

	e.GET("/restaurant", restaurantH.Get)
	e.PUT("/restaurant", restaurantH.Put)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
