package main

import (
	"time"

	"github.com/watchhub/watchhub/internal/config"
	"github.com/watchhub/watchhub/internal/logger"
	"github.com/watchhub/watchhub/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加商品
	products := []models.Product{
		{
			Slug:          "meridian-field-40",
			Name:          "Meridian Field Watch 40mm",
			Brand:         "Meridian",
			Description:   "Rugged field watch with a brushed steel case, sapphire crystal and a hand-wound mechanical movement.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(129.00)),
			OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(159.00)),
			ImageURL:      "https://images.unsplash.com/photo-1524592094714-0f0654e20314?w=800",
			StockQuantity: 25,
			IsActive:      true,
			SortOrder:     10,
		},
		{
			Slug:          "atlas-diver-42",
			Name:          "Atlas Diver 42mm",
			Brand:         "Atlas",
			Description:   "300m dive watch with unidirectional bezel, lume markers and a solid link bracelet.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(349.00)),
			OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(399.00)),
			ImageURL:      "https://images.unsplash.com/photo-1547996160-81dfa63595aa?w=800",
			StockQuantity: 12,
			IsActive:      true,
			SortOrder:     20,
		},
		{
			Slug:          "orbita-chrono-44",
			Name:          "Orbita Chronograph 44mm",
			Brand:         "Orbita",
			Description:   "Tri-register quartz chronograph with tachymeter bezel and perforated leather strap.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(219.50)),
			OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(219.50)),
			ImageURL:      "https://images.unsplash.com/photo-1522312346375-d1a52e2b99b3?w=800",
			StockQuantity: 18,
			IsActive:      true,
			SortOrder:     30,
		},
		{
			Slug:          "lumen-minimal-38",
			Name:          "Lumen Minimal 38mm",
			Brand:         "Lumen",
			Description:   "Slim bauhaus dress watch with a domed crystal and quick-release mesh band.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(89.00)),
			OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(89.00)),
			ImageURL:      "https://images.unsplash.com/photo-1508057198894-247b23fe5ade?w=800",
			StockQuantity: 40,
			IsActive:      true,
			SortOrder:     40,
		},
		{
			Slug:          "meridian-gmt-41",
			Name:          "Meridian GMT Traveler 41mm",
			Brand:         "Meridian",
			Description:   "Dual time zone automatic with a two-tone 24h bezel. Limited production run.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(499.00)),
			OriginalPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(549.00)),
			ImageURL:      "https://images.unsplash.com/photo-1614164185128-e4ec99c436d7?w=800",
			StockQuantity: 0,
			IsActive:      true,
			SortOrder:     50,
		},
	}

	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", p.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", p.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", p.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", p.Slug)
		}
	}

	// 添加优惠码
	yearEnd := time.Date(time.Now().Year()+1, 1, 1, 0, 0, 0, 0, time.UTC)
	coupons := []models.Coupon{
		{Code: "SAVE10", Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), IsActive: true, EndsAt: &yearEnd},
		{Code: "WELCOME20", Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(20)), IsActive: true, EndsAt: &yearEnd},
		{Code: "FIRST15", Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(15)), IsActive: true, EndsAt: &yearEnd},
	}

	for _, cp := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", cp.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cp).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", cp.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", cp.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", cp.Code)
		}
	}

	// 添加配送方式
	deliveries := []models.DeliveryOption{
		{Code: "standard", Name: "Standard Shipping", FlatFee: models.NewMoneyFromCents(0), ETA: "5-7 business days", IsActive: true, SortOrder: 10},
		{Code: "express", Name: "Express Shipping", FlatFee: models.NewMoneyFromDecimal(decimal.NewFromFloat(15.99)), ETA: "2-3 business days", IsActive: true, SortOrder: 20},
		{Code: "overnight", Name: "Overnight Shipping", FlatFee: models.NewMoneyFromDecimal(decimal.NewFromFloat(29.99)), ETA: "Next business day", IsActive: true, SortOrder: 30},
	}

	for _, d := range deliveries {
		var existing models.DeliveryOption
		if err := models.DB.Where("code = ?", d.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&d).Error; err != nil {
				stdLog.Printf("Failed to create delivery option %s: %v", d.Code, err)
			} else {
				stdLog.Printf("Created delivery option: %s", d.Code)
			}
		} else {
			stdLog.Printf("Delivery option already exists: %s", d.Code)
		}
	}

	stdLog.Println("Seed data complete")
}
