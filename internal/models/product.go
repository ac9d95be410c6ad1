package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（腕表）
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // 主键
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                            // 唯一标识
	Name          string         `gorm:"not null" json:"name"`                                        // 商品名称
	Brand         string         `gorm:"index" json:"brand"`                                          // 品牌
	Description   string         `gorm:"type:text" json:"description"`                                // 描述
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`         // 当前售价
	OriginalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_price"` // 原价（折扣展示用）
	ImageURL      string         `gorm:"type:text" json:"image_url"`                                  // 主图
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`                    // 可售库存
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                         // 是否上架
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                           // 排序权重
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
