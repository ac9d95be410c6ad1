package models

import (
	"time"

	"gorm.io/gorm"
)

// CartLine 购物车行
// 金额以商品查询结果为准，这里仅允许持久化展示提示价（display_price_hint），不参与计算。
type CartLine struct {
	ID               string         `gorm:"primarykey;type:varchar(36)" json:"id"`                      // 行ID（uuid，数量变更时保持稳定）
	OwnerID          string         `gorm:"not null;index:idx_cart_owner" json:"owner_id"`              // 归属标识（user:<id> 或 guest:<uuid>）
	ProductID        uint           `gorm:"not null;index" json:"product_id"`                           // 商品ID
	Quantity         int            `gorm:"not null" json:"quantity"`                                   // 数量（≥1）
	Variant          string         `gorm:"type:varchar(120);not null;default:''" json:"variant"`       // 规格描述（表带/表盘等），区分同商品的不同行
	DisplayPriceHint Money          `gorm:"type:decimal(20,2);not null;default:0" json:"display_price"` // 展示提示价（非权威）
	Position         int            `gorm:"not null;default:0;index" json:"-"`                          // 插入序号，list 按此排序
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (CartLine) TableName() string {
	return "cart_lines"
}
