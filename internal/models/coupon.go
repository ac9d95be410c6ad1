package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon 优惠码（固定金额直减，不叠加）
type Coupon struct {
	ID        uint           `gorm:"primarykey" json:"id"`                               // 主键
	Code      string         `gorm:"uniqueIndex;not null" json:"code"`                   // 优惠码（存储为大写，匹配不区分大小写）
	Amount    Money          `gorm:"type:decimal(20,2);not null" json:"amount"`          // 直减金额
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`             // 是否启用
	StartsAt  *time.Time     `gorm:"index" json:"starts_at"`                             // 生效时间
	EndsAt    *time.Time     `gorm:"index" json:"ends_at"`                               // 失效时间
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}
