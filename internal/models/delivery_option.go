package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliveryOption 配送方式（单选；默认选中运费为 0 的项，否则取排序第一项）
type DeliveryOption struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                // 主键
	Code      string         `gorm:"uniqueIndex;not null" json:"code"`                    // 标识（standard/express/overnight）
	Name      string         `gorm:"not null" json:"name"`                                // 名称
	FlatFee   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"flat_fee"` // 固定运费
	ETA       string         `gorm:"type:varchar(100)" json:"eta"`                        // 时效描述
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`              // 是否启用
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`                   // 排序权重
	CreatedAt time.Time      `json:"created_at"`                                          // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (DeliveryOption) TableName() string {
	return "delivery_options"
}
