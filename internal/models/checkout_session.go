package models

import (
	"time"

	"gorm.io/gorm"
)

// CheckoutSession 结算会话（对应外部支付会话，一个归属同一时刻至多一个在途会话）
type CheckoutSession struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                  // 主键
	OwnerID     string         `gorm:"not null;index" json:"owner_id"`                        // 归属标识
	OrderID     uint           `gorm:"not null;index" json:"order_id"`                        // 关联订单
	SessionID   string         `gorm:"uniqueIndex;not null" json:"session_id"`                // 外部支付会话ID
	RedirectURL string         `gorm:"type:text" json:"redirect_url"`                         // 支付跳转地址
	Status      string         `gorm:"type:varchar(30);not null;index" json:"status"`         // 状态（awaiting_payment/confirmed/abandoned/failed）
	AmountCents int64          `gorm:"not null" json:"amount_cents"`                          // 应付金额（分），用于回查核验
	ExpiresAt   time.Time      `gorm:"index" json:"expires_at"`                               // 超期时间（worker 扫描回收）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                            // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间
}

// TableName 指定表名
func (CheckoutSession) TableName() string {
	return "checkout_sessions"
}
