package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`                         // 订单号
	OwnerID       string         `gorm:"not null;index" json:"owner_id"`                               // 归属标识
	Status        string         `gorm:"type:varchar(30);not null;index" json:"status"`                // 状态
	Subtotal      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // 商品小计
	ShippingFee   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`    // 运费
	Tax           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`             // 税费
	Discount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`        // 优惠金额
	Total         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`           // 应付总额
	Currency      string         `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`      // 币种
	CouponCode    string         `gorm:"type:varchar(60)" json:"coupon_code"`                          // 使用的优惠码
	DeliveryCode  string         `gorm:"type:varchar(30)" json:"delivery_code"`                        // 配送方式
	CustomerEmail string         `gorm:"not null" json:"customer_email"`                               // 客户邮箱
	CustomerName  string         `json:"customer_name"`                                                // 客户姓名
	CustomerPhone string         `json:"customer_phone"`                                               // 客户电话
	ShippingAddr  string         `gorm:"type:text" json:"shipping_addr"`                               // 收货地址
	PaidAt        *time.Time     `json:"paid_at"`                                                      // 支付完成时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
