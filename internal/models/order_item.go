package models

import (
	"time"
)

// OrderItem 订单项（下单时对账结果的快照）
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                   // 主键
	OrderID   uint      `gorm:"not null;index" json:"order_id"`                         // 订单ID
	ProductID uint      `gorm:"not null;index" json:"product_id"`                       // 商品ID
	Name      string    `gorm:"not null" json:"name"`                                   // 商品名称快照
	Variant   string    `gorm:"type:varchar(120)" json:"variant"`                       // 规格描述
	UnitPrice Money     `gorm:"type:decimal(20,2);not null" json:"unit_price"`          // 成交单价
	Quantity  int       `gorm:"not null" json:"quantity"`                               // 数量
	ImageURL  string    `gorm:"type:text" json:"image_url"`                             // 图片快照
	CreatedAt time.Time `json:"created_at"`                                             // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                             // 更新时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
