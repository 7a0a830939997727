package models

import "time"

// Order 配送订单表
type Order struct {
	ID               uint      `gorm:"primarykey" json:"id"`                 // 主键
	OrderNo          int       `gorm:"uniqueIndex;not null" json:"order_no"` // 业务订单编号
	Value            Money     `gorm:"type:decimal(12,2);not null" json:"value"` // 订单金额
	RouteID          uint      `gorm:"not null;index" json:"route_id"`       // 所属路线
	Route            *Route    `gorm:"foreignKey:RouteID" json:"route,omitempty"`
	DeliveryTime     string    `gorm:"type:varchar(5);not null" json:"delivery_time"` // 实际配送耗时（HH:MM）
	AssignedDriverID *uint     `gorm:"index" json:"assigned_driver_id"`      // 预分配司机（模拟不使用）
	CreatedAt        time.Time `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt        time.Time `json:"updated_at"`                           // 更新时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
