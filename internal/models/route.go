package models

import "time"

// Route 配送路线表
type Route struct {
	ID           uint      `gorm:"primarykey" json:"id"`                   // 主键
	RouteNo      int       `gorm:"uniqueIndex;not null" json:"route_no"`   // 业务路线编号
	DistanceKM   int       `gorm:"not null" json:"distance_km"`            // 路线距离（公里）
	TrafficLevel string    `gorm:"not null;index" json:"traffic_level"`    // 交通等级（Low/Medium/High）
	BaseTimeMin  int       `gorm:"not null" json:"base_time_min"`          // 基准配送时长（分钟）
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                             // 更新时间
}

// TableName 指定表名
func (Route) TableName() string {
	return "routes"
}
