package models

import (
	"time"

	"github.com/greencart-logistics/internal/constants"
)

// Driver 司机表
type Driver struct {
	ID            uint       `gorm:"primarykey" json:"id"`                         // 主键
	Name          string     `gorm:"not null;index" json:"name"`                   // 司机姓名
	ShiftHours    int        `gorm:"not null" json:"shift_hours"`                  // 当前班次时长（小时）
	PastWeekHours FloatArray `gorm:"type:json;not null" json:"past_week_hours"`    // 过去一周每日工时（最新在末尾）
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt     time.Time  `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (Driver) TableName() string {
	return "drivers"
}

// LatestDayHours 返回过去一周最近一天的工时，无记录时为 0
func (d *Driver) LatestDayHours() float64 {
	if d == nil || len(d.PastWeekHours) == 0 {
		return 0
	}
	return d.PastWeekHours[len(d.PastWeekHours)-1]
}

// IsOverworked 判断司机最近一天工时是否超过疲劳阈值
func (d *Driver) IsOverworked() bool {
	return d.LatestDayHours() > constants.DriverOverworkThreshold
}

// AverageWeeklyHours 返回过去一周平均工时，无记录时为 0
func (d *Driver) AverageWeeklyHours() float64 {
	if d == nil || len(d.PastWeekHours) == 0 {
		return 0
	}
	var total float64
	for _, hours := range d.PastWeekHours {
		total += hours
	}
	return total / float64(len(d.PastWeekHours))
}
