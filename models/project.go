package models

import "time"

// Project 募捐项目，必须归属于一个分类
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// CategoryName 列表查询时联表带出，不落库
	CategoryName string    `json:"category_name,omitempty" gorm:"->;-:migration"`
	Category     *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Project) TableName() string {
	return "projects"
}
