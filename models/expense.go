package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense 项目支出
type Expense struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	ProjectID   uint            `json:"project_id" gorm:"not null;index"`
	Description string          `json:"description" gorm:"size:255;not null"`
	Date        string          `json:"date" gorm:"size:10;not null;index"` // YYYY-MM-DD
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`

	ProjectName string   `json:"project_name,omitempty" gorm:"->;-:migration"`
	Project     *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}
