package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnonymousDonor 未填写捐赠人时的展示名
const AnonymousDonor = "Anonymous"

// Income 捐赠收入
type Income struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	ReceiptNumber string          `json:"receipt_number" gorm:"size:64;not null;uniqueIndex"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	ProjectID     uint            `json:"project_id" gorm:"not null;index"`
	DonorName     string          `json:"donor_name" gorm:"size:100"`
	Date          string          `json:"date" gorm:"size:10;not null;index"` // YYYY-MM-DD
	Notes         string          `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`

	ProjectName string   `json:"project_name,omitempty" gorm:"->;-:migration"`
	Project     *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Income) TableName() string {
	return "incomes"
}

// DisplayDonor 返回展示用捐赠人名称
func (i Income) DisplayDonor() string {
	if i.DonorName == "" {
		return AnonymousDonor
	}
	return i.DonorName
}
