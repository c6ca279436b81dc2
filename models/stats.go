package models

import "github.com/shopspring/decimal"

// ProjectStats 单个项目的收支汇总
type ProjectStats struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Net 项目结余（不落库，仅展示）
func (p ProjectStats) Net() decimal.Decimal {
	return p.Income.Sub(p.Expense)
}

// Stats 公开的收支统计
type Stats struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
	Projects     []ProjectStats  `json:"projects"`
}
