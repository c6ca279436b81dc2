package service

import (
	"context"
	"fmt"

	"donation/models"
	"donation/store"

	"github.com/shopspring/decimal"
)

// StatsService 收支统计（公开数据）
type StatsService struct {
	source store.StatsSource
}

// NewStatsService 创建统计服务
func NewStatsService(source store.StatsSource) *StatsService {
	return &StatsService{source: source}
}

// ComputeStats 汇总全部收入、支出、结余，以及每个项目的收支
// 项目顺序与存储枚举顺序一致；没有流水的项目收支均为 0
func (s *StatsService) ComputeStats(ctx context.Context) (*models.Stats, error) {
	projects, err := s.source.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	incomes, err := s.source.IncomeTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum incomes: %w", err)
	}
	expenses, err := s.source.ExpenseTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}

	stats := &models.Stats{
		TotalIncome:  incomes.Total,
		TotalExpense: expenses.Total,
		Balance:      incomes.Total.Sub(expenses.Total),
		Projects:     make([]models.ProjectStats, 0, len(projects)),
	}
	for _, p := range projects {
		stats.Projects = append(stats.Projects, models.ProjectStats{
			ID:      p.ID,
			Name:    p.Name,
			Income:  amountFor(incomes, p.ID),
			Expense: amountFor(expenses, p.ID),
		})
	}
	return stats, nil
}

func amountFor(t store.Totals, projectID uint) decimal.Decimal {
	if v, ok := t.ByProject[projectID]; ok {
		return v
	}
	return decimal.Zero
}
