package store

import (
	"context"

	"donation/models"

	"github.com/shopspring/decimal"
)

// CategoryStore 分类读写
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uint, c *models.Category) (*models.Category, error)
}

// ProjectStore 项目读写，列表带出 category_name
type ProjectStore interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, p *models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, id uint, p *models.Project) (*models.Project, error)
}

// IncomeStore 收入读写，列表带出 project_name，按日期倒序
type IncomeStore interface {
	ListIncomes(ctx context.Context) ([]models.Income, error)
	CreateIncome(ctx context.Context, in *models.Income) (*models.Income, error)
	UpdateIncome(ctx context.Context, id uint, in *models.Income) (*models.Income, error)
}

// ExpenseStore 支出读写，列表带出 project_name，按日期倒序
type ExpenseStore interface {
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	CreateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id uint, e *models.Expense) (*models.Expense, error)
}

// AdminStore 管理员账号
type AdminStore interface {
	FindAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, a *models.Admin) error
}

// Totals 金额汇总：总额及按项目分组
type Totals struct {
	Total     decimal.Decimal
	ByProject map[uint]decimal.Decimal
}

// StatsSource 统计所需的只读查询
type StatsSource interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	IncomeTotals(ctx context.Context) (Totals, error)
	ExpenseTotals(ctx context.Context) (Totals, error)
}

// Store 记录存储的完整接口，由各 handler 按需依赖其子集
type Store interface {
	CategoryStore
	ProjectStore
	IncomeStore
	ExpenseStore
	AdminStore
	StatsSource
	Ping(ctx context.Context) error
}
