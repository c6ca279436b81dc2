package store

import (
	"context"
	"fmt"

	"donation/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore 基于 gorm 的记录存储，连接由调用方注入
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

// Ping 检查数据库连接
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *GormStore) exists(ctx context.Context, model interface{}, id uint) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, translateError(err)
	}
	return n > 0, nil
}

// requireRef 校验外键引用的记录存在
func (s *GormStore) requireRef(ctx context.Context, model interface{}, id uint, what string) error {
	ok, err := s.exists(ctx, model, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %d does not exist", ErrConstraintViolation, what, id)
	}
	return nil
}

// requireRow 校验更新目标存在
func (s *GormStore) requireRow(ctx context.Context, model interface{}, id uint) error {
	ok, err := s.exists(ctx, model, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ===== 分类 =====

func (s *GormStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	list := []models.Category{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, translateError(err)
	}
	return list, nil
}

func (s *GormStore) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

func (s *GormStore) UpdateCategory(ctx context.Context, id uint, c *models.Category) (*models.Category, error) {
	var cat models.Category
	if err := s.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, translateError(err)
	}
	if err := s.db.WithContext(ctx).Model(&cat).Update("name", c.Name).Error; err != nil {
		return nil, translateError(err)
	}
	cat.Name = c.Name
	return &cat, nil
}

// ===== 项目 =====

func (s *GormStore) projectsWithCategory(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Project{}).
		Select("projects.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = projects.category_id")
}

func (s *GormStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	list := []models.Project{}
	if err := s.projectsWithCategory(ctx).Order("projects.id ASC").Find(&list).Error; err != nil {
		return nil, translateError(err)
	}
	return list, nil
}

func (s *GormStore) getProject(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := s.projectsWithCategory(ctx).Where("projects.id = ?", id).Take(&p).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

func (s *GormStore) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	if err := s.requireRef(ctx, &models.Category{}, p.CategoryID, "category"); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, translateError(err)
	}
	return s.getProject(ctx, p.ID)
}

func (s *GormStore) UpdateProject(ctx context.Context, id uint, p *models.Project) (*models.Project, error) {
	if err := s.requireRow(ctx, &models.Project{}, id); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, &models.Category{}, p.CategoryID, "category"); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Model(&models.Project{ID: id}).
		Select("name", "category_id", "description").
		Updates(p).Error
	if err != nil {
		return nil, translateError(err)
	}
	return s.getProject(ctx, id)
}

// ===== 收入 =====

func (s *GormStore) incomesWithProject(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Income{}).
		Select("incomes.*, projects.name AS project_name").
		Joins("JOIN projects ON projects.id = incomes.project_id")
}

func (s *GormStore) ListIncomes(ctx context.Context) ([]models.Income, error) {
	list := []models.Income{}
	if err := s.incomesWithProject(ctx).Order("incomes.date DESC, incomes.id DESC").Find(&list).Error; err != nil {
		return nil, translateError(err)
	}
	return list, nil
}

func (s *GormStore) getIncome(ctx context.Context, id uint) (*models.Income, error) {
	var in models.Income
	if err := s.incomesWithProject(ctx).Where("incomes.id = ?", id).Take(&in).Error; err != nil {
		return nil, translateError(err)
	}
	return &in, nil
}

func (s *GormStore) CreateIncome(ctx context.Context, in *models.Income) (*models.Income, error) {
	if err := s.requireRef(ctx, &models.Project{}, in.ProjectID, "project"); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(in).Error; err != nil {
		return nil, translateError(err)
	}
	return s.getIncome(ctx, in.ID)
}

func (s *GormStore) UpdateIncome(ctx context.Context, id uint, in *models.Income) (*models.Income, error) {
	if err := s.requireRow(ctx, &models.Income{}, id); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, &models.Project{}, in.ProjectID, "project"); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Model(&models.Income{ID: id}).
		Select("receipt_number", "amount", "project_id", "donor_name", "date", "notes").
		Updates(in).Error
	if err != nil {
		return nil, translateError(err)
	}
	return s.getIncome(ctx, id)
}

// ===== 支出 =====

func (s *GormStore) expensesWithProject(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Expense{}).
		Select("expenses.*, projects.name AS project_name").
		Joins("JOIN projects ON projects.id = expenses.project_id")
}

func (s *GormStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	list := []models.Expense{}
	if err := s.expensesWithProject(ctx).Order("expenses.date DESC, expenses.id DESC").Find(&list).Error; err != nil {
		return nil, translateError(err)
	}
	return list, nil
}

func (s *GormStore) getExpense(ctx context.Context, id uint) (*models.Expense, error) {
	var e models.Expense
	if err := s.expensesWithProject(ctx).Where("expenses.id = ?", id).Take(&e).Error; err != nil {
		return nil, translateError(err)
	}
	return &e, nil
}

func (s *GormStore) CreateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	if err := s.requireRef(ctx, &models.Project{}, e.ProjectID, "project"); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error; err != nil {
		return nil, translateError(err)
	}
	return s.getExpense(ctx, e.ID)
}

func (s *GormStore) UpdateExpense(ctx context.Context, id uint, e *models.Expense) (*models.Expense, error) {
	if err := s.requireRow(ctx, &models.Expense{}, id); err != nil {
		return nil, err
	}
	if err := s.requireRef(ctx, &models.Project{}, e.ProjectID, "project"); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Model(&models.Expense{ID: id}).
		Select("amount", "project_id", "description", "date").
		Updates(e).Error
	if err != nil {
		return nil, translateError(err)
	}
	return s.getExpense(ctx, id)
}

// ===== 管理员 =====

func (s *GormStore) FindAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

func (s *GormStore) CreateAdmin(ctx context.Context, a *models.Admin) error {
	return translateError(s.db.WithContext(ctx).Create(a).Error)
}

// ===== 统计 =====

type projectSum struct {
	ProjectID uint
	Total     decimal.Decimal
}

// sumByProject 单条分组查询得到各项目金额及总额
func (s *GormStore) sumByProject(ctx context.Context, model interface{}) (Totals, error) {
	var rows []projectSum
	err := s.db.WithContext(ctx).Model(model).
		Select("project_id, COALESCE(SUM(amount), 0) AS total").
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return Totals{}, translateError(err)
	}
	t := Totals{Total: decimal.Zero, ByProject: make(map[uint]decimal.Decimal, len(rows))}
	for _, r := range rows {
		t.ByProject[r.ProjectID] = r.Total
		t.Total = t.Total.Add(r.Total)
	}
	return t, nil
}

func (s *GormStore) IncomeTotals(ctx context.Context) (Totals, error) {
	return s.sumByProject(ctx, &models.Income{})
}

func (s *GormStore) ExpenseTotals(ctx context.Context) (Totals, error) {
	return s.sumByProject(ctx, &models.Expense{})
}
