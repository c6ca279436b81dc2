// Package storetest 提供内存版 store.Store，供 handler 与路由测试使用
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"donation/models"
	"donation/store"

	"github.com/shopspring/decimal"
)

// Store 内存实现，按数据库约束校验唯一键与外键
type Store struct {
	mu         sync.Mutex
	categories []models.Category
	projects   []models.Project
	incomes    []models.Income
	expenses   []models.Expense
	admins     []models.Admin

	// FailWith 非空时所有查询返回该错误
	FailWith error
}

var _ store.Store = (*Store)(nil)

// New 创建空的内存存储
func New() *Store {
	return &Store{}
}

func (m *Store) Ping(context.Context) error { return m.FailWith }

func (m *Store) categoryName(id uint) (string, bool) {
	for _, c := range m.categories {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}

func (m *Store) projectName(id uint) (string, bool) {
	for _, p := range m.projects {
		if p.ID == id {
			return p.Name, true
		}
	}
	return "", false
}

func constraint(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", store.ErrConstraintViolation, fmt.Sprintf(format, args...))
}

func (m *Store) ListCategories(context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return append([]models.Category{}, m.categories...), nil
}

func (m *Store) CreateCategory(_ context.Context, c *models.Category) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return nil, constraint("duplicate category %q", c.Name)
		}
	}
	c.ID = uint(len(m.categories) + 1)
	m.categories = append(m.categories, *c)
	return c, nil
}

func (m *Store) UpdateCategory(_ context.Context, id uint, c *models.Category) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories[i].Name = c.Name
			out := m.categories[i]
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Store) ListProjects(context.Context) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	out := make([]models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		p.CategoryName, _ = m.categoryName(p.CategoryID)
		out = append(out, p)
	}
	return out, nil
}

func (m *Store) CreateProject(_ context.Context, p *models.Project) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.categoryName(p.CategoryID)
	if !ok {
		return nil, constraint("category %d does not exist", p.CategoryID)
	}
	p.ID = uint(len(m.projects) + 1)
	m.projects = append(m.projects, *p)
	p.CategoryName = name
	return p, nil
}

func (m *Store) UpdateProject(_ context.Context, id uint, p *models.Project) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.projects {
		if m.projects[i].ID != id {
			continue
		}
		name, ok := m.categoryName(p.CategoryID)
		if !ok {
			return nil, constraint("category %d does not exist", p.CategoryID)
		}
		p.ID = id
		m.projects[i] = *p
		p.CategoryName = name
		return p, nil
	}
	return nil, store.ErrNotFound
}

func (m *Store) sortedIncomes() []models.Income {
	out := make([]models.Income, 0, len(m.incomes))
	for _, in := range m.incomes {
		in.ProjectName, _ = m.projectName(in.ProjectID)
		out = append(out, in)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *Store) ListIncomes(context.Context) ([]models.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return m.sortedIncomes(), nil
}

func (m *Store) checkIncome(id uint, in *models.Income) (string, error) {
	name, ok := m.projectName(in.ProjectID)
	if !ok {
		return "", constraint("project %d does not exist", in.ProjectID)
	}
	for _, existing := range m.incomes {
		if existing.ID != id && existing.ReceiptNumber == in.ReceiptNumber {
			return "", constraint("duplicate receipt number %q", in.ReceiptNumber)
		}
	}
	return name, nil
}

func (m *Store) CreateIncome(_ context.Context, in *models.Income) (*models.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, err := m.checkIncome(0, in)
	if err != nil {
		return nil, err
	}
	in.ID = uint(len(m.incomes) + 1)
	m.incomes = append(m.incomes, *in)
	in.ProjectName = name
	return in, nil
}

func (m *Store) UpdateIncome(_ context.Context, id uint, in *models.Income) (*models.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.incomes {
		if m.incomes[i].ID != id {
			continue
		}
		name, err := m.checkIncome(id, in)
		if err != nil {
			return nil, err
		}
		in.ID = id
		m.incomes[i] = *in
		in.ProjectName = name
		return in, nil
	}
	return nil, store.ErrNotFound
}

func (m *Store) ListExpenses(context.Context) ([]models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	out := make([]models.Expense, 0, len(m.expenses))
	for _, e := range m.expenses {
		e.ProjectName, _ = m.projectName(e.ProjectID)
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *Store) CreateExpense(_ context.Context, e *models.Expense) (*models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.projectName(e.ProjectID)
	if !ok {
		return nil, constraint("project %d does not exist", e.ProjectID)
	}
	e.ID = uint(len(m.expenses) + 1)
	m.expenses = append(m.expenses, *e)
	e.ProjectName = name
	return e, nil
}

func (m *Store) UpdateExpense(_ context.Context, id uint, e *models.Expense) (*models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.expenses {
		if m.expenses[i].ID != id {
			continue
		}
		name, ok := m.projectName(e.ProjectID)
		if !ok {
			return nil, constraint("project %d does not exist", e.ProjectID)
		}
		e.ID = id
		m.expenses[i] = *e
		e.ProjectName = name
		return e, nil
	}
	return nil, store.ErrNotFound
}

func (m *Store) FindAdminByUsername(_ context.Context, username string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Username == username {
			out := a
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Store) CreateAdmin(_ context.Context, a *models.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uint(len(m.admins) + 1)
	m.admins = append(m.admins, *a)
	return nil
}

func totalsOf(amounts map[uint][]decimal.Decimal) store.Totals {
	t := store.Totals{Total: decimal.Zero, ByProject: map[uint]decimal.Decimal{}}
	for id, list := range amounts {
		sum := decimal.Zero
		for _, a := range list {
			sum = sum.Add(a)
		}
		t.ByProject[id] = sum
		t.Total = t.Total.Add(sum)
	}
	return t
}

func (m *Store) IncomeTotals(context.Context) (store.Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return store.Totals{}, m.FailWith
	}
	amounts := map[uint][]decimal.Decimal{}
	for _, in := range m.incomes {
		amounts[in.ProjectID] = append(amounts[in.ProjectID], in.Amount)
	}
	return totalsOf(amounts), nil
}

func (m *Store) ExpenseTotals(context.Context) (store.Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return store.Totals{}, m.FailWith
	}
	amounts := map[uint][]decimal.Decimal{}
	for _, e := range m.expenses {
		amounts[e.ProjectID] = append(amounts[e.ProjectID], e.Amount)
	}
	return totalsOf(amounts), nil
}
