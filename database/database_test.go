package database

import (
	"context"
	"errors"
	"testing"

	"donation/auth"
	"donation/config"
	"donation/models"
	"donation/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "db.local",
		Port:     "3306",
		Username: "root",
		Password: "secret",
		DBName:   "donations",
	}
	assert.Equal(t, "root:secret@tcp(db.local:3306)/donations?charset=utf8mb4&parseTime=True&loc=Local", mysqlDSN(cfg))

	cfg.Port = "5432"
	assert.Equal(t, "host=db.local user=root password=secret dbname=donations port=5432 sslmode=disable", postgresDSN(cfg))
}

func TestNewDialector(t *testing.T) {
	d, err := newDialector(&config.DatabaseConfig{Driver: "mysql"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = newDialector(&config.DatabaseConfig{Driver: "postgres"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = newDialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

type memAdmins struct {
	admins  map[string]*models.Admin
	findErr error
}

func (m *memAdmins) FindAdminByUsername(_ context.Context, username string) (*models.Admin, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	a, ok := m.admins[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	return a, nil
}

func (m *memAdmins) CreateAdmin(_ context.Context, a *models.Admin) error {
	a.ID = uint(len(m.admins) + 1)
	m.admins[a.Username] = a
	return nil
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	admins := &memAdmins{admins: map[string]*models.Admin{}}

	created, err := EnsureAdmin(ctx, admins, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	stored := admins.admins["admin"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "admin123", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "admin123"))

	// 已存在时不覆盖
	created, err = EnsureAdmin(ctx, admins, "admin", "other")
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, auth.CheckPassword(admins.admins["admin"].Password, "admin123"))

	_, err = EnsureAdmin(ctx, admins, "", "x")
	assert.Error(t, err)

	admins.findErr = errors.New("connection refused")
	_, err = EnsureAdmin(ctx, admins, "root", "pw")
	assert.Error(t, err)
}
