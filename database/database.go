package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"donation/auth"
	"donation/config"
	"donation/models"
	"donation/store"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 按配置建立数据库连接并完成表结构迁移
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := newDialector(&cfg.Database)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Info
	if cfg.Server.Mode == "release" {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// 唯一键、外键冲突统一转换为 gorm.ErrDuplicatedKey / ErrForeignKeyViolated
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	log.Printf("数据库初始化成功 (%s)", cfg.Database.Driver)
	return db, nil
}

// Migrate 自动迁移数据库表，被引用的表在前
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Project{},
		&models.Income{},
		&models.Expense{},
		&models.Admin{},
	)
}

func newDialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		return mysql.Open(mysqlDSN(cfg)), nil
	case "postgres", "postgresql":
		return postgres.Open(postgresDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// mysqlDSN 构建 MySQL DSN 连接字符串
func mysqlDSN(cfg *config.DatabaseConfig) string {
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		charset,
	)
}

// postgresDSN 构建 PostgreSQL 连接字符串
func postgresDSN(cfg *config.DatabaseConfig) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host,
		cfg.Username,
		cfg.Password,
		cfg.DBName,
		cfg.Port,
		sslmode,
	)
}

// EnsureAdmin 管理员不存在时创建，已存在则跳过；返回是否新建
func EnsureAdmin(ctx context.Context, admins store.AdminStore, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, errors.New("管理员用户名和密码不能为空")
	}

	_, err := admins.FindAdminByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("密码加密失败: %w", err)
	}
	if err := admins.CreateAdmin(ctx, &models.Admin{Username: username, Password: hashed}); err != nil {
		return false, err
	}
	return true, nil
}
