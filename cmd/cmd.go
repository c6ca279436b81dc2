// Package cmd 命令行子命令：serve、create-admin、stats
package cmd

import (
	"fmt"

	"donation/config"
	"donation/database"
	"donation/store"

	"github.com/google/subcommands"
)

// Commands 全部子命令
var Commands = []subcommands.Command{
	&serveCmd{},
	&createAdminCmd{},
	&statsCmd{},
}

// openStore 加载配置并连接数据库
func openStore(configPath string) (*config.Config, *store.GormStore, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("数据库初始化失败: %w", err)
	}
	return cfg, store.NewGormStore(db), nil
}
