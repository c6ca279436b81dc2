package cmd

import (
	"context"
	"flag"
	"log"
	"strings"

	"donation/config"
	"donation/database"
	"donation/router"

	"github.com/google/subcommands"
)

type serveCmd struct {
	configFile string
	port       string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "启动 HTTP 服务（默认命令）" }
func (*serveCmd) Usage() string {
	return `serve [-config <file>] [-port <port>]

  启动公示页面与 API 服务，首次启动时按配置创建默认管理员。
`
}

func (s *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.configFile, "config", "", "外部配置文件路径（可选）")
	f.StringVar(&s.configFile, "c", "", "外部配置文件路径（简写）")
	f.StringVar(&s.port, "port", "", "监听端口，如: 8080 或 :8080")
	f.StringVar(&s.port, "p", "", "监听端口（简写）")
}

func (s *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, st, err := openStore(s.configFile)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	// 命令行参数覆盖端口配置
	if s.port != "" {
		cfg.Server.Port = normalizePort(s.port)
		log.Printf("命令行指定端口: %s", cfg.Server.Port)
	}

	// 打印配置信息
	config.PrintConfig(cfg)

	created, err := database.EnsureAdmin(ctx, st, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		log.Printf("创建默认管理员失败: %v", err)
		return subcommands.ExitFailure
	}
	if created {
		log.Printf("已创建默认管理员: %s，请尽快修改密码", cfg.Admin.Username)
	}

	// 设置路由
	r := router.SetupRouter(cfg, st)

	// 启动服务器
	log.Printf("==========================================")
	log.Printf("  %s 已启动", cfg.Ledger.Name)
	log.Printf("==========================================")
	log.Printf("  公示页面: http://localhost%s/", cfg.Server.Port)
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API接口:  http://localhost%s/api/", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Printf("服务器启动失败: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// normalizePort 自动添加冒号前缀
func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}
