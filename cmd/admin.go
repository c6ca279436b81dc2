package cmd

import (
	"context"
	"flag"
	"log"

	"donation/database"

	"github.com/google/subcommands"
)

type createAdminCmd struct {
	configFile string
	username   string
	password   string
}

func (*createAdminCmd) Name() string     { return "create-admin" }
func (*createAdminCmd) Synopsis() string { return "创建管理员账号" }
func (*createAdminCmd) Usage() string {
	return `create-admin -username <name> -password <password> [-config <file>]

  新建管理员，密码以 bcrypt 哈希保存；同名账号已存在时不做修改。
`
}

func (c *createAdminCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "外部配置文件路径（可选）")
	f.StringVar(&c.username, "username", "", "管理员用户名")
	f.StringVar(&c.password, "password", "", "管理员密码")
}

func (c *createAdminCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.password == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	_, st, err := openStore(c.configFile)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	created, err := database.EnsureAdmin(ctx, st, c.username, c.password)
	if err != nil {
		log.Printf("创建管理员失败: %v", err)
		return subcommands.ExitFailure
	}
	if !created {
		log.Printf("管理员 %s 已存在", c.username)
		return subcommands.ExitFailure
	}
	log.Printf("管理员 %s 创建成功", c.username)
	return subcommands.ExitSuccess
}
