package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"donation/cmd"

	"github.com/google/subcommands"
)

// @title 捐赠公示系统 API
// @version 1.0
// @description 捐赠收支公示：公开统计与明细查询，管理员登记收入、支出、分类与项目
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var showVersion bool

func init() {
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()

	if showVersion {
		log.Println("捐赠公示系统 v1.0.0")
		return
	}

	// 未指定子命令时启动服务
	if flag.NArg() == 0 {
		_ = flag.CommandLine.Parse([]string{"serve"})
	}

	os.Exit(int(commander.Execute(context.Background())))
}
