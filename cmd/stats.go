package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"donation/models"
	"donation/service"

	"github.com/google/subcommands"
)

type statsCmd struct {
	configFile string
	asJSON     bool
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "打印收支汇总" }
func (*statsCmd) Usage() string {
	return `stats [-config <file>] [-json]

  输出总收入、总支出、结余以及各项目收支。
`
}

func (s *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.configFile, "config", "", "外部配置文件路径（可选）")
	f.BoolVar(&s.asJSON, "json", false, "以 JSON 格式输出")
}

func (s *statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, st, err := openStore(s.configFile)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	stats, err := service.NewStatsService(st).ComputeStats(ctx)
	if err != nil {
		log.Printf("统计失败: %v", err)
		return subcommands.ExitFailure
	}

	if s.asJSON {
		err = writeStatsJSON(os.Stdout, stats)
	} else {
		err = writeStatsTable(os.Stdout, stats, cfg.Ledger.Currency)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func writeStatsJSON(w io.Writer, stats *models.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}

func writeStatsTable(w io.Writer, stats *models.Stats, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Total income\t%s\t\n", models.FormatMoney(stats.TotalIncome, currency))
	fmt.Fprintf(tw, "Total expense\t%s\t\n", models.FormatMoney(stats.TotalExpense, currency))
	fmt.Fprintf(tw, "Balance\t%s\t\n", models.FormatMoney(stats.Balance, currency))
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintln(tw, "Project\tIncome\tExpense\tNet\t")
	for _, p := range stats.Projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			p.Name,
			models.FormatMoney(p.Income, currency),
			models.FormatMoney(p.Expense, currency),
			models.FormatMoney(p.Net(), currency))
	}
	return tw.Flush()
}
