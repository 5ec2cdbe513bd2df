package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/photo-importer/app"
	"github.com/moyu-x/photo-importer/tui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "查看最近的导入记录",
	Long:  `从导入日志中读取最近的导入记录。需要在配置中启用 journal.enabled 才会记录导入。`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")

	runs, err := app.RunHistory(cfg, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("没有导入记录")
		return nil
	}

	fmt.Println(tui.RenderRuns(runs))
	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "显示的记录数")

	rootCmd.AddCommand(historyCmd)
}
