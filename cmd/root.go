package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/moyu-x/photo-importer/app"
	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/config"
	"github.com/moyu-x/photo-importer/pkg/logger"
)

var cfgFile string

// rootCmd 不带子命令时执行导入
var rootCmd = &cobra.Command{
	Use:   "photo-importer",
	Short: "从 SD 卡导入照片到本地图库",
	Long: `Photo Importer 从相机 SD 卡导入照片到本地图库。

主要功能:
- 自动查找已挂载的 SD 卡，多张卡时提示选择
- 扫描 DCIM 目录中的图片，跳过隐藏文件
- 按文件名跳过图库中已有的图片
- 按拍摄日期创建 "SD Card Import dd-Mon-yyyy" 文件夹
- 优先移动文件，无法移动时复制，SD 卡上的原文件保留`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runImport,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		fatal(err, internal.DefaultExitDelay)
	}

	library, _ := cmd.Flags().GetString("library")
	vol, _ := cmd.Flags().GetString("volume")
	interactive, _ := cmd.Flags().GetBool("interactive")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logFile, _ := cmd.Flags().GetString("log-file")

	opts := &app.ImportOptions{
		Library:     library,
		Volume:      vol,
		Interactive: interactive,
		DryRun:      dryRun,
		Verbose:     verbose,
		LogFile:     logFile,
	}

	stats, err := app.RunImport(cfg, opts)
	if err != nil {
		fatal(err, cfg.ExitDelay)
	}

	fmt.Println(stats.String())
	return nil
}

// fatal 输出错误，等待一段时间后退出
func fatal(err error, delay time.Duration) {
	logger.Get().Error().Err(err).Msg("导入失败")
	fmt.Fprintf(os.Stderr, "导入失败: %v\n", err)
	if delay <= 0 {
		delay = internal.DefaultExitDelay
	}
	time.Sleep(delay)
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认 $HOME/.photo-importer/config.yaml)")

	rootCmd.Flags().StringP("library", "l", "", "图库根目录，覆盖配置文件")
	rootCmd.Flags().String("volume", "", "直接指定 SD 卡路径，跳过自动查找")
	rootCmd.Flags().BoolP("interactive", "i", false, "多张卡时使用交互式列表选择")
	rootCmd.Flags().Bool("dry-run", false, "预览模式，不实际修改文件")
	rootCmd.Flags().BoolP("verbose", "v", false, "显示详细日志")
	rootCmd.Flags().String("log-file", "", "日志文件路径")
}
