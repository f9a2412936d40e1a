// schedgen 离线课表生成命令行：从 YAML 课程清单生成、排序并导出课表方案，
// 也可对服务端数据库执行迁移。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "schedgen",
	Short:         "课表方案生成工具",
	Long:          `从课程清单枚举全部无冲突、不超学分上限的课程组合，按优先课程数与总学分排序输出。`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(planCmd, exportCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
