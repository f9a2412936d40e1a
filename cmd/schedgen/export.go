package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"schedule-gen/backend/config"
	"schedule-gen/backend/internal/service"
)

var (
	exportOpts     planFlags
	exportOutput   string
	exportRank     int
	exportStart    int
	exportEnd      int
	exportWeek     string
	exportTimezone string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "生成课表方案并导出为 Excel 或 iCalendar 文件",
	Long: `按输出文件扩展名选择格式：
  .xlsx  汇总表加每个方案一张周视图
  .ics   导出 --rank 指定名次的方案，每周重复`,
	Example: `  schedgen export -f courses.yaml -o schedules.xlsx
  schedgen export -f courses.yaml -o best.ics --rank 1 --week 2026-09-07 --tz Asia/Shanghai`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	def := config.DefaultPlanner()
	exportOpts.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "schedules.xlsx", "输出文件（.xlsx 或 .ics）")
	exportCmd.Flags().IntVar(&exportRank, "rank", 1, "导出 iCalendar 时选择的方案名次")
	exportCmd.Flags().IntVar(&exportStart, "start-hour", def.CalendarStartHour, "周视图起始整点")
	exportCmd.Flags().IntVar(&exportEnd, "end-hour", def.CalendarEndHour, "周视图结束整点")
	exportCmd.Flags().StringVar(&exportWeek, "week", def.ICSWeekStart, "首个上课周的周一（2006-01-02）")
	exportCmd.Flags().StringVar(&exportTimezone, "tz", def.ICSTimezone, "iCalendar 时区")
}

func runExport(cmd *cobra.Command, _ []string) error {
	ranked, err := exportOpts.generate(cmd.Context())
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		return fmt.Errorf("没有满足条件的课表方案，未生成文件")
	}

	var body []byte
	switch ext := strings.ToLower(filepath.Ext(exportOutput)); ext {
	case ".xlsx":
		if exportStart < 0 || exportEnd > 24 || exportStart >= exportEnd {
			return fmt.Errorf("周视图时间范围无效: %d-%d", exportStart, exportEnd)
		}
		buf, err := service.RenderWorkbook(ranked, exportStart, exportEnd)
		if err != nil {
			return err
		}
		body = buf.Bytes()
	case ".ics":
		if exportRank < 1 || exportRank > len(ranked) {
			return fmt.Errorf("名次 %d 超出范围 1-%d", exportRank, len(ranked))
		}
		opts, err := service.NewFeedOptions(exportWeek, exportTimezone)
		if err != nil {
			return err
		}
		body = []byte(service.RenderICS(ranked[exportRank-1], opts, time.Now()))
	default:
		return fmt.Errorf("不支持的导出格式 %q（仅支持 .xlsx / .ics）", ext)
	}

	if err := os.WriteFile(exportOutput, body, 0o644); err != nil {
		return fmt.Errorf("写入导出文件失败: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "共 %d 个方案，已写入 %s\n", len(ranked), exportOutput)
	return nil
}
