package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"schedule-gen/backend/config"
	"schedule-gen/backend/pkg/database"
	applogger "schedule-gen/backend/pkg/logger"
)

var (
	migrateConfig string
	migrateSteps  int
)

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down",
	Short:     "执行或回滚服务端数据库迁移",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(migrateConfig)
		if err != nil {
			return err
		}
		logger, err := applogger.NewLogger(&cfg.Log)
		if err != nil {
			return fmt.Errorf("初始化日志失败: %w", err)
		}
		defer logger.Sync()

		db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
		if err != nil {
			return fmt.Errorf("数据库连接失败: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if args[0] == "up" {
			return database.RunMigrations(sqlDB, logger)
		}
		logger.Info("开始回滚迁移", zap.Int("steps", migrateSteps))
		return database.RollbackMigrations(sqlDB, migrateSteps, logger)
	},
}

func init() {
	migrateCmd.Flags().StringVarP(&migrateConfig, "config", "c", "", "配置文件路径（默认 ./config/config.yaml）")
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 1, "down 时回滚的迁移数")
}
