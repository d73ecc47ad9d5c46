package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"brewbuy/internal/app"
	"brewbuy/internal/core/config"
)

// bootDB 读取配置并连库；CLI 总是执行迁移
func bootDB() (*config.Config, *gorm.DB, *zap.Logger, func(), error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cfg.DB.AutoMigrate = true
	log, cleanup := app.NewLogger(cfg)
	db, err := app.OpenDB(cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}
	closeAll := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		cleanup()
	}
	return cfg, db, log, closeAll, nil
}

// brewctl migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update all tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, _, done, err := bootDB()
		if err != nil {
			return err
		}
		defer done()
		fmt.Fprintf(cmd.OutOrStdout(), "migrated (%s)\n", cfg.DB.Driver)
		return nil
	},
}
