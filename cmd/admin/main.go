// admin 运维命令：migrate 建表，seed 写入初始数据（可重复执行）
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-blog/internal/bootstrap"
	"go-gin-blog/internal/core/config"
	"go-gin-blog/internal/core/database"
	"go-gin-blog/internal/core/logger"
	"go-gin-blog/internal/repo"
)

const usage = `usage: admin [-config path] <command>

commands:
  migrate   create or update tables
  seed      migrate, then create the admin user, default categories and sample posts
`

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_PATH"), "config file path")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(logger.FromConfig(cfg))
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Arg(0), cfg, log); err != nil {
		log.Error("admin command failed", zap.String("cmd", flag.Arg(0)), zap.Error(err))
		cleanup()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, cfg *config.Config, log *zap.Logger) error {
	switch cmd {
	case "migrate", "seed":
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             log,
	})
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := repo.AutoMigrate(db.WithContext(ctx)); err != nil {
		return err
	}
	log.Info("migrate done", zap.String("driver", cfg.DB.Driver))
	if cmd == "migrate" {
		return nil
	}

	// Seeder 自己记录 "seed done" 及各项计数
	_, err = bootstrap.NewSeeder(db, cfg.Seed, log).Run(ctx)
	return err
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
