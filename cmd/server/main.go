package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/watchhub/watchhub/internal/app"
	"github.com/watchhub/watchhub/internal/config"
	"github.com/watchhub/watchhub/internal/logger"
	"github.com/watchhub/watchhub/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) {
			stdLog.Fatalf("JWT secret is weak or still the default, configure a strong random key in production")
		}
	} else if isWeakSecret(cfg.JWT.SecretKey) {
		stdLog.Printf("warning: JWT secret is weak or still the default, replace it before going to production")
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to initialize database: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	// 初始化默认管理员账号
	defaultAdminUser := os.Getenv("WH_DEFAULT_ADMIN_USERNAME")
	defaultAdminPass := os.Getenv("WH_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		stdLog.Printf("warning: WH_DEFAULT_ADMIN_PASSWORD not set, skipped default admin initialization")
	} else if err := models.InitDefaultAdmin(defaultAdminUser, defaultAdminPass); err != nil {
		stdLog.Printf("warning: failed to initialize default admin: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "run mode: all (default), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("service exited with error: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + " _    _       _       _     _   _       _     " + ansiReset)
	fmt.Println(ansiCyan + "| |  | |     | |     | |   | | | |     | |    " + ansiReset)
	fmt.Println(ansiCyan + "| |  | | __ _| |_ ___| |__ | |_| |_   _| |__  " + ansiReset)
	fmt.Println(ansiCyan + "| |/\\| |/ _'| __/ __| '_ \\|  _  | | | | '_ \\ " + ansiReset)
	fmt.Println(ansiCyan + "\\  /\\  / (_| | || (__| | | | | | | |_| | |_) |" + ansiReset)
	fmt.Println(ansiCyan + " \\/  \\/ \\__,_|\\__\\___|_| |_\\_| |_/\\__,_|_.__/ " + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "WatchHub API" + ansiReset + ansiDim + " cart, pricing and checkout service" + ansiReset)
	fmt.Println(ansiBlue + "• Docs:  see README.md" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
