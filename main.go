package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job_search_go/config"
	"job_search_go/model"
	"job_search_go/repository"
	"job_search_go/service"
	"job_search_go/store"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type Application struct {
	cfg              *config.GlobalConfig
	db               *gorm.DB
	storageRepo      repository.StorageRepository
	apiClient        *service.ApiClient
	authStore        *store.AuthStore
	uiStore          *store.UIStore
	searchStore      *store.SearchStore
	jobStore         *store.JobStore
	userStore        *store.UserStore
	refreshScheduler *service.RefreshScheduler
	watchScheduler   *service.WatchScheduler
}

// NewApplication 创建新的应用程序实例
func NewApplication(cfg *config.GlobalConfig) *Application {
	return &Application{cfg: cfg}
}

// InitStorage 初始化本地快照存储
func (app *Application) InitStorage() error {
	switch app.cfg.Storage.Backend {
	case "mysql":
		log.Println("初始化数据库连接...")

		db, err := gorm.Open(mysql.Open(app.cfg.Database.DSN), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("数据库连接失败: %v", err)
		}

		// 获取底层的 SQL DB 对象以设置连接池
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("获取数据库连接失败: %v", err)
		}

		sqlDB.SetMaxIdleConns(app.cfg.Database.MaxIdleConns)
		sqlDB.SetMaxOpenConns(app.cfg.Database.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(time.Hour)

		app.db = db
		log.Println("✓ MySQL 数据库连接成功")

		// 自动迁移快照表
		if err := db.AutoMigrate(&model.StorageEntity{}); err != nil {
			return fmt.Errorf("数据库迁移失败: %v", err)
		}
		log.Println("✓ 数据库表迁移完成")

		app.storageRepo = repository.NewStorageRepository(db)

	case "redis":
		log.Println("初始化Redis连接...")
		repo, err := repository.NewRedisStorageRepository(
			app.cfg.Redis.Addr,
			app.cfg.Redis.Password,
			app.cfg.Redis.DB,
		)
		if err != nil {
			return fmt.Errorf("Redis连接失败: %v", err)
		}
		app.storageRepo = repo
		log.Println("✓ Redis 连接成功")

	default:
		// 未配置持久化后端时退化为内存快照，重启后状态从后端重建
		log.Println("⚠️ 未配置快照存储后端，使用内存快照")
		app.storageRepo = repository.NewMemoryStorageRepository()
	}

	return nil
}

// InitServices 初始化所有服务
func (app *Application) InitServices() error {
	log.Println("========================================")
	log.Println("   初始化应用程序服务")
	log.Println("========================================")

	if err := app.InitStorage(); err != nil {
		return fmt.Errorf("存储初始化失败: %v", err)
	}

	// 初始化接口客户端（令牌提供者在认证store创建后注入）
	apiClient := service.NewApiClient(
		app.cfg.Api.BaseURL,
		time.Duration(app.cfg.Api.TimeoutSeconds)*time.Second,
		nil,
	)
	app.apiClient = apiClient

	// 初始化各个store
	authStore := store.NewAuthStore(apiClient, app.storageRepo)
	apiClient.SetTokenProvider(authStore.Token)
	app.authStore = authStore

	app.uiStore = store.NewUIStore(
		app.storageRepo,
		time.Duration(app.cfg.UI.NotificationSeconds)*time.Second,
	)
	app.searchStore = store.NewSearchStore(apiClient, app.storageRepo)
	app.jobStore = store.NewJobStore(apiClient, app.storageRepo)
	app.userStore = store.NewUserStore(apiClient, app.storageRepo)

	// 初始化调度器
	app.refreshScheduler = service.NewRefreshScheduler(
		authStore,
		app.cfg.Auth.RefreshCron,
		time.Duration(app.cfg.Auth.RefreshAheadMinutes)*time.Minute,
	)
	app.watchScheduler = service.NewWatchScheduler(apiClient, app.uiStore, app.cfg.Watch)

	log.Println("✓ 所有服务初始化完成")
	return nil
}

// Start 启动应用程序
func (app *Application) Start() error {
	log.Println("========================================")
	log.Println("   启动求职助手客户端")
	log.Println("========================================")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 后端健康检查
	if err := app.apiClient.Health(ctx); err != nil {
		log.Printf("⚠️ 后端健康检查失败: %v", err)
	} else {
		log.Println("✓ 后端服务正常")
	}

	// 恢复上次可能中断的默认简历设置
	if app.authStore.IsAuthenticated() {
		if err := app.userStore.RecoverPendingDefault(ctx); err != nil {
			log.Printf("⚠️ 默认简历状态恢复失败: %v", err)
		}
	}

	if err := app.refreshScheduler.Start(); err != nil {
		return err
	}
	if err := app.watchScheduler.Start(); err != nil {
		return err
	}

	log.Println("✓ 应用程序已启动")
	return nil
}

// Stop 停止应用程序
func (app *Application) Stop() error {
	log.Println("========================================")
	log.Println("   停止应用程序")
	log.Println("========================================")

	if app.watchScheduler != nil {
		app.watchScheduler.Stop()
	}
	if app.refreshScheduler != nil {
		app.refreshScheduler.Stop()
	}

	// 等待职位store的后台拉取退出
	if app.jobStore != nil {
		app.jobStore.Close()
	}

	// 关闭数据库连接
	if app.db != nil {
		log.Println("关闭数据库连接...")
		if sqlDB, err := app.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	log.Println("✓ 应用程序已安全停止")
	return nil
}

// waitForShutdown 等待关闭信号
func (app *Application) waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigChan
	log.Printf("接收到信号: %v，开始优雅关闭...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		app.Stop()
		close(done)
	}()

	select {
	case <-done:
		log.Println("✓ 应用程序优雅关闭完成")
	case <-ctx.Done():
		log.Println("⚠️ 关闭超时，强制退出")
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("🚀 启动求职助手客户端...")

	// 加载 .env（不存在时忽略）
	_ = godotenv.Load()

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}

	app := NewApplication(cfg)

	if err := app.InitServices(); err != nil {
		log.Fatalf("❌ 服务初始化失败: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("❌ 应用程序启动失败: %v", err)
	}

	app.waitForShutdown()

	log.Println("👋 应用程序已退出")
}
