package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chef-bonbon/internal/api"
	"chef-bonbon/internal/core/ai/cache"
	"chef-bonbon/internal/infrastructure/config"
	"chef-bonbon/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	// 使用 logger 記錄啟動信息
	common.LogInfo("載入設定",
		zap.String("anthropic_key", config.MaskAPIKey(cfg.Anthropic.APIKey)),
		zap.String("model", cfg.Anthropic.Model),
	)

	// 初始化快取：食譜與意圖各自一份，互不共用條目
	recipeCache := cache.NewStore(cfg.Cache.MaxSize, cfg.Cache.TTL)
	intentCache := cache.NewStore(cfg.Cache.MaxSize, cfg.Cache.TTL)
	recipeCache.StartCleanup(cfg.Cache.CleanupInterval)
	intentCache.StartCleanup(cfg.Cache.CleanupInterval)
	defer recipeCache.Close()
	defer intentCache.Close()

	// 可選的共享快取層
	remoteCache, err := cache.NewRemoteStore(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize shared cache", zap.Error(err))
	}
	if remoteCache != nil {
		defer remoteCache.Close()
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, &api.Caches{
		Recipe: recipeCache,
		Intent: intentCache,
		Remote: remoteCache,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
