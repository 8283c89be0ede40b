package api

import (
	"context"
	"net/http"
	"time"

	healthHandler "chef-bonbon/internal/api/handlers/health"
	recipeHandler "chef-bonbon/internal/api/handlers/recipe"
	"chef-bonbon/internal/api/middleware"
	"chef-bonbon/internal/core/ai/anthropic"
	"chef-bonbon/internal/core/ai/cache"
	recipeService "chef-bonbon/internal/core/recipe"
	"chef-bonbon/internal/infrastructure/config"
	"chef-bonbon/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 整體請求超時：涵蓋意圖判斷 + 生成兩段上游呼叫
	timeoutDuration = 60 * time.Second
	// 請求體大小限制 (64KB)，食材列表用不到更多
	maxBodySize = 64 << 10
)

// Caches 伺服器用到的快取集合，生命週期由 main 管理
type Caches struct {
	Recipe *cache.Store
	Intent *cache.Store
	Remote *cache.RemoteStore
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, caches *Caches) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制與重複提交去重
	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(middleware.Deduplication(cfg))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Int("cache_max_size", cfg.Cache.MaxSize),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
		zap.String("model", cfg.Anthropic.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化上游客戶端與服務
	aiClient := anthropic.NewClient(cfg)
	classifier := recipeService.NewIntentClassifier(aiClient, caches.Intent)
	recipeSvc := recipeService.NewService(aiClient, classifier, caches.Recipe, caches.Remote)

	// 全局中間件：設置請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
		}
	})

	// 健康檢查路由
	health := healthHandler.NewHandler(cfg, caches.Recipe, caches.Intent)
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// 食譜生成端點（瀏覽器端直接呼叫，路徑不掛版本前綴）
	handler := recipeHandler.NewHandler(recipeSvc)
	router.POST("/recipes", handler.HandleGenerateRecipe)

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("remote_cache_enabled", caches.Remote != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
