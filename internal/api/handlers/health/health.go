package health

import (
	"net/http"
	"runtime"
	"time"

	"chef-bonbon/internal/core/ai/cache"
	"chef-bonbon/internal/infrastructure/config"
	"chef-bonbon/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Caches    map[string]cache.Stats `json:"caches,omitempty"`
}

// Handler 健康檢查處理程序
type Handler struct {
	config      *config.Config
	recipeCache *cache.Store
	intentCache *cache.Store
}

// NewHandler 創建健康檢查處理程序
func NewHandler(cfg *config.Config, recipeCache, intentCache *cache.Store) *Handler {
	return &Handler{
		config:      cfg,
		recipeCache: recipeCache,
		intentCache: intentCache,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Caches: map[string]cache.Stats{
			"recipe": h.recipeCache.GetStats(),
			"intent": h.intentCache.GetStats(),
		},
	}

	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器
func (h *Handler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
