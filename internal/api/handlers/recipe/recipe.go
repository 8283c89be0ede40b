package recipe

import (
	"net/http"

	recipeService "chef-bonbon/internal/core/recipe"
	"chef-bonbon/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理程序
type Handler struct {
	recipeService *recipeService.Service
}

// NewHandler 創建新的食譜處理程序
func NewHandler(recipeService *recipeService.Service) *Handler {
	return &Handler{
		recipeService: recipeService,
	}
}

// HandleGenerateRecipe 處理 POST /recipes
// 成功：200 {recipeType, recipe?, needsCookingMethod?}
// 驗證失敗：400 {error: 具體訊息}
// 上游失敗：500 {error: 通用訊息}，細節只進日誌
func (h *Handler) HandleGenerateRecipe(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req recipeService.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.recipeService.HandleRequest(c.Request.Context(), &req)
	if err != nil {
		h.writeFailure(c, requestID, err)
		return
	}

	common.LogInfo("食譜生成成功",
		zap.String("request_id", requestID),
		zap.String("recipe_type", string(result.RecipeType)),
		zap.Bool("needs_cooking_method", result.NeedsCookingMethod),
	)

	c.JSON(http.StatusOK, result)
}

// writeFailure 將分類錯誤映射為 HTTP 回應
// 驗證錯誤照實回給呼叫端；上游錯誤不外洩細節
func (h *Handler) writeFailure(c *gin.Context, requestID string, err error) {
	failure, ok := common.AsGenerationFailure(err)
	if !ok {
		common.LogError("食譜生成發生未分類錯誤",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": common.GenericUpstreamMessage})
		return
	}

	if failure.Kind == common.FailureValidation {
		common.LogWarn("請求驗證失敗",
			zap.String("request_id", requestID),
			zap.String("reason", failure.Message),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": failure.Message})
		return
	}

	common.LogError("食譜生成失敗",
		zap.Error(failure),
		zap.String("request_id", requestID),
		zap.String("kind", string(failure.Kind)),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": failure.UserMessage()})
}
