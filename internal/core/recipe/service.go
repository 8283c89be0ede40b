package recipe

import (
	"context"
	"strings"

	"chef-bonbon/internal/core/ai/cache"
	"chef-bonbon/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 食譜生成協調服務
// 驗證輸入、查快取、必要時判斷意圖、呼叫上游生成並回寫快取。
// 同一個鍵的併發請求可能同時未命中而各打一次上游（stampede）；
// 兩邊算出的值相同，後寫的覆蓋前寫的即可，不做在途去重。
type Service struct {
	ai         TextGenerator
	classifier *IntentClassifier
	cache      *cache.Store
	remote     *cache.RemoteStore // 可選的共享快取層，nil 表示未啟用
}

// NewService 創建食譜生成服務
func NewService(ai TextGenerator, classifier *IntentClassifier, store *cache.Store, remote *cache.RemoteStore) *Service {
	return &Service{
		ai:         ai,
		classifier: classifier,
		cache:      store,
		remote:     remote,
	}
}

// HandleRequest 處理一次食譜生成請求
// 步驟固定：驗證 → 解析類型 → 查快取 → 生成 → 回寫 → 回應
func (s *Service) HandleRequest(ctx context.Context, req *Request) (*Result, error) {
	// 1. 驗證：數量不足或類型不合法，不碰快取也不打上游
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 2. 解析類型：留空時交給意圖分類，分類失敗原樣往上傳
	recipeType := RecipeType(strings.ToLower(strings.TrimSpace(req.Type)))
	if recipeType == "" {
		resolved, err := s.classifier.Classify(ctx, req.Ingredients)
		if err != nil {
			return nil, err
		}
		recipeType = resolved
	}

	method := strings.TrimSpace(req.CookingMethod)

	// 3. drink：烹飪方式無意義，丟棄並警告，快取鍵不含 method
	if recipeType == TypeDrink {
		if method != "" {
			common.LogWarn("Ignoring cookingMethod for drink recipe",
				zap.String("cooking_method", method),
			)
		}
		return s.generate(ctx, req.Ingredients, promptVariant{recipeType: TypeDrink})
	}

	// 4. food 但缺烹飪方式：先回半套結果讓呼叫端補問，省一次生成呼叫
	if method == "" {
		return &Result{
			RecipeType:         TypeFood,
			NeedsCookingMethod: true,
		}, nil
	}

	// 5. food 且方式齊全
	return s.generate(ctx, req.Ingredients, promptVariant{
		recipeType:    TypeFood,
		cookingMethod: method,
	})
}

// generate 查快取、未命中時呼叫上游並回寫
func (s *Service) generate(ctx context.Context, ingredients []string, v promptVariant) (*Result, error) {
	key := CacheKey(ingredients, v.cookingMethod, v.recipeType)

	if cached, ok := s.cache.Get(key); ok {
		common.LogCacheHit("recipe", key)
		return &Result{RecipeType: v.recipeType, Recipe: cached}, nil
	}
	common.LogCacheMiss("recipe", key)

	// 記憶體未命中再問共享快取層
	if s.remote != nil {
		if cached, ok := s.remote.Get(ctx, key); ok {
			common.LogCacheHit("recipe_remote", key)
			s.cache.Put(key, cached)
			return &Result{RecipeType: v.recipeType, Recipe: cached}, nil
		}
	}

	text, err := s.ai.GenerateText(ctx, buildPrompt(ingredients, v))
	if err != nil {
		return nil, err
	}

	// 寫穿：先進快取再回應
	s.cache.Put(key, text)
	if s.remote != nil {
		if err := s.remote.Set(ctx, key, text); err != nil {
			common.LogWarn("共享快取回寫失敗", zap.Error(err))
		}
	}

	return &Result{RecipeType: v.recipeType, Recipe: text}, nil
}

// validateRequest 檢查請求結構
func validateRequest(req *Request) error {
	valid := 0
	for _, ing := range req.Ingredients {
		if strings.TrimSpace(ing) != "" {
			valid++
		}
	}
	if valid < MinIngredients {
		return common.NewValidationFailure(
			"Please provide at least 4 ingredients to get a high-quality recipe.")
	}

	typ := strings.ToLower(strings.TrimSpace(req.Type))
	if typ != "" && typ != string(TypeFood) && typ != string(TypeDrink) {
		return common.NewValidationFailure("Recipe type must be food or drink")
	}

	return nil
}
