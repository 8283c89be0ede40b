package recipe

// RecipeType 食譜類型（food 或 drink）
type RecipeType string

const (
	TypeFood  RecipeType = "food"
	TypeDrink RecipeType = "drink"
)

// MinIngredients 生成高品質食譜要求的最少食材數
const MinIngredients = 4

// Request 食譜生成請求
type Request struct {
	Ingredients   []string `json:"ingredients" binding:"required"` // 食材列表
	CookingMethod string   `json:"cookingMethod,omitempty"`        // 烹飪方式（food 必填，第二輪提供）
	Type          string   `json:"type,omitempty"`                 // food / drink，留空觸發意圖判斷
}

// Result 食譜生成結果
// NeedsCookingMethod 為 true 表示已判定為 food 但還缺烹飪方式，
// 呼叫端補上後再請求一次（兩段式協商，避免白白燒一次生成呼叫）
type Result struct {
	RecipeType         RecipeType `json:"recipeType"`
	Recipe             string     `json:"recipe,omitempty"`
	NeedsCookingMethod bool       `json:"needsCookingMethod,omitempty"`
}
