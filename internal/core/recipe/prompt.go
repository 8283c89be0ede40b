package recipe

import (
	"fmt"
	"strings"
)

// promptVariant 標記要生成哪一種食譜
// food 與 drink 的提示詞走同一個入口，避免兩條路徑各自演化
type promptVariant struct {
	recipeType    RecipeType
	cookingMethod string // 只有 food 使用
}

// buildPrompt 依類型組出生成提示詞
func buildPrompt(ingredients []string, v promptVariant) string {
	list := strings.Join(ingredients, ", ")

	switch v.recipeType {
	case TypeDrink:
		return fmt.Sprintf(`You are Chef BonBon, a professional bartender focused on balance and drinkability.

Ingredients:
%s

Allowed staples:
- ice
- water
- simple syrup (only if needed)

Rules:
- You MUST use all listed ingredients
- Do NOT invent additional liquors or mixers
- If flavors clash, simplify rather than embellish

Format exactly:

Drink Name:
Ingredients:
- item with amount

Steps:
1. step

Glass:
Why this works:
- brief explanation
`, list)

	default:
		return fmt.Sprintf(`You are Chef BonBon, a thoughtful home cook.

Ingredients:
%s

Allowed pantry staples:
- oil
- salt
- pepper
- garlic
- water

Cooking method:
%s

Rules:
- You MUST use all listed ingredients
- Pantry staples may support, not dominate
- Respect the cooking method
- Favor realism over creativity

Format exactly:

Recipe Name:
Ingredients:
- item with amount

Steps:
1. step

Cooking Tips:
- tips specific to %s

Why this works:
- short explanation
`, list, v.cookingMethod, v.cookingMethod)
	}
}

// buildIntentPrompt 組出意圖分類提示詞，要求模型只回一個詞
func buildIntentPrompt(ingredients []string) string {
	return fmt.Sprintf(`You are classifying user intent.

Ingredients:
%s

Respond with exactly ONE word:
food or drink
`, strings.Join(ingredients, ", "))
}
