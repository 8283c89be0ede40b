package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"chef-bonbon/internal/client"
	"chef-bonbon/internal/infrastructure/config"

	"github.com/joho/godotenv"
)

// 終端版的 Chef BonBon：食材從參數帶入，烹飪方式缺的話互動補問
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: client <ingredient>[,<ingredient>...] [cookingMethod] [food|drink]")
		os.Exit(2)
	}

	ingredients := splitIngredients(args[0])
	cookingMethod := ""
	recipeType := ""
	if len(args) > 1 {
		cookingMethod = args[1]
	}
	if len(args) > 2 {
		recipeType = args[2]
	}

	api := client.New(cfg.Client.BaseURL,
		client.WithStageListener(func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
		}),
	)

	ctx := context.Background()
	result, err := api.RequestRecipe(ctx, ingredients, cookingMethod, recipeType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// food 但缺烹飪方式：補問一次再送（兩段式協商）
	if result.NeedsCookingMethod {
		fmt.Fprint(os.Stderr, "Please select a cooking method for your food recipe: ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		cookingMethod = strings.TrimSpace(line)
		if cookingMethod == "" {
			fmt.Fprintln(os.Stderr, "No cooking method given, giving up.")
			os.Exit(1)
		}

		result, err = api.RequestRecipe(ctx, ingredients, cookingMethod, string(result.RecipeType))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println(api.Greeting(os.Getenv("USER")))
	fmt.Println()
	fmt.Println(result.Recipe)
}

// splitIngredients 以逗號切開食材並去掉空項
func splitIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	ingredients := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			ingredients = append(ingredients, s)
		}
	}
	return ingredients
}
