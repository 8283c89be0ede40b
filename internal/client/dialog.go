package client

import (
	"regexp"
)

// chefDialogs 主廚隨機開場白
var chefDialogs = []string{
	"Bonjour! I'm Chef BonBon, and I'm ready to whip up a storm with your ingredients!",
	"Hey there, foodie! Chef BonBon here to sizzle some magic—let's get cooking!",
	"Greetings, culinary adventurer! Chef BonBon will transform your ingredients into a masterpiece!",
	"Salutations! This is Chef BonBon, your kitchen wizard, ready to conjure a delicious dish!",
	"Well, well! Chef BonBon has arrived to turn your ingredients into a flavor explosion!",
	"Ahoy, chef-in-training! Chef BonBon's here to stir up something spectacular!",
	"Hello, my friend! Chef BonBon is about to dazzle you with a tasty creation!",
	"Step right up! Chef BonBon is in the house, ready to cook up a feast!",
	"Ooh la la! Chef BonBon will whisk you away with this delightful recipe!",
	"Rise and shine! Chef BonBon's here to spice up your day with a yummy dish!",
}

// 開場白裡可以換成使用者名字的稱呼
var dialogNamePattern = regexp.MustCompile(`friend|foodie|chef-in-training`)

// PersonalizeDialog 把開場白中的稱呼換成使用者名字
// 純函數：沒有名字就原樣返回
func PersonalizeDialog(template, userName string) string {
	if userName == "" {
		return template
	}
	return dialogNamePattern.ReplaceAllString(template, userName)
}
