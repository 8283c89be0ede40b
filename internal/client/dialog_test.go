package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonalizeDialog(t *testing.T) {
	tests := []struct {
		name     string
		template string
		userName string
		want     string
	}{
		{
			name:     "replaces friend",
			template: "Hello, my friend! Chef BonBon is about to dazzle you with a tasty creation!",
			userName: "Alex",
			want:     "Hello, my Alex! Chef BonBon is about to dazzle you with a tasty creation!",
		},
		{
			name:     "replaces foodie",
			template: "Hey there, foodie! Chef BonBon here to sizzle some magic—let's get cooking!",
			userName: "Sam",
			want:     "Hey there, Sam! Chef BonBon here to sizzle some magic—let's get cooking!",
		},
		{
			name:     "replaces chef-in-training",
			template: "Ahoy, chef-in-training! Chef BonBon's here to stir up something spectacular!",
			userName: "Kim",
			want:     "Ahoy, Kim! Chef BonBon's here to stir up something spectacular!",
		},
		{
			name:     "no placeholder untouched",
			template: "Step right up! Chef BonBon is in the house, ready to cook up a feast!",
			userName: "Alex",
			want:     "Step right up! Chef BonBon is in the house, ready to cook up a feast!",
		},
		{
			name:     "empty name keeps template",
			template: "Hello, my friend! Chef BonBon is about to dazzle you with a tasty creation!",
			userName: "",
			want:     "Hello, my friend! Chef BonBon is about to dazzle you with a tasty creation!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PersonalizeDialog(tt.template, tt.userName))
		})
	}
}
