// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "time"

// DayLayout is the date format of food log days
const DayLayout = "2006-01-02"

// Nutrients are the nutrient totals of every serving logged on a day
type Nutrients struct {
	Fat          float64 `json:"totalFat"`
	SaturatedFat float64 `json:"totalSaturatedFat"`
	Sodium       float64 `json:"totalSodium"`
	Carbs        float64 `json:"totalCarbs"`
	Fiber        float64 `json:"totalFiber"`
	Sugar        float64 `json:"totalSugar"`
	Proteins     float64 `json:"totalProteins"`
}

// Add returns the sum of n and other
func (n Nutrients) Add(other Nutrients) Nutrients {
	return Nutrients{
		Fat:          n.Fat + other.Fat,
		SaturatedFat: n.SaturatedFat + other.SaturatedFat,
		Sodium:       n.Sodium + other.Sodium,
		Carbs:        n.Carbs + other.Carbs,
		Fiber:        n.Fiber + other.Fiber,
		Sugar:        n.Sugar + other.Sugar,
		Proteins:     n.Proteins + other.Proteins,
	}
}

// FoodLog is the meal tracker record of one day: one entry per serving
type FoodLog struct {
	Day            time.Time `json:"-"`
	Recipes        []Recipe  `json:"recipes"`
	TotalNutrients Nutrients `json:"totalNutrients"`
}

// Empty reports whether nothing was logged on the day
func (l FoodLog) Empty() bool {
	return len(l.Recipes) == 0
}

// Calories sums the calories of every logged serving
func (l FoodLog) Calories() float64 {
	var total float64
	for _, recipe := range l.Recipes {
		total += recipe.CaloriesPerServe
	}
	return total
}

// Contains reports whether recipeID has a serving on the day
func (l FoodLog) Contains(recipeID string) (Recipe, bool) {
	for _, recipe := range l.Recipes {
		if recipe.ID == recipeID {
			return recipe, true
		}
	}
	return Recipe{}, false
}

// Day truncates t to midnight of its calendar day in t's location
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
