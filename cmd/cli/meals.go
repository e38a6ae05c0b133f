// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	usecase "github.com/linuxfoundation/lfx-v2-recipe-search/internal/service"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// foodLogOutput is the --json form of a food log
type foodLogOutput struct {
	Date      string          `json:"date"`
	Calories  float64         `json:"calories"`
	Nutrients model.Nutrients `json:"totalNutrients"`
	Recipes   []model.Recipe  `json:"recipes"`
}

func (a *app) mealsCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "meals",
		Short: "Show the meal tracker log of a day",
		Long: `Show every serving logged on a day together with its calorie and nutrient
totals. Without --date today is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			meals := a.mealService()
			day, err := parseDay(date, meals.Today())
			if err != nil {
				return err
			}

			foodLog, err := meals.FoodLog(cmd.Context(), day)
			if err != nil {
				return err
			}
			return writeFoodLog(cmd.OutOrStdout(), foodLog, a.opts.jsonOutput, newTerminal(cmd.OutOrStdout()).Width())
		},
	}

	cmd.PersistentFlags().StringVar(&date, "date", "", "day to track, as YYYY-MM-DD (default today)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <recipe-id>",
			Short: "Add a serving of a recipe to the day",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				meals := a.mealService()
				day, err := parseDay(date, meals.Today())
				if err != nil {
					return err
				}

				foodLog, err := meals.AddServing(cmd.Context(), args[0], day)
				if err != nil {
					return err
				}

				if !a.opts.jsonOutput {
					title := args[0]
					if recipe, ok := foodLog.Contains(args[0]); ok {
						title = recipe.Title
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Added a serving of %s to %s\n", title, day.Format(model.DayLayout))
				}
				return writeFoodLog(cmd.OutOrStdout(), foodLog, a.opts.jsonOutput, newTerminal(cmd.OutOrStdout()).Width())
			},
		},
		&cobra.Command{
			Use:   "select <recipe-id>",
			Short: "Select a recipe logged on the day",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				meals := a.mealService()
				day, err := parseDay(date, meals.Today())
				if err != nil {
					return err
				}

				recipe, err := meals.Select(cmd.Context(), args[0], day)
				if err != nil {
					return err
				}

				if a.opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), recipe)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Selected %s (%s)\n", recipe.Title, recipe.ID)
				return nil
			},
		},
	)
	return cmd
}

func (a *app) mealService() *usecase.MealService {
	publisher := usecase.NewResultPublisher(a.runtime.Store, a.runtime.Events)
	return usecase.NewMealService(a.runtime.Meals, a.runtime.Store, publisher)
}

// parseDay reads a YYYY-MM-DD flag value in the local time zone; empty
// means today
func parseDay(value string, today time.Time) (time.Time, error) {
	if value == "" {
		return today, nil
	}
	day, err := time.ParseInLocation(model.DayLayout, value, time.Local)
	if err != nil {
		return time.Time{}, errors.NewValidation("The date must use the YYYY-MM-DD format", err)
	}
	return day, nil
}

func writeFoodLog(w io.Writer, foodLog *model.FoodLog, asJSON bool, width int) error {
	date := foodLog.Day.Format(model.DayLayout)

	if asJSON {
		return writeJSON(w, foodLogOutput{
			Date:      date,
			Calories:  foodLog.Calories(),
			Nutrients: foodLog.TotalNutrients,
			Recipes:   foodLog.Recipes,
		})
	}

	if foodLog.Empty() {
		_, err := fmt.Fprintln(w, constants.MessageNoFoodRecords)
		return err
	}

	fmt.Fprintf(w, "Food log for %s · %s kcal\n", date, strconv.FormatFloat(foodLog.Calories(), 'f', 0, 64))
	fmt.Fprintln(w, nutrientTable(foodLog.TotalNutrients))
	fmt.Fprintln(w, recipeTable(foodLog.Recipes, "", width))
	return nil
}

func nutrientTable(n model.Nutrients) string {
	grams := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 1, 64) + " g"
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FAT", "SATURATED FAT", "SODIUM", "CARBS", "FIBER", "SUGAR", "PROTEIN").
		Row(
			grams(n.Fat),
			grams(n.SaturatedFat),
			strconv.FormatFloat(n.Sodium, 'f', 0, 64)+" mg",
			grams(n.Carbs),
			grams(n.Fiber),
			grams(n.Sugar),
			grams(n.Proteins),
		).
		String()
}
